package system

import (
	"github.com/milk9111/charkit/controller"
	"github.com/milk9111/charkit/ecs"
	"github.com/milk9111/charkit/ecs/component"
	"github.com/milk9111/charkit/physics"
)

// PlatformSystem ping-pongs kinematic platforms along their waypoints and
// applies any constant spin, pushing the resulting frames into the physics
// world before the controllers run.
type PlatformSystem struct {
	world *physics.World
}

func NewPlatformSystem(world *physics.World) *PlatformSystem {
	return &PlatformSystem{world: world}
}

func (s *PlatformSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.world == nil {
		return
	}

	ecs.Each(w, component.PlatformComponent, func(e ecs.Entity, p *component.Platform) {
		frame, ok := s.world.Frame(p.Object)
		if !ok || len(p.Waypoints) == 0 {
			return
		}

		pos := frame.Position
		if len(p.Waypoints) > 1 && p.Speed > 0 {
			target := p.Waypoints[p.TargetIndex()]
			step := p.Speed * dt
			to := target.Sub(pos)
			if dist := to.Length(); dist <= step {
				pos = target
				p.Advance()
			} else {
				pos = pos.Add(to.Scale(step / dist))
			}
		}

		p.Angle += p.Spin * dt
		s.world.SetFrame(p.Object, controller.Frame{Position: pos, Angle: p.Angle})

		if tr, ok := ecs.Get(w, e, component.TransformComponent); ok {
			tr.X = pos.X
			tr.Y = pos.Y
			tr.Angle = p.Angle
		}
	})
}
