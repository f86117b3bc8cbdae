package system

import (
	"github.com/milk9111/charkit/ecs"
	"github.com/milk9111/charkit/ecs/component"
	"github.com/milk9111/charkit/physics"
)

// DynamicSyncSystem copies simulated body frames back onto transforms. Runs
// after the physics step.
type DynamicSyncSystem struct {
	world *physics.World
}

func NewDynamicSyncSystem(world *physics.World) *DynamicSyncSystem {
	return &DynamicSyncSystem{world: world}
}

func (s *DynamicSyncSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.world == nil {
		return
	}
	ecs.Each(w, component.DynamicComponent, func(e ecs.Entity, d *component.Dynamic) {
		frame, ok := s.world.Frame(d.Object)
		if !ok {
			return
		}
		if tr, ok := ecs.Get(w, e, component.TransformComponent); ok {
			tr.X = frame.Position.X
			tr.Y = frame.Position.Y
			tr.Angle = frame.Angle
		}
	})
}
