package system

import (
	"fmt"

	"github.com/milk9111/charkit/common"
	"github.com/milk9111/charkit/ecs"
	"github.com/milk9111/charkit/ecs/component"
)

// ControllerSystem feeds each actor's Input into its movement controller,
// runs the per-frame movement, and syncs the transform from the body.
type ControllerSystem struct{}

func NewControllerSystem() *ControllerSystem {
	return &ControllerSystem{}
}

func (s *ControllerSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.Each(w, component.ActorComponent, func(e ecs.Entity, a *component.Actor) {
		if a.Core == nil {
			return
		}

		if in, ok := ecs.Get(w, e, component.InputComponent); ok {
			if in.GodJumpPressed {
				a.Core.SetGodJump(true)
			}
			if in.LaunchPressed {
				a.Core.SendFlying(common.Vec3{X: 6, Y: 14}, false, true, 0.6)
			}
			if err := a.Core.SetInputForce(in.Move.X, in.Move.Y, dt); err != nil {
				fmt.Printf("controller: entity=%s input error: %v\n", e, err)
			}
			if in.JumpPressed {
				a.Core.Jump()
			}
		}

		if err := a.Core.PerformMovement(dt); err != nil {
			fmt.Printf("controller: entity=%s movement error: %v\n", e, err)
			return
		}

		if tr, ok := ecs.Get(w, e, component.TransformComponent); ok && a.Body != nil {
			pos := a.Body.Position()
			tr.X = pos.X
			tr.Y = pos.Y
		}
	})
}
