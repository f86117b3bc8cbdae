package system

import (
	"github.com/milk9111/charkit/ecs"
	"github.com/milk9111/charkit/physics"
)

// PhysicsSystem steps the dynamic bodies after all movement has resolved.
type PhysicsSystem struct {
	world *physics.World
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (s *PhysicsSystem) Update(_ *ecs.World, dt float64) {
	s.world.Step(dt)
}
