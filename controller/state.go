package controller

import "github.com/milk9111/charkit/common"

// Object is a weak handle to whatever the character is standing on or
// collided with. It indexes an external entity table; the controller never
// owns the referenced object or assumes it stays alive.
type Object uint64

// NoObject is the absent handle.
const NoObject Object = 0

// State is the per-tick snapshot consumed by animation, effects, and AI.
// It is owned and mutated exclusively by the physics core: reset at the
// start of every movement attempt (PlatformVelocity and IsFlying persist),
// then updated by at most one collision resolution per tick.
type State struct {
	IsGrounded    bool
	IsFalling     bool
	IsOnSlope     bool
	IsSliding     bool
	IsFlying      bool
	HasCollisions bool

	// SlopeAngle is signed degrees; the sign encodes left/right tilt
	// relative to the gravity-perpendicular axis.
	SlopeAngle float64

	// TimeFloating accumulates seconds spent not grounded.
	TimeFloating float64

	GroundedObject   Object
	PlatformVelocity common.Vec3
}

// reset clears the per-contact fields before a movement attempt. Platform
// velocity and the flying flag survive the reset.
func (s *State) reset() {
	s.IsGrounded = false
	s.IsFalling = false
	s.IsOnSlope = false
	s.IsSliding = false
	s.HasCollisions = false
	s.SlopeAngle = 0
	s.GroundedObject = NoObject
}
