package controller

import "github.com/milk9111/charkit/common"

// ShapeKind hints at the collider geometry behind a contact. Sphere
// contacts arrive with their normal inverted (an engine convention the
// resolver compensates for).
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeSegment
)

// Surface carries the collision tags the resolver classifies against.
type Surface struct {
	// AlwaysSlide forces slope classification no matter the angle.
	AlwaysSlide bool
	// NeverSlide forces ground classification no matter the angle.
	NeverSlide bool
	// WallJumpable allows the sliding sub-state and wall jumps.
	WallJumpable bool
}

// Contact is the single collision event a movement attempt may report.
type Contact struct {
	Normal  common.Vec3
	Point   common.Vec3
	Object  Object
	Shape   ShapeKind
	Surface Surface

	// ApplyImpulse, when non-nil, marks the contacted object as accepting
	// external forces and delivers the momentum-transfer impulse to it.
	ApplyImpulse func(impulse, at common.Vec3)
}

// Mover is the engine sweep primitive the core calls into. It attempts to
// translate the entity and reports at most one contact per attempt. The
// core never implements sweeping or continuous collision itself.
type Mover interface {
	// Move attempts to translate by delta and returns the contact hit, if
	// any. The implementation resolves penetration; afterwards Position
	// reflects where the entity actually ended up.
	Move(delta common.Vec3) (Contact, bool)

	Position() common.Vec3

	// Translate moves the entity directly, without collision response.
	// Used for platform riding so the entity tracks teleports exactly.
	Translate(delta common.Vec3)
}

// FrameSource resolves an object handle to its current transform. The
// controller uses it to ride whatever it is standing on.
type FrameSource interface {
	Frame(Object) (Frame, bool)
}

// Frame is a position plus in-plane rotation of an external object.
type Frame struct {
	Position common.Vec3
	Angle    float64
}

// SizeFunc supplies the external size multiplier. Absent providers default
// to 1.
type SizeFunc func() float64
