package common

import "math"

// Down is the canonical down direction. The gravity frame is the world
// frame rotated so that down aligns with the configured gravity vector;
// "horizontal" and "vertical" in controller code always mean axes of this
// frame, so controls stay intuitive under sideways or inverted gravity.
var Down = Vec3{X: 0, Y: -1}

// GravityAngle returns the signed rotation (radians) from canonical down to
// the gravity direction. The sign comes from the out-of-plane cross
// component. A zero gravity vector yields 0, never NaN.
func GravityAngle(gravity Vec3) float64 {
	g := gravity.ClampZ().Normalize()
	if g == (Vec3{}) {
		return 0
	}
	return SignedAngle(Down, g)
}

// SignedAngle returns the angle (radians) from a to b in the simulation
// plane, signed by the out-of-plane cross component. Either vector being
// degenerate yields 0.
func SignedAngle(a, b Vec3) float64 {
	a = a.ClampZ().Normalize()
	b = b.ClampZ().Normalize()
	if a == (Vec3{}) || b == (Vec3{}) {
		return 0
	}
	dot := Clamp(a.Dot(b), -1, 1)
	angle := math.Acos(dot)
	if a.CrossZ(b) < 0 {
		angle = -angle
	}
	return angle
}

// ToGravityFrame rotates a world-space vector into the gravity frame.
func ToGravityFrame(v, gravity Vec3) Vec3 {
	return v.RotateZ(-GravityAngle(gravity))
}

// FromGravityFrame rotates a gravity-frame vector back into world space.
func FromGravityFrame(v, gravity Vec3) Vec3 {
	return v.RotateZ(GravityAngle(gravity))
}
