package common

import "math"

// Vec3 is a point or direction in the simulation plane. Motion happens in
// X/Y; Z is the out-of-plane axis, used only for cross-product rotation
// signs and clamped to zero for translation.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// CrossZ is the out-of-plane component of the cross product. It carries the
// rotation sign for every signed-angle computation in the controller.
func (v Vec3) CrossZ(o Vec3) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector, or the zero vector for degenerate
// input instead of propagating a NaN.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec3{}
	}
	return v.Scale(1.0 / l)
}

// ClampZ drops the out-of-plane component.
func (v Vec3) ClampZ() Vec3 {
	return Vec3{v.X, v.Y, 0}
}

// RotateZ rotates v about the out-of-plane axis by rad.
func (v Vec3) RotateZ(rad float64) Vec3 {
	sin, cos := math.Sincos(rad)
	return Vec3{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
		Z: v.Z,
	}
}

// IsFinite reports whether all components are real numbers.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// ProjectOnPlane removes the component of v along the (unit) normal n.
func (v Vec3) ProjectOnPlane(n Vec3) Vec3 {
	return v.Sub(n.Scale(v.Dot(n)))
}
