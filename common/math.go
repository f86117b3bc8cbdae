package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
