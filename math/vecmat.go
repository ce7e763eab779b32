// math/vecmat.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// 2D vector arithmetic, used in the local nautical-mile frame (see LL2NM).

func Add2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] + b[0], a[1] + b[1]}
}

func Sub2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}

func Scale2f(a [2]float32, s float32) [2]float32 {
	return [2]float32{s * a[0], s * a[1]}
}

func Dot(a, b [2]float32) float32 {
	return a[0]*b[0] + a[1]*b[1]
}

// Lerp2f returns the point x of the way from a to b.
func Lerp2f(x float32, a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{(1-x)*a[0] + x*b[0], (1-x)*a[1] + x*b[1]}
}

func Length2f(v [2]float32) float32 {
	return Sqrt(v[0]*v[0] + v[1]*v[1])
}

func Distance2f(a [2]float32, b [2]float32) float32 {
	return Length2f(Sub2f(a, b))
}

// Normalize2f returns a unit vector in the direction of a; the zero
// vector is returned as is.
func Normalize2f(a [2]float32) [2]float32 {
	l := Length2f(a)
	if l == 0 {
		return [2]float32{0, 0}
	}
	return Scale2f(a, 1/l)
}

// SinCos returns the unit vector for the given compass heading (in
// radians): [sin, cos], so that 0 is +y (north) and pi/2 is +x (east).
func SinCos(a float32) [2]float32 {
	return [2]float32{Sin(a), Cos(a)}
}

// VectorHeading returns the compass heading in degrees of the vector v,
// where +y is north and +x is east.
func VectorHeading(v [2]float32) float32 {
	// atan2(x, y) measures clockwise from +y.
	return NormalizeHeading(Degrees(Atan2(v[0], v[1])))
}
