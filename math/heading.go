// math/heading.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// headings and directions

// NormalizeHeading reduces h to [0,360).
func NormalizeHeading(h float32) float32 {
	if h < 0 {
		h = 360 - NormalizeHeading(-h)
	}
	h = Mod(h, 360)
	if h >= 360 { // float32 rounding in the negative case above
		h = 0
	}
	return h
}

func OppositeHeading(h float32) float32 {
	return NormalizeHeading(h + 180)
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float32, b float32) float32 {
	var d float32
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// DiffAngle returns the signed angle to turn from heading a to heading b,
// in (-180,180]; positive values are clockwise (right) turns.
func DiffAngle(a, b float32) float32 {
	d := NormalizeHeading(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

// TurnAngle returns the angle turned going from heading |from| to heading
// |to| when turning in the given direction, in [0,360).
func TurnAngle(from, to float32, clockwise bool) float32 {
	if clockwise {
		return NormalizeHeading(to - from)
	}
	return NormalizeHeading(from - to)
}
