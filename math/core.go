// math/core.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

const Pi = gomath.Pi

func Degrees(r float32) float32 {
	return r * 180 / gomath.Pi
}

func Radians(d float32) float32 {
	return d / 180 * gomath.Pi
}

// float32 wrappers around the standard library; positions, headings, and
// distances are all float32 throughout.

func Sin(a float32) float32  { return float32(gomath.Sin(float64(a))) }
func Cos(a float32) float32  { return float32(gomath.Cos(float64(a))) }
func Tan(a float32) float32  { return float32(gomath.Tan(float64(a))) }
func Atan(a float32) float32 { return float32(gomath.Atan(float64(a))) }
func Sqrt(a float32) float32 { return float32(gomath.Sqrt(float64(a))) }
func IsNaN(v float32) bool   { return gomath.IsNaN(float64(v)) }

func Atan2(y, x float32) float32 {
	return float32(gomath.Atan2(float64(y), float64(x)))
}

func Mod(a, b float32) float32 {
	return float32(gomath.Mod(float64(a), float64(b)))
}

// Sign returns -1, 0, or 1.
func Sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

// Clamp returns x limited to [low, high].
func Clamp[T constraints.Ordered](x T, low T, high T) T {
	return min(max(x, low), high)
}
