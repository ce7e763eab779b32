// math/heading_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestHeadingDifference(t *testing.T) {
	type hd struct {
		a, b, d float32
	}

	for _, h := range []hd{{10, 90, 80}, {350, 12, 22}, {340, 120, 140}, {-90, 80, 170},
		{40, 181, 141}, {-170, 160, 30}, {-120, -150, 30}} {
		if HeadingDifference(h.a, h.b) != h.d {
			t.Errorf("HeadingDifference(%f, %f) -> %f, expected %f", h.a, h.b,
				HeadingDifference(h.a, h.b), h.d)
		}
		if HeadingDifference(h.b, h.a) != h.d {
			t.Errorf("HeadingDifference(%f, %f) -> %f, expected %f", h.b, h.a,
				HeadingDifference(h.b, h.a), h.d)
		}
	}
}

func TestOppositeHeading(t *testing.T) {
	h := [][2]float32{{90, 270}, {1, 181}, {2, 182}, {350, 170}}
	for _, pair := range h {
		if OppositeHeading(pair[0]) != pair[1] {
			t.Errorf("opposite heading error: %f -> %f, expected %f",
				pair[0], OppositeHeading(pair[0]), pair[1])
		}
		if OppositeHeading(pair[1]) != pair[0] {
			t.Errorf("opposite heading error: %f -> %f, expected %f",
				pair[1], OppositeHeading(pair[1]), pair[0])
		}
	}
}

func TestVectorHeading(t *testing.T) {
	tests := []struct {
		name     string
		vector   [2]float32
		expected float32
	}{
		{"north", [2]float32{0, 1}, 0},
		{"northeast", [2]float32{1, 1}, 45},
		{"east", [2]float32{1, 0}, 90},
		{"southeast", [2]float32{1, -1}, 135},
		{"south", [2]float32{0, -1}, 180},
		{"southwest", [2]float32{-1, -1}, 225},
		{"west", [2]float32{-1, 0}, 270},
		{"northwest", [2]float32{-1, 1}, 315},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := VectorHeading(tt.vector)
			if Abs(result-tt.expected) > 0.01 {
				t.Errorf("VectorHeading(%v) = %f, expected %f", tt.vector, result, tt.expected)
			}
		})
	}
}

func TestSinCosHeading(t *testing.T) {
	for _, h := range []float32{0, 10, 45, 90, 135, 179, 180, 225, 270, 300, 359} {
		v := SinCos(Radians(h))
		if l := Length2f(v); Abs(l-1) > 1e-5 {
			t.Errorf("SinCos(%f) has length %f", h, l)
		}
		if d := HeadingDifference(VectorHeading(v), h); d > 0.01 {
			t.Errorf("VectorHeading(SinCos(%f)) = %f", h, VectorHeading(v))
		}
	}
}
