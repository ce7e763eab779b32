// math/math_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestParseLatLong(t *testing.T) {
	jfk := Point2LL{-73.771385, 40.6328888}
	for _, str := range []string{
		"N40.37.58.400, W073.46.17.000",
		"N40.37.58.4,W073.46.17.000",
		"40.6328888, -73.771385",
	} {
		p, err := ParseLatLong([]byte(str))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", str, err)
			continue
		}
		if Abs(p[0]-jfk[0]) > 1e-5 || Abs(p[1]-jfk[1]) > 1e-5 {
			t.Errorf("%s: got %v, expected %v", str, p, jfk)
		}
	}

	if p, err := ParseLatLong([]byte("S33.56.00.000,E151.10.00.000")); err != nil {
		t.Errorf("unexpected error: %v", err)
	} else if p[0] < 151 || p[1] > -33 {
		t.Errorf("southern/eastern hemisphere parsed as %v", p)
	}

	for _, invalid := range []string{
		"E40.37.58.400, W073.46.17.000",
		"40.37.58.400, W073.46.17.000",
		"N40.37.58.400, -73.22",
		"N40.37.58.400, W073.46.17",
		"N40.3x.58.400, W073.46.17.000",
		"95.0, -73.2",
		"40.5",
	} {
		if _, err := ParseLatLong([]byte(invalid)); err == nil {
			t.Errorf("%s: no error was returned for invalid latlong string!", invalid)
		}
	}
}

func TestPoint2LLJSON(t *testing.T) {
	var p Point2LL
	if err := p.UnmarshalJSON([]byte(`"N40.37.58.400,W073.46.17.000"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Abs(p[1]-40.6328888) > 1e-5 || Abs(p[0]+73.771385) > 1e-5 {
		t.Errorf("got %v", p)
	}

	if err := p.UnmarshalJSON([]byte(`[-73.5, 40.25]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != (Point2LL{-73.5, 40.25}) {
		t.Errorf("got %v, expected [-73.5 40.25]", p)
	}

	b, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var q Point2LL
	if err := q.UnmarshalJSON(b); err != nil {
		t.Fatalf("%s: unexpected error: %v", string(b), err)
	}
	if GreatCircleDistance(p, q) > 0.001 {
		t.Errorf("%s: round trip gave %v, expected %v", string(b), q, p)
	}
}

func TestNormalizeHeading(t *testing.T) {
	for _, c := range [][2]float32{
		{0, 0}, {360, 0}, {-360, 0}, {720, 0}, {-90, 270}, {359.5, 359.5}, {450, 90}, {-450, 270},
	} {
		if h := NormalizeHeading(c[0]); Abs(h-c[1]) > 1e-4 {
			t.Errorf("NormalizeHeading(%f) = %f, expected %f", c[0], h, c[1])
		}
	}
}

func TestDiffAngle(t *testing.T) {
	for _, c := range [][3]float32{
		{350, 10, 20},
		{10, 350, -20},
		{90, 180, 90},
		{180, 90, -90},
		{0, 180, 180},
		{180, 0, 180},
		{45, 45, 0},
		{270, 89, 179},
		{270, 91, -179},
	} {
		if d := DiffAngle(c[0], c[1]); Abs(d-c[2]) > 1e-4 {
			t.Errorf("DiffAngle(%f, %f) = %f, expected %f", c[0], c[1], d, c[2])
		}
	}
}

func TestTurnAngle(t *testing.T) {
	if a := TurnAngle(90, 180, true); Abs(a-90) > 1e-4 {
		t.Errorf("right turn 090->180: got %f", a)
	}
	if a := TurnAngle(90, 180, false); Abs(a-270) > 1e-4 {
		t.Errorf("left turn 090->180: got %f", a)
	}
}

func TestGreatCircle(t *testing.T) {
	origin := Point2LL{0, 0}

	if d := GreatCircleDistance(origin, Point2LL{0, 1}); Abs(d-60.0405) > 0.01 {
		t.Errorf("1 degree of latitude: got %f nm", d)
	}
	if b := GreatCircleBearing(origin, Point2LL{1, 0}); Abs(b-90) > 0.01 {
		t.Errorf("bearing east: got %f", b)
	}
	if b := GreatCircleBearing(origin, Point2LL{0, 1}); Abs(b) > 0.01 {
		t.Errorf("bearing north: got %f", b)
	}
	if b := GreatCircleBearing(origin, Point2LL{0, -1}); Abs(b-180) > 0.01 {
		t.Errorf("bearing south: got %f", b)
	}
	if b := GreatCircleBearing(origin, origin); b != 0 {
		t.Errorf("bearing to self: got %f", b)
	}

	jfk := Point2LL{-73.771385, 40.6328888}
	for _, hdg := range []float32{0, 45, 123, 200, 315} {
		for _, dist := range []float32{0.5, 25, 250} {
			p := DestinationPoint(jfk, dist, hdg)
			if d := GreatCircleDistance(jfk, p); Abs(d-dist) > 0.01 {
				t.Errorf("hdg %f dist %f: round trip distance %f", hdg, dist, d)
			}
			if b := GreatCircleBearing(jfk, p); HeadingDifference(b, hdg) > 0.05 {
				t.Errorf("hdg %f dist %f: round trip bearing %f", hdg, dist, b)
			}
		}
	}
}

func TestCrossAndAlongTrack(t *testing.T) {
	ref := Point2LL{0, 0}

	// South of an eastbound course is to the right.
	p := Point2LL{1, -0.1}
	if xtk := CrossTrackDistance(p, ref, 90); Abs(xtk-6.004) > 0.01 {
		t.Errorf("cross track: got %f, expected ~6.004", xtk)
	}
	if xtk := CrossTrackDistance(Point2LL{1, 0.1}, ref, 90); Abs(xtk+6.004) > 0.01 {
		t.Errorf("cross track left: got %f, expected ~-6.004", xtk)
	}
	if atk := AlongTrackDistance(p, ref, 90); Abs(atk-60.04) > 0.05 {
		t.Errorf("along track: got %f, expected ~60.04", atk)
	}
	if atk := AlongTrackDistance(Point2LL{-1, 0}, ref, 90); Abs(atk+60.04) > 0.05 {
		t.Errorf("along track behind: got %f, expected ~-60.04", atk)
	}

	if xtk := CrossTrackDistance(ref, ref, 90); xtk != 0 {
		t.Errorf("degenerate cross track: got %f", xtk)
	}
	if atk := AlongTrackDistance(ref, ref, 90); atk != 0 {
		t.Errorf("degenerate along track: got %f", atk)
	}
}

func TestLineLineIntersect(t *testing.T) {
	p, ok := LineLineIntersect([2]float32{0, 0}, [2]float32{1, 1}, [2]float32{0, 2}, [2]float32{2, 0})
	if !ok || Abs(p[0]-1) > 1e-5 || Abs(p[1]-1) > 1e-5 {
		t.Errorf("got %v %v, expected (1,1)", p, ok)
	}
	if _, ok := LineLineIntersect([2]float32{0, 0}, [2]float32{1, 0}, [2]float32{0, 1}, [2]float32{1, 1}); ok {
		t.Errorf("parallel lines reported as intersecting")
	}
}

func TestRayCircleIntersect(t *testing.T) {
	// From the center, heading north, radius 5.
	if tt, ok := RayCircleIntersect([2]float32{0, 0}, [2]float32{0, 1}, [2]float32{0, 0}, 5); !ok || Abs(tt-5) > 1e-5 {
		t.Errorf("from center: got %f %v", tt, ok)
	}
	// From outside, heading toward the circle.
	if tt, ok := RayCircleIntersect([2]float32{0, -10}, [2]float32{0, 1}, [2]float32{0, 0}, 5); !ok || Abs(tt-5) > 1e-5 {
		t.Errorf("from outside: got %f %v", tt, ok)
	}
	// Heading away.
	if _, ok := RayCircleIntersect([2]float32{0, -10}, [2]float32{0, -1}, [2]float32{0, 0}, 5); ok {
		t.Errorf("ray heading away reported as intersecting")
	}
}
