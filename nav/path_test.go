// nav/path_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"testing"

	"github.com/mmp/lnav/math"
)

func straightEast() Path {
	return Path{
		Segments: []PathSegment{{
			P0:        [2]float32{0, 0},
			P1:        [2]float32{10, 0},
			StartDist: 0,
			Length:    10,
		}},
		Length: 10,
	}
}

func TestPathPointAtDistance(t *testing.T) {
	path := straightEast()

	pt, hdg := path.PointAtDistance(5)
	if !approxEqual(pt[0], 5, 0.01) || !approxEqual(pt[1], 0, 0.01) {
		t.Errorf("midpoint: expected (5,0), got (%f,%f)", pt[0], pt[1])
	}
	if !approxEqual(hdg, 90, 0.5) {
		t.Errorf("midpoint heading: expected ~90, got %f", hdg)
	}

	// Distances past the ends are clamped.
	if pt, _ = path.PointAtDistance(15); !approxEqual(pt[0], 10, 0.01) {
		t.Errorf("beyond end: expected (10,0), got (%f,%f)", pt[0], pt[1])
	}
	if pt, _ = path.PointAtDistance(-3); !approxEqual(pt[0], 0, 0.01) {
		t.Errorf("before start: expected (0,0), got (%f,%f)", pt[0], pt[1])
	}
}

func TestPathProject(t *testing.T) {
	path := straightEast()

	for _, test := range []struct {
		p         [2]float32
		dist, off float32
	}{
		{p: [2]float32{5, 0}, dist: 5, off: 0},
		{p: [2]float32{5, 2}, dist: 5, off: 2},   // left of an eastbound path
		{p: [2]float32{5, -3}, dist: 5, off: -3}, // right
		{p: [2]float32{-2, 0}, dist: 0, off: 0},  // clamped to the start
	} {
		proj := path.Project(test.p)
		if !approxEqual(proj.Distance, test.dist, 0.01) {
			t.Errorf("%v: expected distance %f, got %f", test.p, test.dist, proj.Distance)
		}
		if !approxEqual(proj.Offset, test.off, 0.01) {
			t.Errorf("%v: expected offset %f, got %f", test.p, test.off, proj.Offset)
		}
		if !approxEqual(proj.Heading, 90, 0.5) {
			t.Errorf("%v: expected heading 90, got %f", test.p, proj.Heading)
		}
	}
}

func TestPathBuilderTurns(t *testing.T) {
	for _, cw := range []bool{true, false} {
		pb := newPathBuilder([2]float32{}, 0)
		pb.turn(1, cw, 90)

		// A quarter turn from north ends 1nm north and 1nm to the side.
		x := float32(1)
		if !cw {
			x = -1
		}
		end := pb.Path.End()
		if !approxEqual(end[0], x, 0.001) || !approxEqual(end[1], 1, 0.001) {
			t.Errorf("cw %v: expected end (%f,1), got %v", cw, x, end)
		}
		if !approxEqual(pb.Path.Length, math.Pi/2, 0.001) {
			t.Errorf("cw %v: expected length pi/2, got %f", cw, pb.Path.Length)
		}

		// Points outside the circle are left of the path when turning
		// right and right of it when turning left.
		pmid, hdg := pb.Path.PointAtDistance(pb.Path.Length / 2)
		if !approxEqual(hdg, util45(cw), 0.5) {
			t.Errorf("cw %v: expected heading %f at midpoint, got %f", cw, util45(cw), hdg)
		}
		center := pb.Path.Segments[0].Arc.Center
		outside := math.Add2f(pmid, math.Scale2f(math.Normalize2f(math.Sub2f(pmid, center)), 0.1))
		proj := pb.Path.Project(outside)
		if cw && !approxEqual(proj.Offset, 0.1, 0.001) || !cw && !approxEqual(proj.Offset, -0.1, 0.001) {
			t.Errorf("cw %v: unexpected offset %f outside the turn", cw, proj.Offset)
		}
	}
}

func util45(cw bool) float32 {
	if cw {
		return 45
	}
	return 315
}

func TestPathClosedRacetrack(t *testing.T) {
	pb := newPathBuilder([2]float32{}, 90)
	pb.turn(1, true, 180)
	pb.straight(4)
	pb.turn(1, true, 180)
	pb.lineTo([2]float32{})

	want := float32(2*math.Pi + 8)
	if !approxEqual(pb.Path.Length, want, 0.01) {
		t.Errorf("expected racetrack length %f, got %f", want, pb.Path.Length)
	}
	// The start and end coincide; projection prefers the end.
	if proj := pb.Path.Project([2]float32{}); !approxEqual(proj.Distance, pb.Path.Length, 0.01) {
		t.Errorf("expected the origin to project to the end of the path, got %f", proj.Distance)
	}
}
