// nav/path.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/mmp/lnav/math"
	"github.com/mmp/lnav/util"
)

// localFrame maps lat-longs to nm coordinates (x east, y north) relative
// to an origin. It's accurate for the few-nm extent of holds and
// procedure turns.
type localFrame struct {
	origin         math.Point2LL
	nmPerLongitude float32
}

func newLocalFrame(origin math.Point2LL) localFrame {
	return localFrame{origin: origin, nmPerLongitude: math.NMPerLongitudeAt(origin)}
}

func (f localFrame) toNM(p math.Point2LL) [2]float32 {
	return math.Sub2f(math.LL2NM(p, f.nmPerLongitude), math.LL2NM(f.origin, f.nmPerLongitude))
}

func (f localFrame) toLL(p [2]float32) math.Point2LL {
	return math.NM2LL(math.Add2f(p, math.LL2NM(f.origin, f.nmPerLongitude)), f.nmPerLongitude)
}

// headingVector returns the unit vector in nm coordinates for the given
// compass heading.
func headingVector(hdg float32) [2]float32 {
	return math.SinCos(math.Radians(hdg))
}

///////////////////////////////////////////////////////////////////////////
// Path

// Path represents a piecewise curve (line segments and circular arcs) in
// nm coordinates, ordered in the direction of travel.
type Path struct {
	Segments []PathSegment
	Length   float32
}

type PathSegment struct {
	P0, P1    [2]float32 // start/end in nm coordinates
	Arc       *PathArc   // nil for straight segments
	StartDist float32    // cumulative distance at segment start
	Length    float32
}

type PathArc struct {
	Center     [2]float32
	Radius     float32
	StartAngle float32 // angle from center to P0 (radians, from +x)
	Sweep      float32 // signed: positive=CCW, negative=CW
}

// Segments within this distance of a point are considered equally close
// when projecting onto a path; the later one wins.
const projectionTieDistance = 1e-3 // nm

// PathProjection is the result of projecting a point onto a Path.
type PathProjection struct {
	Distance float32 // along the path
	Offset   float32 // perpendicular; positive = left of the path
	Heading  float32 // local path heading (degrees)
	Segment  int
}

// Project projects a point onto the path. Where the point is equidistant
// from two segments (e.g. the start and end of a closed path, or where
// the path crosses itself), the later segment is chosen.
func (path *Path) Project(p [2]float32) PathProjection {
	var best PathProjection
	bestDist := float32(-1)

	for i, seg := range path.Segments {
		var segDist, segPerp, segHeading float32
		if seg.Arc != nil {
			segDist, segPerp, segHeading = projectOntoArc(p, seg)
		} else {
			segDist, segPerp, segHeading = projectOntoLine(p, seg)
		}

		d := math.Distance2f(p, pointOnSegmentAtDist(seg, segDist))
		if bestDist < 0 || d <= bestDist+projectionTieDistance {
			bestDist = d
			best = PathProjection{
				Distance: seg.StartDist + segDist,
				Offset:   segPerp,
				Heading:  segHeading,
				Segment:  i,
			}
		}
	}

	return best
}

// PointAtDistance returns the point and heading at a given distance along
// the path. Distances outside the path are clamped to its ends.
func (path *Path) PointAtDistance(dist float32) (point [2]float32, heading float32) {
	if len(path.Segments) == 0 {
		return [2]float32{}, 0
	}

	dist = math.Clamp(dist, 0, path.Length)
	for _, seg := range path.Segments {
		if dist <= seg.StartDist+seg.Length {
			localDist := dist - seg.StartDist
			return pointOnSegmentAtDist(seg, localDist), segmentHeadingAt(seg, localDist)
		}
	}

	seg := path.Segments[len(path.Segments)-1]
	return seg.P1, segmentHeadingAt(seg, seg.Length)
}

func (path *Path) End() [2]float32 {
	if len(path.Segments) == 0 {
		return [2]float32{}
	}
	return path.Segments[len(path.Segments)-1].P1
}

func (path *Path) add(seg PathSegment) {
	seg.StartDist = path.Length
	path.Segments = append(path.Segments, seg)
	path.Length += seg.Length
}

// pathBuilder incrementally constructs a Path from a starting point and
// heading, in the manner of a pilot's instructions: fly straight, turn,
// fly to a point.
type pathBuilder struct {
	Path    Path
	p       [2]float32
	heading float32
}

func newPathBuilder(start [2]float32, heading float32) *pathBuilder {
	return &pathBuilder{p: start, heading: heading}
}

func (pb *pathBuilder) straight(length float32) {
	pb.lineTo(math.Add2f(pb.p, math.Scale2f(headingVector(pb.heading), length)))
}

func (pb *pathBuilder) lineTo(q [2]float32) {
	length := math.Distance2f(pb.p, q)
	if length < 1e-6 {
		return
	}
	pb.Path.add(PathSegment{P0: pb.p, P1: q, Length: length})
	pb.heading = math.VectorHeading(math.Sub2f(q, pb.p))
	pb.p = q
}

// turn adds a constant-radius turn through the given number of degrees.
func (pb *pathBuilder) turn(radius float32, clockwise bool, degrees float32) {
	if degrees <= 0 || radius <= 0 {
		return
	}

	var center [2]float32
	if clockwise {
		center = math.Add2f(pb.p, math.Scale2f(headingVector(pb.heading+90), radius))
	} else {
		center = math.Add2f(pb.p, math.Scale2f(headingVector(pb.heading-90), radius))
	}

	d := math.Sub2f(pb.p, center)
	startAngle := math.Atan2(d[1], d[0])
	sweep := math.Radians(degrees)
	if clockwise {
		sweep = -sweep
	}
	end := [2]float32{
		center[0] + radius*math.Cos(startAngle+sweep),
		center[1] + radius*math.Sin(startAngle+sweep),
	}

	pb.Path.add(PathSegment{
		P0:     pb.p,
		P1:     end,
		Arc:    &PathArc{Center: center, Radius: radius, StartAngle: startAngle, Sweep: sweep},
		Length: radius * math.Abs(sweep),
	})
	pb.p = end
	pb.heading = math.NormalizeHeading(pb.heading + util.Select(clockwise, degrees, -degrees))
}

// projectOntoLine projects point p onto a straight line segment, returning
// the clamped distance along the segment, signed perpendicular offset, and heading.
func projectOntoLine(p [2]float32, seg PathSegment) (dist, perp, heading float32) {
	d := math.Sub2f(seg.P1, seg.P0)
	if seg.Length < 1e-6 {
		return 0, math.Distance2f(p, seg.P0), 0
	}

	t := math.Clamp(math.Dot(math.Sub2f(p, seg.P0), d)/(seg.Length*seg.Length), 0, 1)
	dist = t * seg.Length

	// Travel direction is d; left is (-d[1], d[0])
	leftNorm := math.Normalize2f([2]float32{-d[1], d[0]})
	onLine := math.Add2f(seg.P0, math.Scale2f(d, t))
	perp = math.Dot(math.Sub2f(p, onLine), leftNorm)

	heading = math.VectorHeading(d)
	return
}

// projectOntoArc projects point p onto an arc segment.
func projectOntoArc(p [2]float32, seg PathSegment) (dist, perp, heading float32) {
	arc := seg.Arc
	dp := math.Sub2f(p, arc.Center)
	relAngle := math.Atan2(dp[1], dp[0]) - arc.StartAngle
	for relAngle > math.Pi {
		relAngle -= 2 * math.Pi
	}
	for relAngle < -math.Pi {
		relAngle += 2 * math.Pi
	}

	// Points more than halfway around the rest of the circle from the
	// arc's end are considered to be before its start.
	slack := (2*math.Pi - math.Abs(arc.Sweep)) / 2
	if arc.Sweep > 0 {
		if relAngle < 0 && relAngle < -slack {
			relAngle += 2 * math.Pi
		}
	} else {
		if relAngle > 0 && relAngle > slack {
			relAngle -= 2 * math.Pi
		}
	}
	t := math.Clamp(relAngle/arc.Sweep, 0, 1)
	dist = t * seg.Length

	// For CW arcs the center is to the right, so outside the circle is
	// left of travel; the reverse holds for CCW arcs.
	radialOffset := math.Length2f(dp) - arc.Radius
	if arc.Sweep > 0 {
		perp = -radialOffset
	} else {
		perp = radialOffset
	}

	heading = segmentHeadingAt(seg, dist)
	return
}

// pointOnSegmentAtDist returns the point on a segment at the given local distance.
func pointOnSegmentAtDist(seg PathSegment, dist float32) [2]float32 {
	if seg.Length < 1e-6 {
		return seg.P0
	}
	t := dist / seg.Length
	if seg.Arc != nil {
		angle := seg.Arc.StartAngle + seg.Arc.Sweep*t
		return [2]float32{
			seg.Arc.Center[0] + seg.Arc.Radius*math.Cos(angle),
			seg.Arc.Center[1] + seg.Arc.Radius*math.Sin(angle),
		}
	}
	return math.Lerp2f(t, seg.P0, seg.P1)
}

// segmentHeadingAt returns the heading at a given local distance along a segment.
func segmentHeadingAt(seg PathSegment, dist float32) float32 {
	if seg.Arc == nil {
		return math.VectorHeading(math.Sub2f(seg.P1, seg.P0))
	}

	var t float32
	if seg.Length > 1e-6 {
		t = dist / seg.Length
	}
	angle := seg.Arc.StartAngle + seg.Arc.Sweep*t
	// Tangent is 90 degrees ahead of the radial for CCW arcs and behind
	// it for CW arcs.
	if seg.Arc.Sweep > 0 {
		angle += math.Pi / 2
	} else {
		angle -= math.Pi / 2
	}
	return math.VectorHeading([2]float32{math.Cos(angle), math.Sin(angle)})
}
