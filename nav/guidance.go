// nav/guidance.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/mmp/lnav/math"
	"github.com/mmp/lnav/util"
)

const (
	// Below this distance from a reference point, guidance errors are
	// reported as zero rather than computed from ill-conditioned
	// bearings.
	degenerateDistance = 1e-4 // nm

	// Circular transitions stop commanding roll with this much of the
	// turn remaining.
	rollCutoffAngle = 3 // degrees

	gravity     = 9.81     // m/s^2
	metersPerNM = 1852     // m
	mpsPerKnot  = 0.514444 // (m/s) / kt

	// Turn radii are computed as kt^2 / (g tan(bank)); dividing by this
	// gives nm.
	turnRadiusUnitsPerNM = 6080.2
)

// zeroGuidance returns guidance with no errors for when the geometry is
// degenerate.
func zeroGuidance(law GuidanceLaw, track float32) GuidanceParameters {
	return GuidanceParameters{Law: law, DesiredTrack: track, Heading: track}
}

// lineGuidance returns lateral-path guidance along the great circle
// through ref with the given true course.
func lineGuidance(ppos, ref math.Point2LL, course, track float32) GuidanceParameters {
	xte := math.CrossTrackDistance(ppos, ref, course)
	if math.IsNaN(xte) {
		return zeroGuidance(LawLateralPath, track)
	}
	return GuidanceParameters{
		Law:             LawLateralPath,
		DesiredTrack:    course,
		TrackAngleError: math.DiffAngle(track, course),
		CrossTrackError: xte,
	}
}

// greatCircleGuidance returns lateral-path guidance along the great circle
// from a to b. The desired track is the local course of the great circle
// abeam the aircraft, which differs from the initial course for long legs.
func greatCircleGuidance(ppos, a, b math.Point2LL, track float32) GuidanceParameters {
	if math.GreatCircleDistance(a, b) < degenerateDistance {
		return zeroGuidance(LawLateralPath, track)
	}
	course := math.GreatCircleBearing(a, b)
	gp := lineGuidance(ppos, a, course, track)

	at := math.AlongTrackDistance(ppos, a, course)
	abeam := math.DestinationPoint(a, at, course)
	if math.GreatCircleDistance(abeam, b) > 0.01 {
		if at < math.GreatCircleDistance(a, b) {
			gp.DesiredTrack = math.GreatCircleBearing(abeam, b)
		} else {
			gp.DesiredTrack = math.OppositeHeading(math.GreatCircleBearing(abeam, b))
		}
	} else {
		gp.DesiredTrack = finalCourse(a, b)
	}
	gp.TrackAngleError = math.DiffAngle(track, gp.DesiredTrack)
	return gp
}

// finalCourse returns the true course of the great circle from a to b
// as it arrives at b.
func finalCourse(a, b math.Point2LL) float32 {
	return math.OppositeHeading(math.GreatCircleBearing(b, a))
}

// lineDistanceToGo returns the signed distance from ppos to the point
// term along the given course; it is negative once term has been passed.
func lineDistanceToGo(ppos, term math.Point2LL, course float32) float32 {
	return -math.AlongTrackDistance(ppos, term, course)
}

// trackGuidance returns guidance to hold a course with no path.
func trackGuidance(course, track float32) GuidanceParameters {
	return GuidanceParameters{
		Law:             LawTrack,
		DesiredTrack:    course,
		TrackAngleError: math.DiffAngle(track, course),
	}
}

// headingGuidance returns guidance to hold a heading. Absent wind, the
// heading and track coincide, so the track-angle error is measured
// against the heading.
func headingGuidance(heading, track float32) GuidanceParameters {
	return GuidanceParameters{
		Law:             LawHeading,
		DesiredTrack:    heading,
		Heading:         heading,
		TrackAngleError: math.DiffAngle(track, heading),
	}
}

// nominalRoll returns the roll angle in degrees that flies a circle of
// the given radius in nm at the given ground speed.
func nominalRoll(gs, radius float32) float32 {
	if radius < degenerateDistance {
		return 0
	}
	v := gs * mpsPerKnot
	return math.Degrees(math.Atan(v * v / (radius * metersPerNM * gravity)))
}

///////////////////////////////////////////////////////////////////////////
// circle

// circle is a circular arc flown in a given direction, starting at the
// point on startRadial and sweeping through sweep degrees.
type circle struct {
	Center      math.Point2LL
	Radius      float32 // nm
	Clockwise   bool
	StartRadial float32 // true bearing from the center to the arc start
	Sweep       float32 // degrees, [0,360)
}

// radial returns the bearing from the center to p along with the
// distance between them.
func (c circle) radial(p math.Point2LL) (float32, float32) {
	return math.GreatCircleBearing(c.Center, p), math.GreatCircleDistance(c.Center, p)
}

// trackAt returns the track flown at the point on the circle with the
// given radial.
func (c circle) trackAt(radial float32) float32 {
	if c.Clockwise {
		return math.NormalizeHeading(radial + 90)
	}
	return math.NormalizeHeading(radial - 90)
}

// radialFor returns the radial of the point where the track flown around
// the circle is the given one.
func (c circle) radialFor(track float32) float32 {
	if c.Clockwise {
		return math.NormalizeHeading(track - 90)
	}
	return math.NormalizeHeading(track + 90)
}

func (c circle) pointAt(radial float32) math.Point2LL {
	return math.DestinationPoint(c.Center, c.Radius, radial)
}

func (c circle) Start() math.Point2LL { return c.pointAt(c.StartRadial) }

func (c circle) EndRadial() float32 {
	return math.NormalizeHeading(c.StartRadial + util.Select(c.Clockwise, c.Sweep, -c.Sweep))
}

func (c circle) End() math.Point2LL { return c.pointAt(c.EndRadial()) }

// progress returns the angle flown around the circle from the start to
// the given radial. Angles beyond the arc are split evenly between
// "before the start" (negative) and "past the end".
func (c circle) progress(radial float32) float32 {
	p := math.TurnAngle(c.StartRadial, radial, c.Clockwise)
	if p > c.Sweep+(360-c.Sweep)/2 {
		p -= 360
	}
	return p
}

func (c circle) DistanceToGo(ppos math.Point2LL) float32 {
	r, d := c.radial(ppos)
	if d < degenerateDistance {
		return c.Radius * math.Radians(c.Sweep)
	}
	return c.Radius * math.Radians(c.Sweep-c.progress(r))
}

func (c circle) IsAbeam(ppos math.Point2LL) bool {
	r, d := c.radial(ppos)
	if d < degenerateDistance {
		return false
	}
	p := c.progress(r)
	return p >= 0 && p <= c.Sweep
}

func (c circle) Length() float32 {
	return c.Radius * math.Radians(c.Sweep)
}

// Guidance returns lateral-path guidance around the circle. Roll is
// commanded while more than cutoff degrees of the arc remain.
func (c circle) Guidance(ppos math.Point2LL, track, gs, cutoff float32) GuidanceParameters {
	r, d := c.radial(ppos)
	if d < degenerateDistance {
		return zeroGuidance(LawLateralPath, track)
	}

	desired := c.trackAt(r)
	gp := GuidanceParameters{
		Law:             LawLateralPath,
		DesiredTrack:    desired,
		TrackAngleError: math.DiffAngle(track, desired),
	}
	// The center is to the right of the path for clockwise circles.
	if c.Clockwise {
		gp.CrossTrackError = c.Radius - d
	} else {
		gp.CrossTrackError = d - c.Radius
	}

	if c.Sweep-c.progress(r) > cutoff {
		gp.RollAngle = c.NominalRoll(gs)
	}
	return gp
}

// NominalRoll returns the signed roll for flying the circle.
func (c circle) NominalRoll(gs float32) float32 {
	roll := nominalRoll(gs, c.Radius)
	if !c.Clockwise {
		roll = -roll
	}
	return roll
}
