// nav/legs_arc.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/math"
	"github.com/mmp/lnav/util"
)

// ArcLeg is a constant-radius arc ending at a fix: either an RF leg,
// defined by its arc center, or an AF leg, a DME arc around a navaid.
type ArcLeg struct {
	legBase
	circle    circle
	center    av.Waypoint
	origin    math.Point2LL
	hasOrigin bool
}

// arcDirection returns whether an arc from startRadial to endRadial is
// flown clockwise; without a coded turn direction, the shorter way
// around is used.
func arcDirection(turn av.TurnDirection, startRadial, endRadial float32) bool {
	switch turn {
	case av.TurnRight:
		return true
	case av.TurnLeft:
		return false
	default:
		return math.DiffAngle(startRadial, endRadial) >= 0
	}
}

// NewRFLeg returns an RF leg ending at fix with the given arc center. A
// zero radius is replaced with the center-to-fix distance. origin is the
// previous leg's terminator; if it isn't known, the arc is taken to
// sweep 90 degrees.
func NewRFLeg(origin *math.Point2LL, fix, center av.Waypoint, radius float32, turn av.TurnDirection) (*ArcLeg, error) {
	if center.Location.IsZero() {
		return nil, fmt.Errorf("RF %s: no center: %w", fix.Ident, ErrMissingArcData)
	}
	if radius <= 0 {
		radius = math.GreatCircleDistance(center.Location, fix.Location)
	}
	if radius < degenerateDistance {
		return nil, fmt.Errorf("RF %s: zero radius: %w", fix.Ident, ErrMissingArcData)
	}

	l := &ArcLeg{legBase: legBase{kind: LegRF, fix: newWaypoint(fix), turn: turn}, center: center}
	endRadial := math.GreatCircleBearing(center.Location, fix.Location)
	var startRadial float32
	if origin != nil {
		l.origin, l.hasOrigin = *origin, true
		startRadial = math.GreatCircleBearing(center.Location, *origin)
	} else {
		startRadial = math.NormalizeHeading(endRadial - util.Select[float32](turn != av.TurnLeft, 90, -90))
	}
	l.initCircle(radius, startRadial, endRadial)
	return l, nil
}

// NewAFLeg returns an AF leg: a DME arc of radius rho around navaid,
// from the boundary radial (true) to the fix. origin, if known, takes
// precedence over the boundary radial for the start of the arc.
func NewAFLeg(origin *math.Point2LL, fix, navaid av.Waypoint, boundaryRadial, rho float32, turn av.TurnDirection) (*ArcLeg, error) {
	if navaid.Location.IsZero() {
		return nil, fmt.Errorf("AF %s: no navaid: %w", fix.Ident, ErrMissingArcData)
	}
	if rho <= 0 && !fix.Location.IsZero() {
		rho = math.GreatCircleDistance(navaid.Location, fix.Location)
	}
	if rho < degenerateDistance {
		return nil, fmt.Errorf("AF %s: no DME distance: %w", fix.Ident, ErrMissingArcData)
	}

	l := &ArcLeg{legBase: legBase{kind: LegAF, fix: newWaypoint(fix), turn: turn}, center: navaid}
	endRadial := math.GreatCircleBearing(navaid.Location, fix.Location)
	startRadial := math.NormalizeHeading(boundaryRadial)
	if origin != nil {
		l.origin, l.hasOrigin = *origin, true
		startRadial = math.GreatCircleBearing(navaid.Location, *origin)
	}
	l.initCircle(rho, startRadial, endRadial)
	return l, nil
}

func (l *ArcLeg) initCircle(radius, startRadial, endRadial float32) {
	cw := arcDirection(l.turn, startRadial, endRadial)
	l.circle = circle{
		Center:      l.center.Location,
		Radius:      radius,
		Clockwise:   cw,
		StartRadial: startRadial,
		Sweep:       math.TurnAngle(startRadial, endRadial, cw),
	}
}

func (l *ArcLeg) Bearing() float32       { return l.circle.trackAt(l.circle.EndRadial()) }
func (l *ArcLeg) InboundCourse() float32 { return l.circle.trackAt(l.circle.StartRadial) }
func (l *ArcLeg) Distance() float32      { return l.circle.Length() }
func (l *ArcLeg) IsCircularArc() bool    { return true }

func (l *ArcLeg) Radius() float32     { return l.circle.Radius }
func (l *ArcLeg) Clockwise() bool     { return l.circle.Clockwise }
func (l *ArcLeg) Sweep() float32      { return l.circle.Sweep }
func (l *ArcLeg) Center() av.Waypoint { return l.center }

func (l *ArcLeg) InitialLocation() (math.Point2LL, bool) {
	if l.hasOrigin {
		return l.origin, true
	}
	return l.circle.Start(), true
}

func (l *ArcLeg) TerminatorLocation() (math.Point2LL, bool) { return l.fix.Location, true }

func (l *ArcLeg) GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	return l.circle.Guidance(ppos, track, fs.GS, 0), true
}

func (l *ArcLeg) GetNominalRollAngle(gs float32) float32 { return l.circle.NominalRoll(gs) }

func (l *ArcLeg) IsAbeam(ppos math.Point2LL) bool { return l.circle.IsAbeam(ppos) }

func (l *ArcLeg) GetDistanceToGo(ppos math.Point2LL) float32 { return l.circle.DistanceToGo(ppos) }

func (l *ArcLeg) String() string {
	return l.describe(fmt.Sprintf("center %s r %.2fnm %s %.0f deg", l.center.Ident, l.circle.Radius,
		util.Select(l.circle.Clockwise, "cw", "ccw"), l.circle.Sweep))
}
