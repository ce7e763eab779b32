// nav/legs_fix.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/math"
)

///////////////////////////////////////////////////////////////////////////
// IF

// IFLeg is the initial fix of a sequence. It has no path of its own.
type IFLeg struct {
	legBase
}

func NewIFLeg(fix av.Waypoint) *IFLeg {
	return &IFLeg{legBase: legBase{kind: LegIF, fix: newWaypoint(fix)}}
}

func (l *IFLeg) Bearing() float32       { return 0 }
func (l *IFLeg) InboundCourse() float32 { return 0 }
func (l *IFLeg) Distance() float32      { return 0 }

func (l *IFLeg) InitialLocation() (math.Point2LL, bool)    { return l.fix.Location, true }
func (l *IFLeg) TerminatorLocation() (math.Point2LL, bool) { return l.fix.Location, true }

func (l *IFLeg) GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	return zeroGuidance(LawLateralPath, track), true
}

func (l *IFLeg) IsAbeam(ppos math.Point2LL) bool            { return false }
func (l *IFLeg) GetDistanceToGo(ppos math.Point2LL) float32 { return 0 }
func (l *IFLeg) String() string                             { return l.describe("") }

///////////////////////////////////////////////////////////////////////////
// TF

// TFLeg is a great-circle track between two fixes. Its course and length
// are computed once, at construction.
type TFLeg struct {
	legBase
	from        *av.Waypoint // nil if the previous leg has no terminator
	bearing     float32
	finalCourse float32
	distance    float32
}

// NewTFLeg returns a TF leg from the given fix to the given one; if from
// is nil, the leg degenerates to a direct-to the fix from the aircraft's
// position.
func NewTFLeg(from *av.Waypoint, to av.Waypoint) *TFLeg {
	l := &TFLeg{legBase: legBase{kind: LegTF, fix: newWaypoint(to)}}
	if from != nil {
		l.from = newWaypoint(*from)
		l.bearing = math.GreatCircleBearing(from.Location, to.Location)
		l.finalCourse = finalCourse(from.Location, to.Location)
		l.distance = math.GreatCircleDistance(from.Location, to.Location)
	}
	return l
}

func (l *TFLeg) Bearing() float32       { return l.bearing }
func (l *TFLeg) InboundCourse() float32 { return l.bearing }
func (l *TFLeg) Distance() float32      { return l.distance }

func (l *TFLeg) InitialLocation() (math.Point2LL, bool) {
	if l.from == nil {
		return math.Point2LL{}, false
	}
	return l.from.Location, true
}

func (l *TFLeg) TerminatorLocation() (math.Point2LL, bool) { return l.fix.Location, true }

func (l *TFLeg) GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	if l.from == nil {
		return directGuidance(ppos, l.fix.Location, track), true
	}
	return greatCircleGuidance(ppos, l.from.Location, l.fix.Location, track), true
}

func (l *TFLeg) IsAbeam(ppos math.Point2LL) bool {
	if l.from == nil {
		return true
	}
	at := math.AlongTrackDistance(ppos, l.from.Location, l.bearing)
	return at >= 0 && at <= l.distance
}

func (l *TFLeg) GetDistanceToGo(ppos math.Point2LL) float32 {
	if l.from == nil {
		return math.GreatCircleDistance(ppos, l.fix.Location)
	}
	return lineDistanceToGo(ppos, l.fix.Location, l.finalCourse)
}

func (l *TFLeg) String() string {
	if l.from == nil {
		return l.describe("")
	}
	return l.describe(fmt.Sprintf("from %s %05.1f %.1fnm", l.from.Ident, l.bearing, l.distance))
}

// directGuidance returns guidance for flying direct to fix from ppos; by
// construction there is no cross-track error.
func directGuidance(ppos, fix math.Point2LL, track float32) GuidanceParameters {
	if math.GreatCircleDistance(ppos, fix) < degenerateDistance {
		return zeroGuidance(LawLateralPath, track)
	}
	brg := math.GreatCircleBearing(ppos, fix)
	return GuidanceParameters{
		Law:             LawLateralPath,
		DesiredTrack:    brg,
		TrackAngleError: math.DiffAngle(track, brg),
	}
}

///////////////////////////////////////////////////////////////////////////
// CF

// CFLeg is a course to a fix: the great circle through the fix with the
// given inbound course.
type CFLeg struct {
	legBase
	course   float32 // true
	distance float32 // 0 if not coded
}

func NewCFLeg(fix av.Waypoint, course, distance float32, turn av.TurnDirection) *CFLeg {
	return &CFLeg{
		legBase:  legBase{kind: LegCF, fix: newWaypoint(fix), turn: turn},
		course:   math.NormalizeHeading(course),
		distance: distance,
	}
}

func (l *CFLeg) Bearing() float32       { return l.course }
func (l *CFLeg) InboundCourse() float32 { return l.course }
func (l *CFLeg) Distance() float32      { return l.distance }

func (l *CFLeg) InitialLocation() (math.Point2LL, bool) {
	if l.distance == 0 {
		return math.Point2LL{}, false
	}
	return math.DestinationPoint(l.fix.Location, l.distance, math.OppositeHeading(l.course)), true
}

func (l *CFLeg) TerminatorLocation() (math.Point2LL, bool) { return l.fix.Location, true }

func (l *CFLeg) GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	if math.GreatCircleDistance(ppos, l.fix.Location) < degenerateDistance {
		return zeroGuidance(LawLateralPath, track), true
	}
	return lineGuidance(ppos, l.fix.Location, l.course, track), true
}

func (l *CFLeg) IsAbeam(ppos math.Point2LL) bool {
	at := math.AlongTrackDistance(ppos, l.fix.Location, l.course)
	if l.distance == 0 {
		return at <= 0
	}
	return at <= 0 && at >= -l.distance
}

func (l *CFLeg) GetDistanceToGo(ppos math.Point2LL) float32 {
	return lineDistanceToGo(ppos, l.fix.Location, l.course)
}

func (l *CFLeg) String() string {
	return l.describe(fmt.Sprintf("crs %05.1f", l.course))
}

///////////////////////////////////////////////////////////////////////////
// DF

// DFLeg is a direct to a fix from wherever the previous leg ended.
type DFLeg struct {
	legBase
	origin    math.Point2LL
	hasOrigin bool
}

// NewDFLeg returns a DF leg. If origin is nil, the path starts from the
// aircraft's position when guidance is requested.
func NewDFLeg(origin *math.Point2LL, fix av.Waypoint, turn av.TurnDirection) *DFLeg {
	l := &DFLeg{legBase: legBase{kind: LegDF, fix: newWaypoint(fix), turn: turn}}
	if origin != nil && math.GreatCircleDistance(*origin, fix.Location) > degenerateDistance {
		l.origin, l.hasOrigin = *origin, true
	}
	return l
}

func (l *DFLeg) Bearing() float32 {
	if !l.hasOrigin {
		return 0
	}
	return finalCourse(l.origin, l.fix.Location)
}

func (l *DFLeg) InboundCourse() float32 {
	if !l.hasOrigin {
		return 0
	}
	return math.GreatCircleBearing(l.origin, l.fix.Location)
}

func (l *DFLeg) Distance() float32 {
	if !l.hasOrigin {
		return 0
	}
	return math.GreatCircleDistance(l.origin, l.fix.Location)
}

func (l *DFLeg) InitialLocation() (math.Point2LL, bool)    { return l.origin, l.hasOrigin }
func (l *DFLeg) TerminatorLocation() (math.Point2LL, bool) { return l.fix.Location, true }

// GetGuidanceParameters always steers direct from the present position;
// the origin only determines the leg's nominal courses and length, since
// the turn onto the leg ends wherever the aircraft first points at the
// fix.
func (l *DFLeg) GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	return directGuidance(ppos, l.fix.Location, track), true
}

func (l *DFLeg) IsAbeam(ppos math.Point2LL) bool {
	if !l.hasOrigin {
		return true
	}
	at := math.AlongTrackDistance(ppos, l.origin, l.InboundCourse())
	return at >= 0 && at <= l.Distance()
}

func (l *DFLeg) GetDistanceToGo(ppos math.Point2LL) float32 {
	if !l.hasOrigin {
		return math.GreatCircleDistance(ppos, l.fix.Location)
	}
	return lineDistanceToGo(ppos, l.fix.Location, l.Bearing())
}

func (l *DFLeg) String() string { return l.describe("") }
