// nav/legs_course.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/math"
)

// TerminationKind describes the condition that ends a course or heading
// leg.
type TerminationKind int

const (
	TerminateAltitude  TerminationKind = iota // reaching an altitude
	TerminateDistance                         // flying a distance from the origin
	TerminateDME                              // reaching a DME distance from a navaid
	TerminateRadial                           // crossing a navaid radial
	TerminateIntercept                        // intercepting the following leg
	TerminateManual                           // never
)

func (k TerminationKind) String() string {
	return [...]string{"altitude", "distance", "dme", "radial", "intercept", "manual"}[k]
}

// Termination is the termination condition of a course or heading leg,
// from which the location of its terminator can be predicted.
type Termination struct {
	Kind TerminationKind

	Altitude float32 // TerminateAltitude, feet
	Distance float32 // TerminateDistance, nm

	// TerminateDME and TerminateRadial
	Navaid math.Point2LL
	DME    float32 // nm
	Radial float32 // true

	// TerminateIntercept: the course line to be intercepted.
	InterceptFix    math.Point2LL
	InterceptCourse float32 // true
	HasIntercept    bool
}

func (t Termination) String() string {
	switch t.Kind {
	case TerminateAltitude:
		return fmt.Sprintf("until %.0f'", t.Altitude)
	case TerminateDistance:
		return fmt.Sprintf("for %.1fnm", t.Distance)
	case TerminateDME:
		return fmt.Sprintf("until %.1f DME", t.DME)
	case TerminateRadial:
		return fmt.Sprintf("until radial %03.0f", t.Radial)
	case TerminateIntercept:
		if t.HasIntercept {
			return fmt.Sprintf("to intercept %05.1f", t.InterceptCourse)
		}
		return "to intercept"
	default:
		return "until manual termination"
	}
}

// predict returns the point where a leg starting at origin and flying
// the given true course would terminate. The returned Boolean is false
// if the leg never terminates.
func (t Termination) predict(origin math.Point2LL, course float32, ctx BuildContext) (math.Point2LL, bool) {
	dir := headingVector(course)

	switch t.Kind {
	case TerminateAltitude:
		d := max(0, (t.Altitude-ctx.Altitude)/ctx.climbGradient())
		return math.DestinationPoint(origin, d, course), true

	case TerminateDistance:
		return math.DestinationPoint(origin, t.Distance, course), true

	case TerminateDME:
		frame := newLocalFrame(origin)
		d, ok := math.RayCircleIntersect([2]float32{}, dir, frame.toNM(t.Navaid), t.DME)
		if !ok {
			return math.Point2LL{}, false
		}
		return frame.toLL(math.Scale2f(dir, d)), true

	case TerminateRadial:
		frame := newLocalFrame(origin)
		n := frame.toNM(t.Navaid)
		rdir := headingVector(t.Radial)
		q, ok := math.LineLineIntersect([2]float32{}, dir, n, math.Add2f(n, rdir))
		if !ok || math.Dot(q, dir) < 0 || math.Dot(math.Sub2f(q, n), rdir) < 0 {
			return math.Point2LL{}, false
		}
		return frame.toLL(q), true

	case TerminateIntercept:
		if !t.HasIntercept {
			return math.Point2LL{}, false
		}
		frame := newLocalFrame(origin)
		f := frame.toNM(t.InterceptFix)
		q, ok := math.LineLineIntersect([2]float32{}, dir, f, math.Add2f(f, headingVector(t.InterceptCourse)))
		if !ok || math.Dot(q, dir) < 0 {
			return math.Point2LL{}, false
		}
		return frame.toLL(q), true

	case TerminateManual:
		return math.Point2LL{}, false

	default:
		panic("unhandled termination kind " + t.Kind.String())
	}
}

///////////////////////////////////////////////////////////////////////////
// FA, FC, FD, FM

// FixCourseLeg is a leg that flies a course from a fix until a
// termination condition: FA, FC, FD and FM. Cross-track error is
// measured from the great circle through the fix.
type FixCourseLeg struct {
	legBase
	course     float32 // true
	term       Termination
	terminator math.Point2LL
	bounded    bool
}

func NewFixCourseLeg(kind LegType, fix av.Waypoint, course float32, term Termination, ctx BuildContext) *FixCourseLeg {
	l := &FixCourseLeg{
		legBase: legBase{kind: kind, fix: newWaypoint(fix)},
		course:  math.NormalizeHeading(course),
		term:    term,
	}
	l.terminator, l.bounded = term.predict(fix.Location, l.course, ctx)
	return l
}

func (l *FixCourseLeg) Bearing() float32       { return l.course }
func (l *FixCourseLeg) InboundCourse() float32 { return l.course }

func (l *FixCourseLeg) Distance() float32 {
	if !l.bounded {
		return 0
	}
	return math.GreatCircleDistance(l.fix.Location, l.terminator)
}

func (l *FixCourseLeg) InitialLocation() (math.Point2LL, bool)    { return l.fix.Location, true }
func (l *FixCourseLeg) TerminatorLocation() (math.Point2LL, bool) { return l.terminator, l.bounded }

func (l *FixCourseLeg) GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	if math.GreatCircleDistance(ppos, l.fix.Location) < degenerateDistance {
		return zeroGuidance(LawLateralPath, track), true
	}
	return lineGuidance(ppos, l.fix.Location, l.course, track), true
}

func (l *FixCourseLeg) IsAbeam(ppos math.Point2LL) bool {
	at := math.AlongTrackDistance(ppos, l.fix.Location, l.course)
	if !l.bounded {
		return at >= 0
	}
	return at >= 0 && at <= l.Distance()
}

func (l *FixCourseLeg) GetDistanceToGo(ppos math.Point2LL) float32 {
	if !l.bounded {
		return 0
	}
	return lineDistanceToGo(ppos, l.terminator, l.courseAtTerminator())
}

func (l *FixCourseLeg) courseAtTerminator() float32 {
	if math.GreatCircleDistance(l.fix.Location, l.terminator) < degenerateDistance {
		return l.course
	}
	return finalCourse(l.fix.Location, l.terminator)
}

func (l *FixCourseLeg) String() string {
	return l.describe(fmt.Sprintf("crs %05.1f %s", l.course, l.term))
}

///////////////////////////////////////////////////////////////////////////
// CA, CD, CI, CR, VA, VD, VI, VM, VR

// CourseLeg is a leg that holds a course (C* legs, TRACK law) or a
// heading (V* legs, HEADING law) from wherever the previous leg ended
// until a termination condition. There is no lateral path and so no
// cross-track error.
type CourseLeg struct {
	legBase
	law        GuidanceLaw
	course     float32 // true course or heading
	term       Termination
	origin     math.Point2LL
	hasOrigin  bool
	terminator math.Point2LL
	bounded    bool
}

// NewCourseLeg returns a course or heading leg; the guidance law follows
// from the leg type. origin is the previous leg's terminator, if known.
func NewCourseLeg(kind LegType, wp av.Waypoint, origin *math.Point2LL, course float32, turn av.TurnDirection,
	term Termination, ctx BuildContext) *CourseLeg {
	l := &CourseLeg{
		legBase: legBase{kind: kind, fix: newWaypoint(wp), turn: turn},
		course:  math.NormalizeHeading(course),
		term:    term,
	}
	switch kind {
	case LegCA, LegCD, LegCI, LegCR:
		l.law = LawTrack
	case LegVA, LegVD, LegVI, LegVM, LegVR:
		l.law = LawHeading
	default:
		panic("NewCourseLeg called for " + kind.String())
	}

	if origin != nil {
		l.origin, l.hasOrigin = *origin, true
		l.terminator, l.bounded = term.predict(*origin, l.course, ctx)
	}
	return l
}

func (l *CourseLeg) Bearing() float32       { return l.course }
func (l *CourseLeg) InboundCourse() float32 { return l.course }

func (l *CourseLeg) Distance() float32 {
	if !l.bounded {
		return 0
	}
	return math.GreatCircleDistance(l.origin, l.terminator)
}

func (l *CourseLeg) InitialLocation() (math.Point2LL, bool)    { return l.origin, l.hasOrigin }
func (l *CourseLeg) TerminatorLocation() (math.Point2LL, bool) { return l.terminator, l.bounded }

func (l *CourseLeg) GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	if l.law == LawHeading {
		return headingGuidance(l.course, track), true
	}
	return trackGuidance(l.course, track), true
}

func (l *CourseLeg) IsAbeam(ppos math.Point2LL) bool {
	if !l.hasOrigin {
		return true
	}
	at := math.AlongTrackDistance(ppos, l.origin, l.course)
	if !l.bounded {
		return at >= 0
	}
	return at >= 0 && at <= l.Distance()
}

func (l *CourseLeg) GetDistanceToGo(ppos math.Point2LL) float32 {
	if !l.bounded {
		return 0
	}
	return lineDistanceToGo(ppos, l.terminator, l.course)
}

// Law returns the guidance law the leg uses.
func (l *CourseLeg) Law() GuidanceLaw { return l.law }

func (l *CourseLeg) String() string {
	what := "crs"
	if l.law == LawHeading {
		what = "hdg"
	}
	return l.describe(fmt.Sprintf("%s %05.1f %s", what, l.course, l.term))
}
