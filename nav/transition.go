// nav/transition.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	"github.com/mmp/lnav/math"
)

// TransitionType identifies the geometric connector between two legs.
type TransitionType int

const (
	// TransitionType1 is a fly-by turn at the fix shared by the two legs.
	TransitionType1 TransitionType = iota + 1
	// TransitionType2 has no path of its own; the next leg is captured
	// directly, with the roll forced to the maximum when the coded turn
	// direction is the long way around.
	TransitionType2
	// TransitionType3 is a fly-by turn at a computed terminator.
	TransitionType3
	// TransitionType4 turns from the previous terminator until the
	// aircraft is tracking directly to the next leg's fix.
	TransitionType4
	// TransitionType5 is a hold entry; no guidance yet.
	TransitionType5
	// TransitionType6 is an AF-arc entry; no guidance yet.
	TransitionType6
)

func (t TransitionType) String() string {
	switch t {
	case TransitionType1, TransitionType2, TransitionType3, TransitionType4, TransitionType5, TransitionType6:
		return fmt.Sprintf("Type%d", int(t))
	default:
		return fmt.Sprintf("TransitionType(%d)", int(t))
	}
}

// Circular reports whether transitions of the type fly a circular arc.
func (t TransitionType) Circular() bool {
	switch t {
	case TransitionType1, TransitionType3, TransitionType4:
		return true
	case TransitionType2, TransitionType5, TransitionType6:
		return false
	default:
		panic("unhandled transition type " + t.String())
	}
}

// Transition is the connector flown between two legs. It holds
// non-owning references to the legs and is immutable after
// construction.
type Transition struct {
	Type     TransitionType
	Previous Leg
	Next     Leg

	Speed        float32 // knots
	CourseChange float32 // degrees, positive clockwise
	BankAngle    float32 // degrees
	MaxBank      float32 // degrees
	Radius       float32 // nm
	Clockwise    bool
	SweptAngle   float32 // degrees, [0,360)

	// Derived geometry; only meaningful for circular types.
	Center    math.Point2LL
	TurnStart math.Point2LL
	TurnEnd   math.Point2LL

	circle  circle
	natural bool // Type 2: the coded turn is the short way around
}

// NewTransition constructs a transition of the given type between prev
// and next. ErrDegenerateTurn is returned when the geometry can't be
// constructed and ErrTangentNotFound if a Type 4 turn has no tangent.
func NewTransition(typ TransitionType, prev, next Leg, fs FlightState) (*Transition, error) {
	tp := makeTurnParameters(prev, next, fs)
	t := &Transition{Type: typ, Previous: prev, Next: next}

	var err error
	switch typ {
	case TransitionType1, TransitionType3:
		err = t.initFlyBy(tp)
	case TransitionType2:
		t.initCapture(tp.withTurnDirection(next.TurnDirection()))
	case TransitionType4:
		err = t.initTurnToFix(tp.withTurnDirection(next.TurnDirection()))
	case TransitionType5, TransitionType6:
		t.setTurnParameters(tp)
	default:
		panic("unhandled transition type " + typ.String())
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s→%s: %w", typ, prev.Type(), next.Type(), err)
	}

	NavLog(NavLogTransition, "%s", t)
	return t, nil
}

func (t *Transition) setTurnParameters(tp turnParameters) {
	t.Speed = tp.Speed
	t.CourseChange = tp.CourseChange
	t.BankAngle = tp.BankAngle
	t.MaxBank = tp.MaxBank
	t.Radius = tp.Radius
	t.Clockwise = tp.Clockwise
	t.SweptAngle = tp.turnAngle()
}

func (t *Transition) setCircle(c circle) {
	t.circle = c
	t.Center = c.Center
	t.SweptAngle = c.Sweep
	t.Clockwise = c.Clockwise
}

// GetGuidanceParameters returns guidance around the turn for circular
// types. Type 2 defers to the next leg; types 5 and 6 have no guidance.
func (t *Transition) GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	switch t.Type {
	case TransitionType1, TransitionType3, TransitionType4:
		return t.circle.Guidance(ppos, track, fs.GS, rollCutoffAngle), true
	case TransitionType2:
		return t.captureGuidance(ppos, track, fs)
	case TransitionType5, TransitionType6:
		return GuidanceParameters{}, false
	default:
		panic("unhandled transition type " + t.Type.String())
	}
}

func (t *Transition) GetNominalRollAngle(gs float32) float32 {
	switch t.Type {
	case TransitionType1, TransitionType3, TransitionType4:
		return t.circle.NominalRoll(gs)
	case TransitionType2:
		if t.natural {
			return 0
		}
		return t.forcedRoll()
	case TransitionType5, TransitionType6:
		return 0
	default:
		panic("unhandled transition type " + t.Type.String())
	}
}

func (t *Transition) IsAbeam(ppos math.Point2LL) bool {
	switch t.Type {
	case TransitionType1, TransitionType3, TransitionType4:
		return t.circle.IsAbeam(ppos)
	case TransitionType2:
		return true
	case TransitionType5, TransitionType6:
		return false
	default:
		panic("unhandled transition type " + t.Type.String())
	}
}

func (t *Transition) GetDistanceToGo(ppos math.Point2LL) float32 {
	switch t.Type {
	case TransitionType1, TransitionType3, TransitionType4:
		return t.circle.DistanceToGo(ppos)
	case TransitionType2, TransitionType5, TransitionType6:
		return 0
	default:
		panic("unhandled transition type " + t.Type.String())
	}
}

// Length returns the length of the transition's path in nm.
func (t *Transition) Length() float32 {
	if t.Type.Circular() {
		return t.circle.Length()
	}
	return 0
}

// LeadDistance returns the distance before the previous leg's terminator
// at which a fly-by turn starts.
func (t *Transition) LeadDistance() float32 {
	if t.Type != TransitionType1 && t.Type != TransitionType3 {
		return 0
	}
	pivot, _ := t.Previous.TerminatorLocation()
	return math.GreatCircleDistance(t.TurnStart, pivot)
}

// Complete reports whether the transition has been flown and the next
// leg should become active.
func (t *Transition) Complete(ppos math.Point2LL, track float32, fs FlightState) bool {
	switch t.Type {
	case TransitionType1, TransitionType3, TransitionType4:
		return t.circle.DistanceToGo(ppos) <= 0
	case TransitionType2:
		if t.natural {
			return true
		}
		gp, ok := t.Next.GetGuidanceParameters(ppos, track, fs)
		return !ok || t.remainingTurn(track, gp) < unnaturalTurnCaptureAngle
	case TransitionType5, TransitionType6:
		return true
	default:
		panic("unhandled transition type " + t.Type.String())
	}
}

func (t *Transition) String() string {
	dir := map[bool]string{true: "cw", false: "ccw"}[t.Clockwise]
	s := fmt.Sprintf("%s %s→%s crs chg %+.1f speed %.0f bank %.1f radius %.3fnm %s swept %.1f", t.Type,
		t.Previous.Type(), t.Next.Type(), t.CourseChange, t.Speed, t.BankAngle, t.Radius, dir, t.SweptAngle)
	if t.Type.Circular() {
		s += fmt.Sprintf(" center %s start %s end %s", t.Center.DDString(), t.TurnStart.DDString(),
			t.TurnEnd.DDString())
	}
	return s
}
