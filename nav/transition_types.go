// nav/transition_types.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/math"
)

const (
	// Type 2 turns flown the long way around hold maximum bank until
	// less than this much of the turn, measured in the coded direction,
	// remains.
	unnaturalTurnCaptureAngle = 130

	// Type 4 turns with a smaller radius are replaced by a direct join.
	minTurnToFixRadius = 0.05 // nm
)

// Type 1 and Type 3: fly-by at the previous leg's terminator.
func (t *Transition) initFlyBy(tp turnParameters) error {
	t.setTurnParameters(tp)

	pivot, ok := t.Previous.TerminatorLocation()
	if !ok {
		return ErrDegenerateTurn
	}
	c, start, end, err := flyByCircle(pivot, t.Previous.Bearing(), t.Next.InboundCourse(), tp)
	if err != nil {
		return err
	}
	t.setCircle(c)
	t.TurnStart, t.TurnEnd = start, end
	return nil
}

// Type 2: capture the next leg.
func (t *Transition) initCapture(tp turnParameters) {
	t.setTurnParameters(tp)
	t.natural = t.Next.TurnDirection() == av.TurnEither || t.SweptAngle <= 180
}

func (t *Transition) forcedRoll() float32 {
	if t.Clockwise {
		return t.MaxBank
	}
	return -t.MaxBank
}

func (t *Transition) captureGuidance(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	gp, ok := t.Next.GetGuidanceParameters(ppos, track, fs)
	if !ok {
		return gp, false
	}
	if !t.natural && t.remainingTurn(track, gp) >= unnaturalTurnCaptureAngle {
		gp.RollAngle = t.forcedRoll()
	}
	return gp, true
}

// remainingTurn returns how far the aircraft still has to turn, in the
// coded direction, to reach the next leg's desired track.
func (t *Transition) remainingTurn(track float32, gp GuidanceParameters) float32 {
	return math.TurnAngle(track, gp.DesiredTrack, t.Clockwise)
}

// Type 4: turn at the previous leg's terminator until tracking directly
// to the next leg's fix.
func (t *Transition) initTurnToFix(tp turnParameters) error {
	t.setTurnParameters(tp)
	if tp.Radius < minTurnToFixRadius {
		return ErrDegenerateTurn
	}

	pivot, ok := t.Previous.TerminatorLocation()
	if !ok {
		return ErrDegenerateTurn
	}
	fix, ok := t.Next.TerminatorLocation()
	if !ok {
		return ErrDegenerateTurn
	}

	c, end, err := tangentToFix(pivot, t.Previous.Bearing(), fix, tp)
	if err != nil {
		return err
	}
	t.setCircle(c)
	t.TurnStart, t.TurnEnd = pivot, end
	return nil
}
