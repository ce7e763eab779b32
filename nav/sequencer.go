// nav/sequencer.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/mmp/lnav/log"
	"github.com/mmp/lnav/math"
)

const (
	// An unbounded intercept leg is done once the aircraft is this close
	// to the following leg's path.
	interceptCaptureDistance = 0.25 // nm
	// Fly-by turns may start this much before their tangent point.
	turnLeadSlop = 0.5 // nm
	// A DF leg with no origin is done once the distance to its fix starts
	// increasing within this distance of it.
	directPassDistance = 1 // nm
	// Bound on the number of elements sequenced in a single update.
	maxSequencePerUpdate = 8
)

// Sequencer tracks the active element of a Segment as the aircraft flies
// it: either a leg or the transition into a leg.
type Sequencer struct {
	seg          *Segment
	leg          int
	inTransition bool
	armed        bool // HA, HF, PI and DF: far enough along to terminate
	stopped      bool
	done         bool
	lastDTG      float32
	lg           *log.Logger
}

func NewSequencer(seg *Segment, lg *log.Logger) *Sequencer {
	return &Sequencer{seg: seg, lg: lg}
}

// Index returns the index of the active leg, or of the leg the active
// transition leads to.
func (s *Sequencer) Index() int { return s.leg }

func (s *Sequencer) ActiveLeg() Leg { return s.seg.Elements[s.leg].Leg }

// ActiveTransition returns the transition being flown, or nil if a leg is
// active.
func (s *Sequencer) ActiveTransition() *Transition {
	if s.inTransition {
		return s.seg.Elements[s.leg].Join.Transition
	}
	return nil
}

// Active returns the element the aircraft is flying.
func (s *Sequencer) Active() Guidable {
	if t := s.ActiveTransition(); t != nil {
		return t
	}
	return s.ActiveLeg()
}

// AtDiscontinuity reports whether sequencing has stopped at a
// discontinuity following the active leg.
func (s *Sequencer) AtDiscontinuity() bool { return s.stopped }

// Done reports whether the last leg of the segment has been completed.
func (s *Sequencer) Done() bool { return s.done }

// ClearDiscontinuity resumes sequencing after a discontinuity; the leg
// following it becomes active.
func (s *Sequencer) ClearDiscontinuity() {
	if !s.stopped {
		return
	}
	s.stopped = false
	s.advance(false)
	s.lg.Infof("discontinuity cleared, active leg %d: %s", s.leg, s.ActiveLeg())
}

// Guidance returns the guidance for the active element. When the active
// element has no guidance of its own, the guidance of the leg it leads
// to is returned.
func (s *Sequencer) Guidance(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	gp, ok := s.Active().GetGuidanceParameters(ppos, track, fs)
	if !ok {
		gp, ok = s.ActiveLeg().GetGuidanceParameters(ppos, track, fs)
	}
	if ok {
		NavLog(NavLogGuidance, "leg %d transition %v: %s", s.leg, s.inTransition, gp)
	}
	return gp, ok
}

// Update sequences past any elements that ppos has completed. It
// returns true if the active element changed.
func (s *Sequencer) Update(ppos math.Point2LL, track float32, fs FlightState) bool {
	changed := false
	for range maxSequencePerUpdate {
		if s.stopped || s.done {
			break
		}

		if t := s.ActiveTransition(); t != nil {
			if !t.Complete(ppos, track, fs) {
				break
			}
			NavLog(NavLogSequence, "transition into leg %d complete", s.leg)
			s.inTransition = false
			changed = true
			continue
		}

		if !s.legComplete(ppos, track, fs) {
			break
		}
		NavLog(NavLogSequence, "leg %d complete: %s", s.leg, s.ActiveLeg())
		changed = true

		if s.leg+1 == len(s.seg.Elements) {
			s.done = true
			break
		}
		if s.seg.Elements[s.leg+1].Join.Kind == JoinDiscontinuity {
			s.stopped = true
			s.lg.Infof("discontinuity after leg %d: %s", s.leg, s.ActiveLeg())
			break
		}
		s.advance(true)
	}
	return changed
}

func (s *Sequencer) advance(withTransition bool) {
	s.leg++
	s.armed = false
	s.inTransition = withTransition && s.seg.Elements[s.leg].Join.Kind == JoinTransition
}

// legComplete reports whether the active leg is finished: it's reached
// its terminator, or, for fly-by turns, the turn into the next leg has
// begun.
func (s *Sequencer) legComplete(ppos math.Point2LL, track float32, fs FlightState) bool {
	leg := s.ActiveLeg()
	var next *SegmentElement
	if s.leg+1 < len(s.seg.Elements) {
		next = &s.seg.Elements[s.leg+1]
	}

	switch leg.Type() {
	case LegFM, LegVM, LegHM:
		return false

	case LegHA, LegHF:
		// A hold starts and ends at its fix, so past the fix the distance
		// to go wraps around to the full circuit. It's done once the
		// aircraft is in the second half of the circuit and then either
		// reaches the fix or wraps around.
		dtg, circuit := leg.GetDistanceToGo(ppos), leg.Distance()
		if dtg > 0 && dtg < circuit/2 {
			s.armed = true
		}
		return s.armed && (dtg <= 0 || dtg > 3*circuit/4)

	case LegPI:
		// The procedure turn's path crosses itself at its terminator, so
		// the distance to go is only meaningful in the second half.
		dtg := leg.GetDistanceToGo(ppos)
		if dtg > 0 && dtg < leg.Distance()/2 {
			s.armed = true
		}
		return s.armed && dtg <= 0

	case LegIF:
		return true

	case LegDF:
		if _, ok := leg.InitialLocation(); !ok {
			// The distance to go is just the distance to the fix, which
			// doesn't go to zero unless the aircraft flies right over it.
			dtg := leg.GetDistanceToGo(ppos)
			passed := s.armed && dtg > s.lastDTG && s.lastDTG < directPassDistance
			s.armed, s.lastDTG = true, dtg
			return dtg <= 0 || passed
		}
	}

	if _, bounded := leg.TerminatorLocation(); !bounded {
		if (leg.Type() == LegCI || leg.Type() == LegVI) && next != nil {
			gp, ok := next.Leg.GetGuidanceParameters(ppos, track, fs)
			return ok && gp.Law == LawLateralPath && math.Abs(gp.CrossTrackError) < interceptCaptureDistance
		}
		return false
	}

	dtg := leg.GetDistanceToGo(ppos)
	if dtg <= 0 {
		return true
	}
	if next != nil && next.Join.Kind == JoinTransition {
		t := next.Join.Transition
		if (t.Type == TransitionType1 || t.Type == TransitionType3) && t.IsAbeam(ppos) {
			return dtg <= t.LeadDistance()+turnLeadSlop
		}
	}
	return false
}
