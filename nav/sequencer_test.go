// nav/sequencer_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"testing"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/math"
)

func mustSegment(t *testing.T, legs ...Leg) *Segment {
	t.Helper()
	seg, err := BuildSegment(legs, testFS, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := seg.Validate(); err != nil {
		t.Fatal(err)
	}
	return seg
}

func TestSequencerFlyBy(t *testing.T) {
	south := math.DestinationPoint(testB, 10, 180)
	seg := mustSegment(t,
		NewIFLeg(wp("A", testA)),
		NewTFLeg(&av.Waypoint{Ident: "A", Location: testA}, wp("B", testB)),
		NewTFLeg(&av.Waypoint{Ident: "B", Location: testB}, wp("S", south)))
	tr := seg.Elements[2].Join.Transition
	if tr == nil || tr.Type != TransitionType1 {
		t.Fatalf("expected a fly-by at B, got %s", seg.Elements[2].Join)
	}

	s := NewSequencer(seg, nil)
	if s.Index() != 0 || s.ActiveLeg().Type() != LegIF {
		t.Fatalf("expected to start on the IF")
	}

	// The IF is passed immediately.
	if !s.Update(testA, 90, testFS) || s.Index() != 1 || s.ActiveTransition() != nil {
		t.Fatalf("expected the first TF to be active")
	}

	// Halfway along, nothing changes.
	mid := math.DestinationPoint(testA, 5, 90)
	if s.Update(mid, 90, testFS) {
		t.Errorf("unexpected sequencing halfway along the leg")
	}
	if gp, ok := s.Guidance(mid, 90, testFS); !ok || !approxEqual(gp.CrossTrackError, 0, 0.01) {
		t.Errorf("unexpected guidance %s", gp)
	}

	// A few degrees into the turn, the transition is active.
	inTurn := tr.circle.pointAt(tr.circle.StartRadial + 5)
	if !s.Update(inTurn, 95, testFS) || s.ActiveTransition() != tr || s.Active() != Guidable(tr) {
		t.Fatalf("expected the transition to be active")
	}
	if s.Index() != 2 {
		t.Errorf("expected the transition to lead to leg 2, got %d", s.Index())
	}
	if gp, _ := s.Guidance(inTurn, 95, testFS); gp.RollAngle <= 0 {
		t.Errorf("expected right roll in the turn, got %s", gp)
	}

	// Past the end of the turn, the second TF is active.
	pastTurn := tr.circle.pointAt(tr.circle.EndRadial() + 3)
	if !s.Update(pastTurn, 180, testFS) || s.ActiveTransition() != nil || s.Index() != 2 {
		t.Fatalf("expected the second TF to be active")
	}

	// Past S, we're done.
	s.Update(math.DestinationPoint(south, 0.1, 180), 180, testFS)
	if !s.Done() {
		t.Errorf("expected the sequence to be done")
	}
}

func TestSequencerDiscontinuity(t *testing.T) {
	seg := mustSegment(t,
		NewIFLeg(wp("A", testA)),
		NewTFLeg(&av.Waypoint{Ident: "A", Location: testA}, wp("B", testB)),
		NewIFLeg(wp("C", testC)),
		NewTFLeg(&av.Waypoint{Ident: "C", Location: testC}, wp("P0", testP0)))
	if seg.Elements[2].Join.Kind != JoinDiscontinuity {
		t.Fatalf("expected a discontinuity before the second IF")
	}

	s := NewSequencer(seg, nil)
	s.Update(testA, 90, testFS)
	s.Update(math.DestinationPoint(testB, 0.5, 90), 90, testFS)
	if !s.AtDiscontinuity() || s.Index() != 1 {
		t.Fatalf("expected to stop at the discontinuity on leg 1, at %d", s.Index())
	}
	// Guidance continues along the last leg.
	if _, ok := s.Guidance(testB, 90, testFS); !ok {
		t.Errorf("expected guidance at the discontinuity")
	}
	if s.Update(testC, 90, testFS) {
		t.Errorf("expected no sequencing past a discontinuity")
	}

	s.ClearDiscontinuity()
	if s.AtDiscontinuity() || s.Index() != 2 {
		t.Fatalf("expected the IF after the discontinuity to be active")
	}
	s.Update(testC, 270, testFS)
	if s.Index() != 3 {
		t.Errorf("expected the final TF to be active, got %d", s.Index())
	}
}

func TestSequencerHold(t *testing.T) {
	ctx := BuildContext{Speed: 150}
	hold := NewHoldLeg(LegHF, wp("A", testA), 90, av.TurnRight, 1, true, ctx)
	seg := mustSegment(t, NewIFLeg(wp("A", testA)), hold)

	s := NewSequencer(seg, nil)
	s.Update(testA, 90, testFS)
	if s.ActiveLeg() != Leg(hold) {
		t.Fatalf("expected the hold to be active")
	}
	// Still at the fix: the hold has just started.
	if s.Update(testA, 90, testFS) || s.Done() {
		t.Errorf("expected the hold to not complete at its start")
	}

	// Fly around the racetrack.
	r := hold.Radius()
	for _, p := range []math.Point2LL{
		math.DestinationPoint(testA, 2*r, 180),
		math.DestinationPoint(math.DestinationPoint(testA, 2*r, 180), hold.LegLength()/2, 270),
		math.DestinationPoint(testA, hold.LegLength()/2, 270),
	} {
		s.Update(p, 0, testFS)
		if s.Done() {
			t.Fatalf("hold completed early at %s", p.DDString())
		}
	}
	s.Update(math.DestinationPoint(testA, 0.05, 90), 90, testFS)
	if !s.Done() {
		t.Errorf("expected the hold to complete back at the fix")
	}
}

func TestSequencerUnboundedLegs(t *testing.T) {
	vm := NewCourseLeg(LegVM, av.Waypoint{}, &testA, 90, av.TurnEither, Termination{Kind: TerminateManual},
		BuildContext{})
	seg := mustSegment(t, NewIFLeg(wp("A", testA)), vm)

	s := NewSequencer(seg, nil)
	s.Update(testA, 90, testFS)
	s.Update(math.DestinationPoint(testA, 100, 90), 90, testFS)
	if s.Done() || s.ActiveLeg() != Leg(vm) {
		t.Errorf("expected VM to never terminate")
	}

	// A CI with nothing to predict the intercept: sequenced once close
	// to the following course.
	ci := NewCourseLeg(LegCI, av.Waypoint{}, nil, 45, av.TurnEither, Termination{Kind: TerminateIntercept},
		BuildContext{})
	cf := NewCFLeg(wp("B", testB), 90, 0, av.TurnEither)
	seg = mustSegment(t, ci, cf)
	s = NewSequencer(seg, nil)
	if s.Update(math.DestinationPoint(testA, 1, 0), 45, testFS) {
		t.Errorf("expected the CI to continue 1nm from the course")
	}
	if !s.Update(math.DestinationPoint(testA, 0.1, 0), 45, testFS) || s.ActiveLeg() != Leg(cf) {
		t.Errorf("expected the CF to be active once the course is captured")
	}
}

func TestSequencerDirectWithoutOrigin(t *testing.T) {
	df := NewDFLeg(nil, wp("A", testA), av.TurnEither)
	seg := mustSegment(t, df, NewTFLeg(&av.Waypoint{Ident: "A", Location: testA}, wp("B", testB)))

	s := NewSequencer(seg, nil)
	for _, d := range []float32{3, 2, 0.3} {
		if s.Update(math.DestinationPoint(testA, d, 270), 90, testFS) {
			t.Fatalf("unexpected sequencing %.1fnm before the fix", d)
		}
	}
	if !s.Update(math.DestinationPoint(testA, 0.5, 90), 90, testFS) || s.ActiveLeg().Type() != LegTF {
		t.Errorf("expected the TF to be active once the fix was passed")
	}
}
