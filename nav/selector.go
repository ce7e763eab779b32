// nav/selector.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmp/lnav/log"
	"github.com/mmp/lnav/math"
)

const (
	// A DF leg whose course differs from the previous one by less than
	// this is joined directly.
	directToJoinAngle = 3 // degrees
	// Fly-by turns with a smaller course change are joined directly.
	minFlyByCourseChange = 0.5 // degrees
	// Fly-by turns with a larger course change are course reversals; the
	// turn circle's center is too far from the pivot to be flown.
	maxFlyByCourseChange = 178 // degrees
)

type legPair struct {
	From, To LegType
}

// Rule is an entry in the transition table: how to connect a pair of
// legs.
type Rule struct {
	Join       JoinKind
	Transition TransitionType // valid if Join == JoinTransition
}

func (r Rule) String() string {
	if r.Join == JoinTransition {
		return r.Transition.String()
	}
	return r.Join.String()
}

var (
	ruleJoin = Rule{Join: JoinDirect}
	ruleDisc = Rule{Join: JoinDiscontinuity}
	ruleT1   = Rule{Join: JoinTransition, Transition: TransitionType1}
	ruleT2   = Rule{Join: JoinTransition, Transition: TransitionType2}
	ruleT3   = Rule{Join: JoinTransition, Transition: TransitionType3}
	ruleT4   = Rule{Join: JoinTransition, Transition: TransitionType4}
	ruleT5   = Rule{Join: JoinTransition, Transition: TransitionType5}
	ruleT6   = Rule{Join: JoinTransition, Transition: TransitionType6}
)

var transitionTable = makeTransitionTable()

func makeTransitionTable() map[legPair]Rule {
	table := make(map[legPair]Rule)
	set := func(from []LegType, to []LegType, r Rule) {
		for _, f := range from {
			for _, t := range to {
				table[legPair{f, t}] = r
			}
		}
	}
	all := AllLegTypes()
	legs := func(l ...LegType) []LegType { return l }

	courseLegs := legs(LegCA, LegCD, LegCR, LegCI, LegVA, LegVD, LegVR, LegVI, LegVM)

	// Legs that end at a fix, including arcs, which end at theirs.
	fixEnded := legs(LegTF, LegCF, LegDF, LegHA, LegHF, LegRF)
	set(fixEnded, legs(LegTF, LegCF, LegFA, LegFC, LegFD, LegFM, LegCA, LegCD, LegCR, LegPI), ruleT1)
	set(fixEnded, legs(LegDF), ruleT4)
	set(fixEnded, legs(LegCI, LegVA, LegVD, LegVI, LegVM, LegVR), ruleT2)
	set(fixEnded, legs(LegRF), ruleJoin)
	set(fixEnded, legs(LegAF), ruleT6)
	set(fixEnded, legs(LegHA, LegHF, LegHM), ruleT5)
	// Arcs end tangent to the following course.
	set(legs(LegRF), legs(LegTF, LegCF), ruleJoin)

	// Legs that end at a computed terminator.
	computed := legs(LegFA, LegFC, LegFD, LegCA, LegCD, LegCR, LegVA, LegVD, LegVR)
	set(computed, legs(LegCF, LegDF), ruleT4)
	set(computed, courseLegs, ruleT3)
	set(computed, legs(LegAF), ruleT6)

	// Intercept legs end on the next leg's course.
	intercepts := legs(LegCI, LegVI)
	set(intercepts, legs(LegCF, LegFA, LegFC, LegFD, LegFM), ruleJoin)
	set(intercepts, legs(LegAF), ruleT6)
	set(intercepts, legs(LegDF), ruleT4)
	set(intercepts, courseLegs, ruleT3)

	// Manually terminated legs never end.
	set(legs(LegFM, LegVM, LegHM), all, ruleDisc)

	set(legs(LegAF), all, ruleT6)

	set(legs(LegPI), legs(LegCF), ruleJoin)

	// IF starts a new sequence.
	set(all, legs(LegIF), ruleDisc)
	set(legs(LegIF), all, ruleJoin)
	table[legPair{LegIF, LegIF}] = ruleDisc

	return table
}

// TransitionTable returns a copy of the transition table, keyed by the
// (from, to) leg types.
func TransitionTable() map[[2]LegType]Rule {
	t := make(map[[2]LegType]Rule, len(transitionTable))
	for k, v := range transitionTable {
		t[[2]LegType{k.From, k.To}] = v
	}
	return t
}

// LookupRule returns the table's rule for the given pair of leg types.
func LookupRule(from, to LegType) (Rule, bool) {
	r, ok := transitionTable[legPair{from, to}]
	return r, ok
}

// SelectTransition determines how next is joined to prev, constructing
// the transition if one is needed. prev may be nil at the start of a
// sequence. Turns too small to construct are logged and replaced with a
// direct join; course reversals become discontinuities. Any other
// geometry error, such as ErrTangentNotFound, is returned.
func SelectTransition(prev, next Leg, fs FlightState, lg *log.Logger) (Join, error) {
	if prev == nil {
		return Join{Kind: JoinDirect}, nil
	}

	rule, ok := LookupRule(prev.Type(), next.Type())
	if !ok {
		return Join{}, fmt.Errorf("%s→%s: %w", prev.Type(), next.Type(), ErrUnsupportedLegSequence)
	}
	if rule.Join != JoinTransition {
		NavLog(NavLogTransition, "%s→%s: %s", prev.Type(), next.Type(), rule.Join)
		return Join{Kind: rule.Join}, nil
	}

	cc := math.DiffAngle(prev.Bearing(), next.InboundCourse())
	// A DF without a start point has no course to compare against.
	_, dfBounded := next.InitialLocation()
	if next.Type() == LegDF && dfBounded && math.Abs(cc) < directToJoinAngle {
		NavLog(NavLogTransition, "%s→DF: course change %.1f, direct join", prev.Type(), cc)
		return Join{Kind: JoinDirect}, nil
	}

	switch rule.Transition {
	case TransitionType1, TransitionType3, TransitionType4:
		if _, ok := prev.TerminatorLocation(); !ok {
			NavLog(NavLogTransition, "%s→%s: no pivot, discontinuity", prev.Type(), next.Type())
			return Join{Kind: JoinDiscontinuity}, nil
		}
		if rule.Transition != TransitionType4 && math.Abs(cc) < minFlyByCourseChange {
			return Join{Kind: JoinDirect}, nil
		}
		if rule.Transition != TransitionType4 && math.Abs(cc) > maxFlyByCourseChange {
			lg.Warn("course reversal, discontinuity", "previous", prev.String(), "next", next.String())
			return Join{Kind: JoinDiscontinuity}, nil
		}
	}

	t, err := NewTransition(rule.Transition, prev, next, fs)
	if err != nil {
		if errors.Is(err, ErrDegenerateTurn) {
			lg.Warn("transition replaced with direct join", slog.Any("error", err), "previous", prev.String(),
				"next", next.String())
			return Join{Kind: JoinDirect}, nil
		}
		return Join{}, err
	}
	return Join{Kind: JoinTransition, Transition: t}, nil
}
