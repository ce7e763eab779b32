// nav/segment.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmp/lnav/log"
)

// JoinKind describes how a leg is connected to the one before it.
type JoinKind int

const (
	// JoinDirect: the leg starts where the previous one ended, with no
	// turn geometry.
	JoinDirect JoinKind = iota
	// JoinTransition: a Transition connects the two legs.
	JoinTransition
	// JoinDiscontinuity: there's no flyable path between the legs.
	JoinDiscontinuity
)

func (k JoinKind) String() string {
	switch k {
	case JoinDirect:
		return "join"
	case JoinTransition:
		return "transition"
	case JoinDiscontinuity:
		return "discontinuity"
	default:
		panic(fmt.Sprintf("unhandled JoinKind %d", int(k)))
	}
}

// Join is the connection before a leg in a Segment.
type Join struct {
	Kind       JoinKind
	Transition *Transition // non-nil iff Kind == JoinTransition
}

func (j Join) String() string {
	if j.Kind == JoinTransition {
		return j.Transition.String()
	}
	return j.Kind.String()
}

// SegmentElement is a leg along with the join that precedes it.
type SegmentElement struct {
	Join Join
	Leg  Leg
}

// Segment is a sequence of legs with the joins between them. Segments are
// never edited; a changed sequence of legs gets a new Segment.
type Segment struct {
	Elements []SegmentElement
}

// BuildSegment selects the joins between consecutive legs. The first leg
// is always joined directly.
func BuildSegment(legs []Leg, fs FlightState, lg *log.Logger) (*Segment, error) {
	if len(legs) == 0 {
		return nil, ErrEmptySegment
	}

	seg := &Segment{Elements: make([]SegmentElement, 0, len(legs))}
	var prev Leg
	for i, leg := range legs {
		join, err := SelectTransition(prev, leg, fs, lg)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i, err)
		}
		seg.Elements = append(seg.Elements, SegmentElement{Join: join, Leg: leg})
		prev = leg
	}

	NavLog(NavLogBuild, "built segment:\n%s", seg)
	return seg, nil
}

// Validate checks that each join is consistent with its kind and with
// the legs it connects.
func (s *Segment) Validate() error {
	var errs []error
	for i, el := range s.Elements {
		if el.Leg == nil {
			errs = append(errs, fmt.Errorf("element %d: no leg", i))
			continue
		}
		switch el.Join.Kind {
		case JoinDirect, JoinDiscontinuity:
			if el.Join.Transition != nil {
				errs = append(errs, fmt.Errorf("element %d: %s has a transition", i, el.Join.Kind))
			}
		case JoinTransition:
			t := el.Join.Transition
			if t == nil {
				errs = append(errs, fmt.Errorf("element %d: transition join without a transition", i))
			} else if i == 0 || t.Previous != s.Elements[i-1].Leg || t.Next != el.Leg {
				errs = append(errs, fmt.Errorf("element %d: transition doesn't connect its legs", i))
			} else if t.Type.Circular() && !(t.Radius > 0) {
				errs = append(errs, fmt.Errorf("element %d: %s with radius %f", i, t.Type, t.Radius))
			}
		default:
			panic(fmt.Sprintf("unhandled JoinKind %d", int(el.Join.Kind)))
		}
	}
	if len(s.Elements) > 0 && s.Elements[0].Join.Kind != JoinDirect {
		errs = append(errs, errors.New("first element must be joined directly"))
	}
	return errors.Join(errs...)
}

// Legs returns the segment's legs in order.
func (s *Segment) Legs() []Leg {
	legs := make([]Leg, len(s.Elements))
	for i, el := range s.Elements {
		legs[i] = el.Leg
	}
	return legs
}

// Transitions returns the transitions in the segment in order.
func (s *Segment) Transitions() []*Transition {
	var t []*Transition
	for _, el := range s.Elements {
		if el.Join.Transition != nil {
			t = append(t, el.Join.Transition)
		}
	}
	return t
}

func (s *Segment) String() string {
	var b strings.Builder
	for i, el := range s.Elements {
		if i > 0 {
			fmt.Fprintf(&b, "  %s\n", el.Join)
		}
		fmt.Fprintf(&b, "%2d %s\n", i, el.Leg)
	}
	return b.String()
}
