// nav/leg.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/math"
)

// LegType identifies an ARINC-424 path terminator.
type LegType int

const (
	LegIF LegType = iota
	LegTF
	LegCF
	LegDF
	LegFA
	LegFC
	LegFD
	LegFM
	LegCA
	LegCD
	LegCI
	LegCR
	LegRF
	LegAF
	LegVA
	LegVD
	LegVI
	LegVM
	LegVR
	LegPI
	LegHA
	LegHF
	LegHM
	NumLegTypes
)

var legTypeNames = [NumLegTypes]string{
	"IF", "TF", "CF", "DF", "FA", "FC", "FD", "FM", "CA", "CD", "CI", "CR",
	"RF", "AF", "VA", "VD", "VI", "VM", "VR", "PI", "HA", "HF", "HM",
}

func (t LegType) String() string {
	if t < 0 || t >= NumLegTypes {
		return fmt.Sprintf("LegType(%d)", int(t))
	}
	return legTypeNames[t]
}

// ParseLegType returns the LegType for a two-letter path terminator.
func ParseLegType(s string) (LegType, error) {
	for i, n := range legTypeNames {
		if n == s {
			return LegType(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownPathTerminator)
}

// AllLegTypes returns all of the path terminators, in declaration order.
func AllLegTypes() []LegType {
	t := make([]LegType, NumLegTypes)
	for i := range t {
		t[i] = LegType(i)
	}
	return t
}

// FlightState is the snapshot of aircraft state supplied by the host with
// each guidance query.
type FlightState struct {
	GS        float32 // ground speed, knots
	TAS       float32 // true airspeed, knots
	BankAngle float32 // degrees, positive right
}

// GuidanceLaw identifies how the autopilot should use the guidance
// parameters.
type GuidanceLaw int

const (
	// LawLateralPath: steer to null cross-track and track-angle error.
	LawLateralPath GuidanceLaw = iota
	// LawTrack: hold DesiredTrack; there is no path to track.
	LawTrack
	// LawHeading: hold Heading.
	LawHeading
)

func (l GuidanceLaw) String() string {
	return [...]string{"LATERAL_PATH", "TRACK", "HEADING"}[l]
}

// GuidanceParameters are the lateral steering values for an aircraft
// position. Tracks and headings are true; CrossTrackError is positive
// when the aircraft is right of the path and RollAngle is the
// feed-forward roll command, positive right.
type GuidanceParameters struct {
	Law             GuidanceLaw
	DesiredTrack    float32
	Heading         float32
	TrackAngleError float32
	CrossTrackError float32 // nm
	RollAngle       float32
}

func (gp GuidanceParameters) String() string {
	switch gp.Law {
	case LawHeading:
		return fmt.Sprintf("%s hdg %05.1f tae %+.1f roll %+.1f", gp.Law, gp.Heading, gp.TrackAngleError, gp.RollAngle)
	default:
		return fmt.Sprintf("%s trk %05.1f xte %+.3f tae %+.1f roll %+.1f", gp.Law, gp.DesiredTrack,
			gp.CrossTrackError, gp.TrackAngleError, gp.RollAngle)
	}
}

// Guidable is implemented by everything the guidance loop can follow:
// legs and transitions.
type Guidable interface {
	// GetGuidanceParameters returns guidance for the given position and
	// (true) track. The returned Boolean is false if the element has no
	// guidance of its own.
	GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool)
	// GetNominalRollAngle returns the roll angle needed to fly the
	// element at the given ground speed with no errors.
	GetNominalRollAngle(gs float32) float32
	// IsAbeam reports whether ppos projects onto the element's path.
	IsAbeam(ppos math.Point2LL) bool
	// GetDistanceToGo returns the distance along the element to its end;
	// it is negative once ppos has passed the end.
	GetDistanceToGo(ppos math.Point2LL) float32
}

// Leg is a single path-terminator leg. Legs are immutable once
// constructed.
type Leg interface {
	Guidable

	Type() LegType
	Ident() string
	// Bearing is the true course flown at the end of the leg, or 0 if the
	// leg isn't course-defined.
	Bearing() float32
	// InboundCourse is the true course flown at the start of the leg.
	InboundCourse() float32
	// Distance is the nominal length of the leg in nm, or 0 for legs
	// without one.
	Distance() float32
	IsCircularArc() bool
	InitialLocation() (math.Point2LL, bool)
	TerminatorLocation() (math.Point2LL, bool)
	AltitudeConstraint() *av.AltitudeConstraint
	SpeedConstraint() *av.SpeedConstraint
	TurnDirection() av.TurnDirection
	String() string
}

// legBase holds the fields common to all legs: the path terminator and
// the defining waypoint, if any.
type legBase struct {
	kind LegType
	fix  *av.Waypoint
	turn av.TurnDirection
}

func (l *legBase) Type() LegType { return l.kind }

func (l *legBase) Ident() string {
	if l.fix == nil {
		return ""
	}
	return l.fix.Ident
}

func (l *legBase) AltitudeConstraint() *av.AltitudeConstraint {
	if l.fix == nil {
		return nil
	}
	return l.fix.Altitude
}

func (l *legBase) SpeedConstraint() *av.SpeedConstraint {
	if l.fix == nil {
		return nil
	}
	return l.fix.Speed
}

func (l *legBase) TurnDirection() av.TurnDirection { return l.turn }

func (l *legBase) IsCircularArc() bool { return false }

func (l *legBase) GetNominalRollAngle(gs float32) float32 { return 0 }

func (l *legBase) describe(extra string) string {
	s := l.kind.String()
	if l.fix != nil && l.fix.Ident != "" {
		s += " " + l.fix.String()
	}
	if extra != "" {
		s += " " + extra
	}
	return s
}

func newWaypoint(wp av.Waypoint) *av.Waypoint {
	return &wp
}
