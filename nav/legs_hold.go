// nav/legs_hold.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/math"
)

// defaultHoldLegMinutes is used when a hold's leg length isn't coded.
const defaultHoldLegMinutes = 1

// HoldLeg is a racetrack hold at a fix: HA, HF and HM. The racetrack is
// flown starting at the fix on the inbound course: a 180 degree turn,
// the outbound leg, a second 180 degree turn, and the inbound leg back to
// the fix. HF and HA terminate at the fix after one circuit; HM never
// terminates.
type HoldLeg struct {
	legBase
	inbound   float32 // true
	clockwise bool
	radius    float32
	legLength float32
	frame     localFrame
	path      Path
}

// NewHoldLeg returns a hold at fix with the given true inbound course.
// If isTime is set, legLength is in minutes and is converted to nm using
// the context's speed.
func NewHoldLeg(kind LegType, fix av.Waypoint, inbound float32, turn av.TurnDirection, legLength float32,
	isTime bool, ctx BuildContext) *HoldLeg {
	switch kind {
	case LegHA, LegHF, LegHM:
	default:
		panic("NewHoldLeg called for " + kind.String())
	}

	speed := ctx.speed()
	if legLength <= 0 {
		legLength, isTime = defaultHoldLegMinutes, true
	}
	if isTime {
		legLength *= speed / 60
	}

	l := &HoldLeg{
		legBase:   legBase{kind: kind, fix: newWaypoint(fix), turn: turn},
		inbound:   math.NormalizeHeading(inbound),
		clockwise: turn != av.TurnLeft,
		radius:    TurnRadius(speed, MaxBankAngle(speed)),
		legLength: legLength,
		frame:     newLocalFrame(fix.Location),
	}

	pb := newPathBuilder([2]float32{}, l.inbound)
	pb.turn(l.radius, l.clockwise, 180)
	pb.straight(l.legLength)
	pb.turn(l.radius, l.clockwise, 180)
	pb.lineTo([2]float32{})
	l.path = pb.Path

	return l
}

func (l *HoldLeg) Bearing() float32       { return l.inbound }
func (l *HoldLeg) InboundCourse() float32 { return l.inbound }

func (l *HoldLeg) Distance() float32 {
	if l.kind == LegHM {
		return 0
	}
	return l.path.Length
}

// CircuitLength returns the length of one circuit of the racetrack.
func (l *HoldLeg) CircuitLength() float32 { return l.path.Length }
func (l *HoldLeg) Radius() float32        { return l.radius }
func (l *HoldLeg) LegLength() float32     { return l.legLength }
func (l *HoldLeg) Clockwise() bool        { return l.clockwise }

func (l *HoldLeg) InitialLocation() (math.Point2LL, bool) { return l.fix.Location, true }

func (l *HoldLeg) TerminatorLocation() (math.Point2LL, bool) {
	return l.fix.Location, l.kind != LegHM
}

func (l *HoldLeg) GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	proj := l.path.Project(l.frame.toNM(ppos))
	gp := GuidanceParameters{
		Law:             LawLateralPath,
		DesiredTrack:    math.NormalizeHeading(proj.Heading),
		TrackAngleError: math.DiffAngle(track, proj.Heading),
		CrossTrackError: -proj.Offset,
	}
	if l.path.Segments[proj.Segment].Arc != nil {
		gp.RollAngle = l.GetNominalRollAngle(fs.GS)
	}
	return gp, true
}

// GetNominalRollAngle returns the roll angle for the racetrack's turns.
func (l *HoldLeg) GetNominalRollAngle(gs float32) float32 {
	roll := nominalRoll(gs, l.radius)
	if !l.clockwise {
		roll = -roll
	}
	return roll
}

// IsAbeam always returns true: every position projects onto the closed
// racetrack.
func (l *HoldLeg) IsAbeam(ppos math.Point2LL) bool { return true }

func (l *HoldLeg) GetDistanceToGo(ppos math.Point2LL) float32 {
	if l.kind == LegHM {
		return 0
	}
	return l.path.Length - l.path.Project(l.frame.toNM(ppos)).Distance
}

func (l *HoldLeg) String() string {
	return l.describe(fmt.Sprintf("inbound %05.1f %s turns leg %.1fnm", l.inbound,
		map[bool]string{true: "right", false: "left"}[l.clockwise], l.legLength))
}
