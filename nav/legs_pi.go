// nav/legs_pi.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/math"
)

const (
	defaultProcedureTurnLimit = 10 // nm
	procedureTurnAngle        = 45 // degrees
)

// PILeg is a 45/180 procedure turn: outbound from the fix on the coded
// course, a 45 degree turn away, one minute on that heading, a 180
// degree turn the other way, and then straight to intercept the inbound
// course. The leg terminates at the intercept.
type PILeg struct {
	legBase
	course     float32 // outbound, true
	clockwise  bool    // direction of the 45 degree turn
	limit      float32 // nm from the fix
	frame      localFrame
	path       Path
	terminator math.Point2LL
	finalTrack float32
}

// NewPILeg returns a procedure turn from fix with the given true outbound
// course. limit is the distance from the fix the turn must remain
// within; if it's zero, a default is used.
func NewPILeg(fix av.Waypoint, course float32, turn av.TurnDirection, limit float32, ctx BuildContext) *PILeg {
	if limit <= 0 {
		limit = defaultProcedureTurnLimit
	}
	speed := ctx.speed()
	radius := TurnRadius(speed, MaxBankAngle(speed))

	l := &PILeg{
		legBase:   legBase{kind: LegPI, fix: newWaypoint(fix), turn: turn},
		course:    math.NormalizeHeading(course),
		clockwise: turn != av.TurnLeft,
		limit:     limit,
		frame:     newLocalFrame(fix.Location),
	}

	pb := newPathBuilder([2]float32{}, l.course)
	pb.straight(max(0.4*limit, 1))
	pb.turn(radius, l.clockwise, procedureTurnAngle)
	pb.straight(speed / 60)
	pb.turn(radius, !l.clockwise, 180)

	// Intercept the reciprocal of the outbound course, which passes back
	// through the fix.
	dir := headingVector(pb.heading)
	if q, ok := math.LineLineIntersect(pb.p, math.Add2f(pb.p, dir), [2]float32{}, headingVector(l.course)); ok &&
		math.Dot(math.Sub2f(q, pb.p), dir) > 0 {
		pb.lineTo(q)
	}
	l.path = pb.Path
	l.finalTrack = math.NormalizeHeading(pb.heading)
	l.terminator = l.frame.toLL(l.path.End())

	return l
}

func (l *PILeg) Bearing() float32       { return l.finalTrack }
func (l *PILeg) InboundCourse() float32 { return l.course }
func (l *PILeg) Distance() float32      { return l.path.Length }

func (l *PILeg) InitialLocation() (math.Point2LL, bool)    { return l.fix.Location, true }
func (l *PILeg) TerminatorLocation() (math.Point2LL, bool) { return l.terminator, true }

func (l *PILeg) GetGuidanceParameters(ppos math.Point2LL, track float32, fs FlightState) (GuidanceParameters, bool) {
	proj := l.path.Project(l.frame.toNM(ppos))
	gp := GuidanceParameters{
		Law:             LawLateralPath,
		DesiredTrack:    math.NormalizeHeading(proj.Heading),
		TrackAngleError: math.DiffAngle(track, proj.Heading),
		CrossTrackError: -proj.Offset,
	}
	if arc := l.path.Segments[proj.Segment].Arc; arc != nil {
		// Arc sweeps are positive counter-clockwise.
		roll := nominalRoll(fs.GS, arc.Radius)
		if arc.Sweep < 0 {
			gp.RollAngle = roll
		} else {
			gp.RollAngle = -roll
		}
	}
	return gp, true
}

func (l *PILeg) IsAbeam(ppos math.Point2LL) bool {
	d := l.path.Project(l.frame.toNM(ppos)).Distance
	return d > 0 && d < l.path.Length
}

func (l *PILeg) GetDistanceToGo(ppos math.Point2LL) float32 {
	return l.path.Length - l.path.Project(l.frame.toNM(ppos)).Distance
}

func (l *PILeg) String() string {
	return l.describe(fmt.Sprintf("outbound %05.1f %s within %.0fnm", l.course,
		map[bool]string{true: "right", false: "left"}[l.clockwise], l.limit))
}
