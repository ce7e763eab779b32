// nav/build.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/log"
	"github.com/mmp/lnav/math"
)

const (
	DefaultClimbGradient = 500 // ft/nm
	DefaultBuildSpeed    = 150 // knots
)

// BuildContext carries the assumptions used when legs are built from
// procedure records: the magnetic variation for converting courses and
// the aircraft performance used to predict where condition-terminated
// legs end.
type BuildContext struct {
	// MagneticVariation is east-positive: true = magnetic + variation.
	MagneticVariation float32
	// Altitude is the aircraft's altitude at the start of the leg, in
	// feet.
	Altitude float32
	// ClimbGradient in ft/nm; DefaultClimbGradient is used if zero.
	ClimbGradient float32
	// Speed is the true airspeed used to size holds and procedure turns;
	// DefaultBuildSpeed is used if zero.
	Speed float32
	// Origin, if set, is where the first leg starts; legs that begin
	// wherever the previous one ended otherwise have no origin when
	// they're first.
	Origin *math.Point2LL
}

func (ctx BuildContext) climbGradient() float32 {
	if ctx.ClimbGradient <= 0 {
		return DefaultClimbGradient
	}
	return ctx.ClimbGradient
}

func (ctx BuildContext) speed() float32 {
	if ctx.Speed <= 0 {
		return DefaultBuildSpeed
	}
	return ctx.Speed
}

func (ctx BuildContext) trueCourse(magnetic float32) float32 {
	return math.NormalizeHeading(magnetic + ctx.MagneticVariation)
}

// MakeLeg converts a procedure record to a Leg. prev is the leg built
// for the preceding record, if any; its terminator is the origin of legs
// that start wherever the previous one ended. next is the following
// record, if any, which intercept legs terminate on. Record locations
// must already have been resolved.
func MakeLeg(rec av.ProcedureLeg, prev Leg, next *av.ProcedureLeg, ctx BuildContext) (Leg, error) {
	kind, err := ParseLegType(rec.PathTerminator)
	if err != nil {
		return nil, err
	}

	wp := rec.Waypoint()
	course := ctx.trueCourse(rec.Course)
	origin := ctx.Origin
	if prev != nil {
		origin = nil
		if p, ok := prev.TerminatorLocation(); ok {
			origin = &p
		}
	}

	switch kind {
	case LegIF:
		return NewIFLeg(wp), nil

	case LegTF:
		var from *av.Waypoint
		if origin != nil {
			from = &av.Waypoint{Location: *origin}
			if prev != nil {
				from.Ident = prev.Ident()
			}
		}
		return NewTFLeg(from, wp), nil

	case LegCF:
		var dist float32
		if !rec.IsTime {
			dist = rec.Distance
		}
		return NewCFLeg(wp, course, dist, rec.TurnDirection), nil

	case LegDF:
		return NewDFLeg(origin, wp, rec.TurnDirection), nil

	case LegFA, LegFC, LegFD, LegFM:
		term, err := makeTermination(kind, rec, next, ctx)
		if err != nil {
			return nil, err
		}
		return NewFixCourseLeg(kind, wp, course, term, ctx), nil

	case LegCA, LegCD, LegCI, LegCR, LegVA, LegVD, LegVI, LegVM, LegVR:
		term, err := makeTermination(kind, rec, next, ctx)
		if err != nil {
			return nil, err
		}
		return NewCourseLeg(kind, wp, origin, course, rec.TurnDirection, term, ctx), nil

	case LegRF:
		center, ok := rec.CenterWaypoint()
		if !ok || rec.ArcRadius <= 0 {
			return nil, fmt.Errorf("RF %s: %w", rec.Fix, ErrMissingArcData)
		}
		l, err := NewRFLeg(origin, wp, center, rec.ArcRadius, rec.TurnDirection)
		if err != nil {
			return nil, err
		}
		return l, nil

	case LegAF:
		navaid, ok := rec.CenterWaypoint()
		if !ok || rec.Rho <= 0 {
			return nil, fmt.Errorf("AF %s: %w", rec.Fix, ErrMissingArcData)
		}
		l, err := NewAFLeg(origin, wp, navaid, course, rec.Rho, rec.TurnDirection)
		if err != nil {
			return nil, err
		}
		return l, nil

	case LegPI:
		var limit float32
		if !rec.IsTime {
			limit = rec.Distance
		}
		return NewPILeg(wp, course, rec.TurnDirection, limit, ctx), nil

	case LegHA, LegHF, LegHM:
		return NewHoldLeg(kind, wp, course, rec.TurnDirection, rec.Distance, rec.IsTime, ctx), nil

	default:
		panic("unhandled leg type " + kind.String())
	}
}

// makeTermination returns the termination condition of a course leg.
func makeTermination(kind LegType, rec av.ProcedureLeg, next *av.ProcedureLeg, ctx BuildContext) (Termination, error) {
	switch kind {
	case LegFA, LegCA, LegVA:
		if rec.Altitude == nil {
			return Termination{}, fmt.Errorf("%s %s: %w", kind, rec.Fix, ErrMissingAltitude)
		}
		return Termination{Kind: TerminateAltitude, Altitude: rec.Altitude.Value1}, nil

	case LegFC:
		return Termination{Kind: TerminateDistance, Distance: rec.Distance}, nil

	case LegFD, LegCD, LegVD:
		if rec.NavaidLocation.IsZero() {
			// Without the navaid, the best we can do is the distance
			// from the start of the leg.
			return Termination{Kind: TerminateDistance, Distance: rec.Distance}, nil
		}
		return Termination{Kind: TerminateDME, Navaid: rec.NavaidLocation, DME: rec.Distance}, nil

	case LegCR, LegVR:
		if rec.NavaidLocation.IsZero() {
			return Termination{Kind: TerminateManual}, nil
		}
		return Termination{Kind: TerminateRadial, Navaid: rec.NavaidLocation, Radial: ctx.trueCourse(rec.Theta)}, nil

	case LegCI, LegVI:
		t := Termination{Kind: TerminateIntercept}
		if next != nil && !next.Location.IsZero() {
			switch next.PathTerminator {
			case "CF", "FA", "FC", "FD", "FM":
				t.InterceptFix = next.Location
				t.InterceptCourse = ctx.trueCourse(next.Course)
				t.HasIntercept = true
			}
		}
		return t, nil

	case LegFM, LegVM:
		return Termination{Kind: TerminateManual}, nil

	default:
		panic("no termination for leg type " + kind.String())
	}
}

// nextAltitude returns the altitude after flying the given record.
func nextAltitude(rec av.ProcedureLeg, kind LegType, alt float32) float32 {
	if rec.Altitude == nil {
		return alt
	}
	switch kind {
	case LegFA, LegCA, LegVA, LegHA:
		return max(alt, rec.Altitude.Value1)
	default:
		return rec.Altitude.TargetAltitude(alt)
	}
}

// BuildLegs builds the legs of a resolved procedure. The procedure's
// magnetic variation, if it has one, is used to convert courses and the
// context's altitude is carried forward through the legs' altitude
// constraints.
func BuildLegs(proc *av.Procedure, ctx BuildContext) ([]Leg, error) {
	if len(proc.Legs) == 0 {
		return nil, fmt.Errorf("%s: %w", proc.Name(), av.ErrNoLegs)
	}
	if proc.MagneticVariation != 0 {
		ctx.MagneticVariation = proc.MagneticVariation
	}

	legs := make([]Leg, 0, len(proc.Legs))
	var prev Leg
	for i, rec := range proc.Legs {
		var next *av.ProcedureLeg
		if i+1 < len(proc.Legs) {
			next = &proc.Legs[i+1]
		}

		leg, err := MakeLeg(rec, prev, next, ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: leg %d (%s): %w", proc.Name(), i, rec.PathTerminator, err)
		}
		NavLog(NavLogBuild, "%s leg %d: %s", proc.Name(), i, leg)
		ctx.Origin = nil

		ctx.Altitude = nextAltitude(rec, leg.Type(), ctx.Altitude)
		legs = append(legs, leg)
		prev = leg
	}
	return legs, nil
}

// BuildProcedure builds a procedure's legs and the segment joining them.
func BuildProcedure(proc *av.Procedure, ctx BuildContext, fs FlightState, lg *log.Logger) (*Segment, error) {
	legs, err := BuildLegs(proc, ctx)
	if err != nil {
		return nil, err
	}
	seg, err := BuildSegment(legs, fs, lg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", proc.Name(), err)
	}
	return seg, nil
}
