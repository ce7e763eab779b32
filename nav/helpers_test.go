// nav/helpers_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"testing"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/math"
)

// Test geography: everything is laid out around fix A, with the start
// point P0 10nm to its west.
var (
	testA  = math.Point2LL{-73, 40}
	testP0 = math.DestinationPoint(testA, 10, 270)
	testB  = math.DestinationPoint(testA, 10, 90)
	testC  = math.DestinationPoint(testA, 5, 180)
	testN  = math.DestinationPoint(testA, 3, 0)
)

var testFS = FlightState{GS: 150, TAS: 150}

func wp(ident string, p math.Point2LL) av.Waypoint {
	return av.Waypoint{Ident: ident, Location: p}
}

func approxEqual(a, b, tol float32) bool {
	return math.Abs(a-b) <= tol
}

func altitude(alt float32) *av.AltitudeConstraint {
	return &av.AltitudeConstraint{Descriptor: av.AltitudeAtOrAbove, Value1: alt}
}

// testRecord returns a record of the given kind that can follow a leg
// ending at P0.
func testRecord(kind LegType) av.ProcedureLeg {
	switch kind {
	case LegIF:
		return av.ProcedureLeg{PathTerminator: "IF", Fix: "A", Location: testA}
	case LegTF:
		return av.ProcedureLeg{PathTerminator: "TF", Fix: "B", Location: testB}
	case LegCF:
		return av.ProcedureLeg{PathTerminator: "CF", Fix: "B", Location: testB, Course: 90, Distance: 5}
	case LegDF:
		return av.ProcedureLeg{PathTerminator: "DF", Fix: "B", Location: testB}
	case LegFA, LegHA:
		return av.ProcedureLeg{PathTerminator: kind.String(), Fix: "A", Location: testA, Course: 90,
			Altitude: altitude(3000), Distance: 4}
	case LegFC:
		return av.ProcedureLeg{PathTerminator: "FC", Fix: "A", Location: testA, Course: 90, Distance: 5}
	case LegFD:
		return av.ProcedureLeg{PathTerminator: "FD", Fix: "A", Location: testA, Course: 90, Distance: 8,
			RecommendedNavaid: "N", NavaidLocation: testN}
	case LegFM, LegHM:
		return av.ProcedureLeg{PathTerminator: kind.String(), Fix: "A", Location: testA, Course: 90}
	case LegCA, LegVA:
		return av.ProcedureLeg{PathTerminator: kind.String(), Course: 90, Altitude: altitude(3000)}
	case LegCD, LegVD:
		return av.ProcedureLeg{PathTerminator: kind.String(), Course: 90, Distance: 15,
			RecommendedNavaid: "N", NavaidLocation: testN}
	case LegCI, LegVI, LegVM:
		return av.ProcedureLeg{PathTerminator: kind.String(), Course: 90}
	case LegCR, LegVR:
		return av.ProcedureLeg{PathTerminator: kind.String(), Course: 90, Theta: 135,
			RecommendedNavaid: "N", NavaidLocation: testN}
	case LegRF:
		return av.ProcedureLeg{PathTerminator: "RF", Fix: "B", Location: testB, TurnDirection: av.TurnRight,
			CenterFix: "RFC", CenterLocation: math.DestinationPoint(testB, 3, 180), ArcRadius: 3}
	case LegAF:
		return av.ProcedureLeg{PathTerminator: "AF", Fix: "B", Location: testB, Course: 270,
			RecommendedNavaid: "N2", NavaidLocation: math.DestinationPoint(testB, 8, 0), Rho: 8}
	case LegPI:
		return av.ProcedureLeg{PathTerminator: "PI", Fix: "A", Location: testA, Course: 270, Distance: 10,
			TurnDirection: av.TurnLeft}
	case LegHF:
		return av.ProcedureLeg{PathTerminator: "HF", Fix: "A", Location: testA, Course: 90, Distance: 1,
			IsTime: true, TurnDirection: av.TurnRight}
	default:
		panic("unhandled leg type " + kind.String())
	}
}

// interceptRecord is the record intercept legs terminate on: a CF to C
// on course 045, which crosses the 090 course from P0 5nm east of A.
var interceptRecord = av.ProcedureLeg{PathTerminator: "CF", Fix: "C", Location: testC, Course: 45}

// testLeg builds a leg of the given kind following an IF at P0.
func testLeg(t *testing.T, kind LegType) Leg {
	t.Helper()

	prev := NewIFLeg(wp("P0", testP0))
	var next *av.ProcedureLeg
	if kind == LegCI || kind == LegVI {
		next = &interceptRecord
	}
	leg, err := MakeLeg(testRecord(kind), prev, next, BuildContext{})
	if err != nil {
		t.Fatalf("%s: %v", kind, err)
	}
	return leg
}
