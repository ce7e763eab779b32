// aviation/db_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mmp/lnav/util"
)

const testProcedureFile = `{
  "fixes": {
    "ALPHA": [-73.0, 40.0],
    "BRAVO": [-72.8, 40.0],
    "CTR": [-72.8, 40.1]
  },
  "airports": {
    "KXYZ": { "location": [-73.5, 40.2], "elevation": 20, "magnetic_variation": -13 }
  },
  "procedures": [
    {
      "airport": "KXYZ",
      "ident": "RNAV1",
      "type": "STAR",
      "legs": [
        { "path_terminator": "IF", "fix": "ALPHA" },
        { "path_terminator": "TF", "fix": "BRAVO",
          "altitude": { "descriptor": "at_or_above", "value1": 4000 },
          "speed": { "descriptor": "at_or_below", "value": 210 } },
        { "path_terminator": "RF", "fix": "DELTA", "location": [-72.7, 40.1],
          "center_fix": "CTR", "arc_radius": 5.9, "turn_direction": "L" }
      ]
    }
  ]
}`

func TestLoadProcedureFile(t *testing.T) {
	var e util.ErrorLogger
	db := LoadProcedureFile([]byte(testProcedureFile), &e)
	if e.HaveErrors() {
		t.Fatalf("unexpected errors: %s", e.String())
	}

	names := db.ProcedureNames()
	if len(names) != 1 || names[0] != "KXYZ/RNAV1" {
		t.Fatalf("unexpected procedures %v", names)
	}

	db.ResolveAll(&e)
	if e.HaveErrors() {
		t.Fatalf("unexpected resolve errors: %s", e.String())
	}

	p, err := db.Procedure("KXYZ/RNAV1")
	if err != nil {
		t.Fatal(err)
	}
	if p.MagneticVariation != -13 {
		t.Errorf("expected airport magnetic variation -13, got %f", p.MagneticVariation)
	}
	if p.Legs[1].Location != db.Fixes["BRAVO"].Location {
		t.Errorf("BRAVO not resolved: %+v", p.Legs[1])
	}
	if p.Legs[1].Speed == nil || p.Legs[1].Speed.Descriptor != SpeedAtOrBelow || p.Legs[1].Speed.Value != 210 {
		t.Errorf("BRAVO speed: %+v", p.Legs[1].Speed)
	}
	rf := p.Legs[2]
	if rf.TurnDirection != TurnLeft || rf.CenterLocation != db.Fixes["CTR"].Location || rf.ArcRadius != 5.9 {
		t.Errorf("RF leg: %+v", rf)
	}
	// DELTA isn't in the database but the leg gave an explicit location.
	if rf.Location[0] != -72.7 {
		t.Errorf("RF location overwritten: %v", rf.Location)
	}
	if c, ok := rf.CenterWaypoint(); !ok || c.Ident != "CTR" {
		t.Errorf("RF center waypoint: %+v %v", c, ok)
	}
}

func TestLoadProcedureFileErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		json string
		want string
	}{
		{name: "misspelled key", json: `{"procedures": [{"airport": "K", "ident": "P", "legz": []}]}`, want: "legz"},
		{name: "no legs", json: `{"procedures": [{"airport": "K", "ident": "P", "legs": []}]}`, want: ErrNoLegs.Error()},
		{name: "rf without center", json: `{"procedures": [{"airport": "K", "ident": "P", "legs": [{"path_terminator": "RF", "fix": "A", "arc_radius": 1}]}]}`,
			want: "center"},
		{name: "bad descriptor", json: `{"procedures": [{"airport": "K", "ident": "P", "legs": [{"path_terminator": "TF", "altitude": {"descriptor": "near"}}]}]}`,
			want: "near"},
	} {
		t.Run(test.name, func(t *testing.T) {
			var e util.ErrorLogger
			LoadProcedureFile([]byte(test.json), &e)
			if !e.HaveErrors() {
				t.Fatalf("expected errors")
			}
			if !strings.Contains(e.String(), test.want) {
				t.Errorf("expected %q in errors, got %q", test.want, e.String())
			}
		})
	}
}

func TestResolveUnknownFix(t *testing.T) {
	db := NewDatabase()
	p := &Procedure{Airport: "KXYZ", Ident: "P", Legs: []ProcedureLeg{{PathTerminator: "IF", Fix: "NOWHERE"}}}
	err := db.Resolve(p)
	if !errors.Is(err, ErrUnknownFix) {
		t.Fatalf("expected ErrUnknownFix, got %v", err)
	}
	if !strings.Contains(err.Error(), "NOWHERE") {
		t.Errorf("error should name the fix: %v", err)
	}

	if _, err := db.Procedure("KXYZ/P"); !errors.Is(err, ErrUnknownProcedure) {
		t.Errorf("expected ErrUnknownProcedure, got %v", err)
	}
}

func TestProcedureClone(t *testing.T) {
	p := &Procedure{
		Airport: "KXYZ",
		Ident:   "P",
		Legs: []ProcedureLeg{
			{PathTerminator: "TF", Fix: "A", Altitude: &AltitudeConstraint{Descriptor: AltitudeAt, Value1: 3000}},
		},
	}
	c := p.Clone()
	c.Legs[0].Fix = "B"
	c.Legs[0].Altitude.Value1 = 5000

	if p.Legs[0].Fix != "A" || p.Legs[0].Altitude.Value1 != 3000 {
		t.Errorf("modifying the clone changed the original: %+v", p.Legs[0])
	}
}

func TestConstraints(t *testing.T) {
	for _, test := range []struct {
		ac     AltitudeConstraint
		alt    float32
		target float32
		str    string
	}{
		{AltitudeConstraint{Descriptor: AltitudeAt, Value1: 5000}, 3000, 5000, "5000"},
		{AltitudeConstraint{Descriptor: AltitudeAtOrAbove, Value1: 5000}, 7000, 7000, "5000+"},
		{AltitudeConstraint{Descriptor: AltitudeAtOrBelow, Value1: 5000}, 7000, 5000, "5000-"},
		{AltitudeConstraint{Descriptor: AltitudeBetween, Value1: 9000, Value2: 7000}, 6000, 7000, "7000-9000"},
	} {
		if got := test.ac.TargetAltitude(test.alt); got != test.target {
			t.Errorf("%s: target for %.0f: got %.0f, expected %.0f", test.ac, test.alt, got, test.target)
		}
		if s := test.ac.String(); s != test.str {
			t.Errorf("expected %q, got %q", test.str, s)
		}
	}

	var wp Waypoint
	if err := json.Unmarshal([]byte(`{"ident": "A", "location": "40.0, -73.0", "speed": {"descriptor": "+", "value": 180}}`), &wp); err != nil {
		t.Fatal(err)
	}
	if wp.Speed == nil || wp.Speed.Descriptor != SpeedAtOrAbove || wp.Speed.String() != "180K+" {
		t.Errorf("unexpected speed constraint %+v", wp.Speed)
	}

	var td TurnDirection
	if err := td.UnmarshalText([]byte("sideways")); err == nil {
		t.Errorf("expected error for invalid turn direction")
	}
}
