// sim/resources_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"context"
	"os"
	"testing"
	"time"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/util"
)

// The example procedures and configuration should load cleanly and be
// flyable.
func TestExampleResources(t *testing.T) {
	f, err := os.Open("../resources/lnavsim.json")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	c, err := LoadConfig(f)
	if err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile("../resources/procedures.json")
	if err != nil {
		t.Fatal(err)
	}
	var e util.ErrorLogger
	c.Check(&e)
	db := av.LoadProcedureFile(contents, &e)
	db.ResolveAll(&e)
	if e.HaveErrors() {
		t.Fatalf("errors loading resources:\n%s", e.String())
	}

	names := db.ProcedureNames()
	if len(names) != 3 {
		t.Fatalf("expected 3 procedures, got %v", names)
	}

	traces, err := RunAll(context.Background(), db, names, c, NewSegmentCache(8, time.Hour, nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, tr := range traces {
		if len(tr.Steps) == 0 {
			t.Errorf("%s: no steps flown", tr.Procedure)
		}
		if tr.Procedure == "KXYZ/DEP1" && !tr.Done {
			t.Errorf("%s: expected to complete the departure", tr.Procedure)
		}
	}
}
