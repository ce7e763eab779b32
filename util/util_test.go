// util/util_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestGeneric(t *testing.T) {
	if Select(true, 1, 2) != 1 || Select(false, 1, 2) != 2 {
		t.Errorf("Select returned the wrong value")
	}

	m := map[string]int{"TF": 1, "CF": 2, "AF": 3}
	if keys := SortedMapKeys(m); !slices.Equal(keys, []string{"AF", "CF", "TF"}) {
		t.Errorf("SortedMapKeys: got %v", keys)
	}
}

func TestErrorLogger(t *testing.T) {
	var e ErrorLogger
	if e.HaveErrors() {
		t.Fatalf("fresh ErrorLogger has errors")
	}

	e.Push("KJFK")
	e.Push("RNAV4")
	e.ErrorString("leg %d: bad course", 3)
	if e.CurrentDepth() != 2 {
		t.Errorf("expected depth 2, got %d", e.CurrentDepth())
	}
	e.Pop()
	e.Pop()

	if !e.HaveErrors() {
		t.Fatalf("expected errors")
	}
	if s := e.String(); s != "KJFK / RNAV4: leg 3: bad course" {
		t.Errorf("unexpected error string %q", s)
	}

	e.Push("procedures.json")
	e.Error(os.ErrNotExist)
	e.Pop()
	if err := e.Err(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Err() %v doesn't wrap os.ErrNotExist", err)
	}
	if n := strings.Count(e.String(), "\n"); n != 1 {
		t.Errorf("expected two lines of errors, got %q", e.String())
	}
}

func TestJSONLocation(t *testing.T) {
	b := []byte("{\n  \"a\": 1,\n  \"b\": x\n}")
	for _, test := range []struct {
		offset int64
		want   string
	}{
		{0, "line 1, column 1"},
		{2, "line 2, column 1"},
		{5, "line 2, column 4"},
		{int64(len(b)) + 10, "line 4, column 2"},
	} {
		if got := jsonLocation(b, test.offset); got != test.want {
			t.Errorf("offset %d: got %q, expected %q", test.offset, got, test.want)
		}
	}
}

type jsonLeg struct {
	PathTerminator string     `json:"path_terminator"`
	Course         float32    `json:"course"`
	Fix            string     `json:"fix"`
	Location       [2]float32 `json:"location"`
}

type jsonProcedure struct {
	Ident string    `json:"ident"`
	Legs  []jsonLeg `json:"legs"`
}

func TestUnmarshalJSONErrors(t *testing.T) {
	var p jsonProcedure
	err := UnmarshalJSONBytes([]byte("{\n  \"ident\": \"RNAV4\",\n  \"legs\": [ { \"course\": \"east\" } ]\n}"), &p)
	if err == nil {
		t.Fatalf("expected error for invalid course")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected error to report line 3, got %q", err)
	}

	err = UnmarshalJSON(strings.NewReader(`{"ident": "RNAV4", "legs": [ {"course": 90, "fix": "ALPHA"} ]}`), &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Ident != "RNAV4" || len(p.Legs) != 1 || p.Legs[0].Course != 90 {
		t.Errorf("unexpected decode result %+v", p)
	}
}

func TestCheckJSON(t *testing.T) {
	for _, test := range []struct {
		json string
		errs bool
	}{
		{`{"ident": "A", "legs": [{"path_terminator": "TF", "fix": "X"}]}`, false},
		{`{"ident": "A", "legs": [{"location": "N40.0,W073.0"}]}`, false},
		{`{"ident": "A", "legs": [{"pathterminator": "TF"}]}`, true},
		{`{"ident": "A", "legs": {"fix": "X"}}`, true},
	} {
		var e ErrorLogger
		CheckJSON[jsonProcedure]([]byte(test.json), &e)
		if e.HaveErrors() != test.errs {
			t.Errorf("%s: expected errors %v, got %q", test.json, test.errs, e.String())
		}
	}
}

func TestCacheObjects(t *testing.T) {
	CacheDir = t.TempDir()
	defer func() { CacheDir = "" }()

	in := jsonProcedure{Ident: "RNAV4", Legs: []jsonLeg{{PathTerminator: "IF", Fix: "ALPHA"}, {PathTerminator: "TF", Fix: "BRAVO", Course: 92.5}}}
	if err := CacheStoreObject("procs/RNAV4", in); err != nil {
		t.Fatalf("store: %v", err)
	}

	var out jsonProcedure
	if _, err := CacheRetrieveObject("procs/RNAV4", &out); err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if out.Ident != in.Ident || len(out.Legs) != 2 || out.Legs[1].Course != 92.5 || out.Legs[1].Fix != "BRAVO" {
		t.Errorf("retrieved %+v, expected %+v", out, in)
	}

	if err := CacheCullObjects(0); err != nil {
		t.Fatalf("cull: %v", err)
	}
	if _, err := os.Stat(filepath.Join(CacheDir, "procs", "RNAV4")); !os.IsNotExist(err) {
		t.Errorf("expected cached object to be culled")
	}
}

func TestHash(t *testing.T) {
	h, err := Hash(strings.NewReader("hello world"))
	if err != nil {
		t.Fatal(err)
	}
	if s := fmt.Sprintf("%x", h); s != "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9" {
		t.Errorf("unexpected hash %s", s)
	}
}

func TestResources(t *testing.T) {
	b, err := LoadResourceBytes("procedures.json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"procedures"`) {
		t.Errorf("procedures.json resource doesn't have procedures")
	}
	if !ResourceExists("lnavsim.json") {
		t.Errorf("expected lnavsim.json resource")
	}
	if ResourceExists("missing.json") {
		t.Errorf("unexpected missing.json resource")
	}
	if _, err := LoadResource("missing.json"); err == nil {
		t.Errorf("expected an error loading a missing resource")
	}
}
