// log/log_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNilLogger(t *testing.T) {
	var lg *Logger
	// None of these should crash.
	lg.Debug("debug")
	lg.Debugf("debug %d", 1)
	lg.Info("info")
	lg.Infof("info %d", 1)
	if lg.With("a", 1) != nil {
		t.Errorf("With on a nil Logger should return nil")
	}
}

func TestLoggerCallstack(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	lg.Infof("hello %s", "there")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("%s: %v", buf.String(), err)
	}
	if rec["msg"] != "hello there" {
		t.Errorf("got message %v", rec["msg"])
	}
	cs, ok := rec["callstack"].([]any)
	if !ok || len(cs) == 0 {
		t.Fatalf("no callstack in %s", buf.String())
	}
	if frame, ok := cs[0].(map[string]any); !ok || !strings.HasSuffix(frame["file"].(string), "log_test.go") {
		t.Errorf("unexpected first frame %v", cs[0])
	}
}

func TestParseLevel(t *testing.T) {
	for s, l := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		if parseLevel(s) != l {
			t.Errorf("%s: got %v", s, parseLevel(s))
		}
	}
}

func TestLoggerLevelsAndWith(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	lg.Info("dropped")
	lg.Debugf("dropped %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("messages below the level were logged: %s", buf.String())
	}

	lg.With("procedure", "KXYZ/RNAV1").Warn("no guidance", "leg", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("%s: %v", buf.String(), err)
	}
	if rec["procedure"] != "KXYZ/RNAV1" || rec["leg"] != float64(3) || rec["level"] != "WARN" {
		t.Errorf("unexpected record %v", rec)
	}
	if _, ok := rec["callstack"]; !ok {
		t.Errorf("no callstack in %v", rec)
	}
}
