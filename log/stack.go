// log/stack.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"path/filepath"
	"runtime"
	"strings"
)

const maxStackFrames = 16

// StackFrame is a single entry of a logged call stack.
type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// Callstack returns the call stack of its caller's caller, reusing fr's
// storage if it is large enough.
func Callstack(fr []StackFrame) []StackFrame {
	return appendCallstack(fr[:0], 4)
}

// appendCallstack appends the frames above skip (as in runtime.Callers)
// to fr, stopping at main.main.
func appendCallstack(fr []StackFrame, skip int) []StackFrame {
	var pcs [maxStackFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if frame.Function == "" {
			break
		}
		fn := strings.TrimPrefix(frame.Function, "github.com/mmp/lnav/")
		fr = append(fr, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: strings.TrimPrefix(fn, "main."),
		})
		if !more || frame.Function == "main.main" {
			break
		}
	}
	return fr
}
