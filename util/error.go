// util/error.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mmp/lnav/log"
)

// ErrorLogger accumulates errors found while validating procedure and
// configuration files so that all of them can be reported at once. Each
// error is prefixed with the context given by the enclosing Push calls,
// e.g. "procedures.json / KJFK/I04R / leg 3: ...".
type ErrorLogger struct {
	hierarchy []string
	errors    []error
}

func (e *ErrorLogger) Push(s string) {
	e.hierarchy = append(e.hierarchy, s)
}

func (e *ErrorLogger) Pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

func (e *ErrorLogger) context() string {
	return strings.Join(e.hierarchy, " / ")
}

func (e *ErrorLogger) ErrorString(s string, args ...any) {
	e.errors = append(e.errors, fmt.Errorf("%s: %s", e.context(), fmt.Sprintf(s, args...)))
}

// Error records err; it is wrapped, so errors.Is on Err's result still
// finds it.
func (e *ErrorLogger) Error(err error) {
	e.errors = append(e.errors, fmt.Errorf("%s: %w", e.context(), err))
}

func (e *ErrorLogger) HaveErrors() bool {
	return e != nil && len(e.errors) > 0
}

// Err returns all of the recorded errors joined into one, or nil.
func (e *ErrorLogger) Err() error {
	if e == nil {
		return nil
	}
	return errors.Join(e.errors...)
}

func (e *ErrorLogger) PrintErrors(lg *log.Logger) {
	if lg != nil {
		for _, err := range e.errors {
			lg.Warnf("%v", err)
		}
	}
	// Printed separately so the log output doesn't interleave.
	for _, err := range e.errors {
		fmt.Fprintln(os.Stderr, err)
	}
}

func (e *ErrorLogger) String() string {
	if err := e.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// CheckDepth should be deferred with the depth at function entry; it
// catches unbalanced Push/Pop calls.
func (e *ErrorLogger) CheckDepth(d int) {
	if e == nil || e.CurrentDepth() == d {
		return
	}

	if r := recover(); r != nil {
		// Don't mask the panic with a depth complaint.
		panic(r)
	}
	fmt.Fprintf(os.Stderr, "Initial ErrorLogger depth %d, final %d\n", d, e.CurrentDepth())
	for _, f := range log.Callstack(nil) {
		fmt.Fprintf(os.Stderr, "%15s:%d %s\n", f.File, f.Line, f.Function)
	}
	os.Exit(1)
}

func (e *ErrorLogger) CurrentDepth() int {
	if e == nil {
		return 0
	}
	return len(e.hierarchy)
}
