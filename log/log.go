// log/log.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger so that every record carries the call stack of
// the code that logged it. A nil *Logger is valid: debug and info messages
// are dropped while warnings and errors go to slog's default logger.
type Logger struct {
	*slog.Logger
	LogFile string
	LogDir  string
	Start   time.Time
}

// New returns a Logger that writes JSON records to a rotating lnav.slog
// file in dir. If dir is empty, the user's config directory is used.
func New(level string, dir string) *Logger {
	if dir == "" {
		if cd, err := os.UserConfigDir(); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to find user config dir: %v\n", err)
			dir = "."
		} else {
			dir = filepath.Join(cd, "lnav")
		}
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "lnav.slog"),
		MaxSize:    32, // MB
		MaxBackups: 1,
	}
	if level == "debug" {
		// Guidance is logged every step when debugging.
		w.MaxSize = 512
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	l := &Logger{
		Logger:  slog.New(h),
		LogFile: w.Filename,
		LogDir:  dir,
		Start:   time.Now(),
	}
	l.logStartup()
	return l
}

// NewWithHandler returns a Logger that sends its output to the given
// slog.Handler; it is mostly useful for tests.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{Logger: slog.New(h), Start: time.Now()}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level\n", level)
		return slog.LevelInfo
	}
}

// logStartup records the system and the build so that a log file is
// self-describing.
func (l *Logger) logStartup() {
	attrs := []any{
		slog.Time("start", l.Start),
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		var deps, settings []any
		for _, dep := range bi.Deps {
			deps = append(deps, slog.String(dep.Path, dep.Version))
		}
		for _, s := range bi.Settings {
			settings = append(settings, slog.String(s.Key, s.Value))
		}
		attrs = append(attrs,
			slog.String("go", bi.GoVersion),
			slog.Group("deps", deps...),
			slog.Group("settings", settings...))
	}

	l.Info("lnav starting", attrs...)
}

// emit logs msg with the caller's stack prepended to args. It must be
// called directly from one of the exported logging methods so that the
// stack starts at their caller.
func (l *Logger) emit(level slog.Level, msg string, args []any) {
	ctx := context.Background()
	if l == nil {
		if level < slog.LevelWarn {
			return
		}
		args = append([]any{slog.Any("callstack", appendCallstack(nil, 4))}, args...)
		slog.Log(ctx, level, msg, args...)
		return
	}
	if !l.Logger.Enabled(ctx, level) {
		return
	}

	args = append([]any{slog.Any("callstack", appendCallstack(nil, 4))}, args...)
	l.Logger.Log(ctx, level, msg, args...)
	if level >= slog.LevelError {
		// Errors also go to stderr via the default logger.
		slog.Log(ctx, level, msg, args...)
	}
}

func (l *Logger) Debug(msg string, args ...any) { l.emit(slog.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.emit(slog.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.emit(slog.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.emit(slog.LevelError, msg, args) }

// Debugf and the other *f variants log a printf-style message with no
// attributes.
func (l *Logger) Debugf(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelDebug) {
		l.emit(slog.LevelDebug, fmt.Sprintf(msg, args...), nil)
	}
}

func (l *Logger) Infof(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelInfo) {
		l.emit(slog.LevelInfo, fmt.Sprintf(msg, args...), nil)
	}
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.emit(slog.LevelWarn, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.emit(slog.LevelError, fmt.Sprintf(msg, args...), nil)
}

// With returns a Logger that includes the given attributes in each
// record.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	w := *l
	w.Logger = l.Logger.With(args...)
	return &w
}

// CatchAndReportCrash should be deferred at the top of main; if a panic
// is in flight, it logs it and writes a crash report next to the log
// file before returning the recovered value.
func (l *Logger) CatchAndReportCrash() any {
	// Let the debugger see the panic.
	if dlv, ok := os.LookupEnv("_"); ok && strings.HasSuffix(dlv, "/dlv") {
		return nil
	}

	err := recover()
	if err == nil {
		return nil
	}

	l.Errorf("Crashed: %v", err)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Crashed: %v\nSys: %s/%s\n", err, runtime.GOARCH, runtime.GOOS)
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			fmt.Fprintf(&sb, "%s: %s\n", s.Key, s.Value)
		}
	}
	sb.Write(debug.Stack())
	report := sb.String()

	fmt.Fprintln(os.Stderr, report)
	if l != nil && l.LogDir != "" {
		fn := filepath.Join(l.LogDir, "crash-"+time.Now().Format(time.RFC3339)+".txt")
		_ = os.WriteFile(fn, []byte(report), 0o600)
	}
	return err
}
