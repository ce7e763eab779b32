//go:build !navlog

// nav/log_release.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import "github.com/mmp/lnav/log"

// Without the navlog build tag, navigation logging compiles away.

func InitNavLog(enabled bool, categories string, lg *log.Logger) {}
func NavLog(category string, format string, args ...any)         {}
func NavLogEnabled(category string) bool                         { return false }
