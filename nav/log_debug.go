//go:build navlog

// nav/log_debug.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mmp/lnav/log"
)

var navlog struct {
	categories map[string]bool
	lg         *log.Logger
}

// InitNavLog enables NavLog output for the given comma-separated
// categories ("all" or "" for every category). Messages are printed and
// also sent to lg, if it is non-nil.
func InitNavLog(enabled bool, categories string, lg *log.Logger) {
	navlog.categories = make(map[string]bool)
	navlog.lg = lg
	if !enabled {
		return
	}

	cats := navLogCategories
	if categories != "" && categories != "all" {
		cats = strings.Split(categories, ",")
	}
	for _, c := range cats {
		c = strings.TrimSpace(c)
		if !slices.Contains(navLogCategories, c) {
			lg.Warnf("%s: unknown navlog category", c)
		}
		navlog.categories[c] = true
	}
}

func NavLog(category string, format string, args ...any) {
	if !navlog.categories[category] {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("[%s] %s\n", category, msg)
	navlog.lg.Info(msg, "navlog", category)
}

func NavLogEnabled(category string) bool {
	return navlog.categories[category]
}
