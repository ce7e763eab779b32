// nav/log.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

// Navigation log categories; NavLog output is only compiled in with the
// navlog build tag.
const (
	NavLogBuild      = "build"      // leg construction and segment assembly
	NavLogTransition = "transition" // transition selection and geometry
	NavLogGuidance   = "guidance"   // per-update guidance parameters
	NavLogSequence   = "sequence"   // leg and transition sequencing
)

var navLogCategories = []string{NavLogBuild, NavLogTransition, NavLogGuidance, NavLogSequence}
