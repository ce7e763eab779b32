// sim/autopilot.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"github.com/mmp/lnav/math"
	"github.com/mmp/lnav/nav"
)

const (
	interceptGain     = 45 // degrees of intercept angle per nm of cross-track error
	maxInterceptAngle = 30
	rollGain          = 1.5 // degrees of roll per degree of track error
)

// RollCommand returns the roll angle that steers an aircraft with the
// given track according to gp, limited to +/- maxBank.
func RollCommand(gp nav.GuidanceParameters, track, maxBank float32) float32 {
	var target float32
	switch gp.Law {
	case nav.LawLateralPath:
		// Aim to cross the path at an angle proportional to how far off
		// it we are.
		icpt := math.Clamp(interceptGain*gp.CrossTrackError, -maxInterceptAngle, maxInterceptAngle)
		target = math.NormalizeHeading(gp.DesiredTrack - icpt)
	case nav.LawTrack:
		target = gp.DesiredTrack
	case nav.LawHeading:
		target = gp.Heading
	default:
		panic("unhandled guidance law " + gp.Law.String())
	}

	diff := math.DiffAngle(track, target)
	if gp.RollAngle*diff < 0 && math.Abs(diff) > 90 {
		// The feed-forward roll is turning the long way around.
		return math.Clamp(gp.RollAngle, -maxBank, maxBank)
	}
	return math.Clamp(gp.RollAngle+rollGain*diff, -maxBank, maxBank)
}
