// nav/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import "errors"

// Errors used by the nav package
var (
	ErrDegenerateTurn         = errors.New("Degenerate turn geometry")
	ErrEmptySegment           = errors.New("Segment has no legs")
	ErrMissingAltitude        = errors.New("Altitude-terminated leg has no altitude")
	ErrMissingArcData         = errors.New("Arc leg is missing its center or radius")
	ErrTangentNotFound        = errors.New("Unable to find turn tangent point")
	ErrUnknownPathTerminator  = errors.New("Unknown path terminator")
	ErrUnsupportedLegSequence = errors.New("Unsupported leg sequence")
)
