// aviation/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "errors"

var (
	ErrInvalidARINC424       = errors.New("Invalid ARINC-424 record")
	ErrMissingPathTerminator = errors.New("Missing path terminator")
	ErrNoLegs                = errors.New("Procedure has no legs")
	ErrUnknownFix            = errors.New("Unknown fix")
	ErrUnknownProcedure      = errors.New("Unknown procedure")
)
