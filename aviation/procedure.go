// aviation/procedure.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"strings"

	"github.com/mmp/lnav/math"
	"github.com/mmp/lnav/util"

	"github.com/brunoga/deep"
)

// ProcedureLeg is a single decoded ARINC-424 procedure record. Courses
// are magnetic; locations are filled in by Database.Resolve if they were
// not given explicitly.
type ProcedureLeg struct {
	PathTerminator string        `json:"path_terminator"`
	Fix            string        `json:"fix,omitempty"`
	Location       math.Point2LL `json:"location,omitempty"`
	FlyOver        bool          `json:"fly_over,omitempty"`

	Course float32 `json:"course,omitempty"`
	// Distance is in nautical miles unless IsTime is set, in which case
	// it is minutes.
	Distance float32 `json:"distance,omitempty"`
	IsTime   bool    `json:"is_time,omitempty"`

	Altitude      *AltitudeConstraint `json:"altitude,omitempty"`
	Speed         *SpeedConstraint    `json:"speed,omitempty"`
	TurnDirection TurnDirection       `json:"turn_direction,omitempty"`

	// RF legs
	CenterFix      string        `json:"center_fix,omitempty"`
	CenterLocation math.Point2LL `json:"center_location,omitempty"`
	ArcRadius      float32       `json:"arc_radius,omitempty"`

	// Recommended navaid; used by AF, DME and radial terminated legs.
	RecommendedNavaid string        `json:"recommended_navaid,omitempty"`
	NavaidLocation    math.Point2LL `json:"navaid_location,omitempty"`
	Theta             float32       `json:"theta,omitempty"`
	Rho               float32       `json:"rho,omitempty"`
}

// Waypoint returns the terminating (or defining) waypoint of the leg.
func (pl ProcedureLeg) Waypoint() Waypoint {
	return Waypoint{
		Ident:    pl.Fix,
		Location: pl.Location,
		Altitude: pl.Altitude,
		Speed:    pl.Speed,
		FlyOver:  pl.FlyOver,
	}
}

// CenterWaypoint returns the arc center of an RF leg or the DME navaid of
// an AF leg.
func (pl ProcedureLeg) CenterWaypoint() (Waypoint, bool) {
	if pl.CenterFix != "" || !pl.CenterLocation.IsZero() {
		return Waypoint{Ident: pl.CenterFix, Location: pl.CenterLocation}, true
	}
	if pl.PathTerminator == "AF" && (pl.RecommendedNavaid != "" || !pl.NavaidLocation.IsZero()) {
		return Waypoint{Ident: pl.RecommendedNavaid, Location: pl.NavaidLocation}, true
	}
	return Waypoint{}, false
}

func (pl ProcedureLeg) String() string {
	var sb strings.Builder
	sb.WriteString(pl.PathTerminator)
	if pl.Fix != "" {
		sb.WriteString(" " + pl.Fix)
	}
	if pl.Course != 0 {
		fmt.Fprintf(&sb, " %05.1f", pl.Course)
	}
	if pl.Distance != 0 {
		fmt.Fprintf(&sb, util.Select(pl.IsTime, " %.1fmin", " %.1fnm"), pl.Distance)
	}
	if pl.Altitude != nil {
		sb.WriteString(" " + pl.Altitude.String())
	}
	if pl.Speed != nil {
		sb.WriteString(" " + pl.Speed.String())
	}
	if pl.TurnDirection != TurnEither {
		sb.WriteString(" turn " + pl.TurnDirection.String())
	}
	return sb.String()
}

type ProcedureType string

const (
	ProcedureSID      ProcedureType = "SID"
	ProcedureSTAR     ProcedureType = "STAR"
	ProcedureApproach ProcedureType = "IAP"
)

// Procedure is an ordered sequence of procedure legs, e.g. a SID, STAR
// or approach transition.
type Procedure struct {
	Airport    string        `json:"airport"`
	Ident      string        `json:"ident"`
	Type       ProcedureType `json:"type,omitempty"`
	Transition string        `json:"transition,omitempty"`
	// MagneticVariation is east-positive: true = magnetic + variation.
	MagneticVariation float32        `json:"magnetic_variation"`
	Legs              []ProcedureLeg `json:"legs"`
}

// Name returns the key used for the procedure in a Database, e.g.
// "KJFK/I04R" or "KJFK/CAMRN4.ZIGGI".
func (p *Procedure) Name() string {
	n := p.Airport + "/" + p.Ident
	if p.Transition != "" {
		n += "." + p.Transition
	}
	return n
}

// Clone returns a deep copy of the procedure so that callers may modify
// it without affecting shared copies.
func (p *Procedure) Clone() *Procedure {
	return deep.MustCopy(p)
}

// Check validates the procedure's legs, accumulating any errors in e.
func (p *Procedure) Check(e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	e.Push(p.Name())
	defer e.Pop()

	if len(p.Legs) == 0 {
		e.Error(ErrNoLegs)
		return
	}

	for i, leg := range p.Legs {
		e.Push(fmt.Sprintf("leg %d (%s)", i, leg.PathTerminator))
		switch leg.PathTerminator {
		case "":
			e.Error(ErrMissingPathTerminator)
		case "RF":
			if leg.CenterFix == "" && leg.CenterLocation.IsZero() {
				e.ErrorString("RF leg is missing its center fix")
			}
			if leg.ArcRadius <= 0 {
				e.ErrorString("RF leg must have a positive arc radius")
			}
		case "AF":
			if leg.RecommendedNavaid == "" && leg.NavaidLocation.IsZero() {
				e.ErrorString("AF leg is missing its DME navaid")
			}
			if leg.Rho <= 0 {
				e.ErrorString("AF leg must have a positive DME distance")
			}
		}
		if leg.Course < 0 || leg.Course > 360 {
			e.ErrorString("course %.1f outside [0,360]", leg.Course)
		}
		if leg.Distance < 0 {
			e.ErrorString("negative distance %.1f", leg.Distance)
		}
		e.Pop()
	}
}
