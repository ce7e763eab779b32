// sim/config.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"io"

	"github.com/mmp/lnav/math"
	"github.com/mmp/lnav/nav"
	"github.com/mmp/lnav/util"
)

// Defaults for zero-valued Config fields.
const (
	DefaultTAS      = 150 // knots
	DefaultRollRate = 5   // degrees/second
	DefaultSteps    = 3600
	DefaultDT       = 1 // seconds
)

// Config describes the simulated aircraft and how long to fly it.
type Config struct {
	TAS      float32 `json:"tas"`       // knots; there is no wind so GS == TAS
	RollRate float32 `json:"roll_rate"` // degrees/second
	// MaxBank limits the commanded roll; if zero, nav.MaxBankAngle is
	// used for the configured TAS.
	MaxBank float32 `json:"max_bank"`

	Position math.Point2LL `json:"position"`
	Track    float32       `json:"track"` // true
	Altitude float32       `json:"altitude"`

	ClimbGradient     float32 `json:"climb_gradient"` // feet per nm
	MagneticVariation float32 `json:"magnetic_variation"`

	Steps int     `json:"steps"`
	DT    float32 `json:"dt"` // seconds
}

// LoadConfig decodes a JSON configuration and fills in defaults for
// fields that weren't specified.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	if err := util.UnmarshalJSON(r, &c); err != nil {
		return Config{}, err
	}
	c.SetDefaults()
	return c, nil
}

func (c *Config) SetDefaults() {
	if c.TAS == 0 {
		c.TAS = DefaultTAS
	}
	if c.RollRate == 0 {
		c.RollRate = DefaultRollRate
	}
	if c.MaxBank == 0 {
		c.MaxBank = nav.MaxBankAngle(c.TAS)
	}
	if c.ClimbGradient == 0 {
		c.ClimbGradient = nav.DefaultClimbGradient
	}
	if c.Steps == 0 {
		c.Steps = DefaultSteps
	}
	if c.DT == 0 {
		c.DT = DefaultDT
	}
}

func (c Config) Check(e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	e.Push("config")
	defer e.Pop()

	if c.TAS < 0 || c.TAS > 600 {
		e.ErrorString("tas %.0f outside [0,600]", c.TAS)
	}
	if c.RollRate < 0 {
		e.ErrorString("negative roll rate %.1f", c.RollRate)
	}
	if c.MaxBank < 0 || c.MaxBank > 60 {
		e.ErrorString("max bank %.1f outside [0,60]", c.MaxBank)
	}
	if c.Track < 0 || c.Track > 360 {
		e.ErrorString("track %.1f outside [0,360]", c.Track)
	}
	if c.Steps < 0 {
		e.ErrorString("negative step count %d", c.Steps)
	}
	if c.DT < 0 {
		e.ErrorString("negative time step %.2f", c.DT)
	}
}

// BuildContext returns the context used to build legs for a procedure
// flown from the configured initial state.
func (c Config) BuildContext() nav.BuildContext {
	pos := c.Position
	ctx := nav.BuildContext{
		MagneticVariation: c.MagneticVariation,
		Altitude:          c.Altitude,
		ClimbGradient:     c.ClimbGradient,
		Speed:             c.TAS,
	}
	if !pos.IsZero() {
		ctx.Origin = &pos
	}
	return ctx
}

// FlightState returns the initial flight state.
func (c Config) FlightState() nav.FlightState {
	return nav.FlightState{GS: c.TAS, TAS: c.TAS}
}
