// sim/aircraft.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"

	"github.com/mmp/lnav/math"
	"github.com/mmp/lnav/nav"
)

const mpsPerKnot = 0.514444

// Aircraft is a point-mass aircraft flying coordinated turns in still
// air: its bank angle follows the commanded roll at a limited rate and
// its track changes at the rate the bank angle implies.
type Aircraft struct {
	Position  math.Point2LL
	Track     float32 // true
	BankAngle float32 // degrees, positive right
	TAS       float32

	RollRate float32 // degrees/second
	MaxBank  float32
}

func NewAircraft(c Config) *Aircraft {
	return &Aircraft{
		Position: c.Position,
		Track:    math.NormalizeHeading(c.Track),
		TAS:      c.TAS,
		RollRate: c.RollRate,
		MaxBank:  c.MaxBank,
	}
}

func (ac *Aircraft) FlightState() nav.FlightState {
	return nav.FlightState{GS: ac.TAS, TAS: ac.TAS, BankAngle: ac.BankAngle}
}

// TurnRate returns the current rate of turn in degrees per second;
// positive is clockwise.
func (ac *Aircraft) TurnRate() float32 {
	if ac.TAS <= 0 {
		return 0
	}
	return math.Degrees(9.81 * math.Tan(math.Radians(ac.BankAngle)) / (ac.TAS * mpsPerKnot))
}

// Update rolls toward the commanded roll angle and then advances the
// aircraft by dt seconds.
func (ac *Aircraft) Update(roll, dt float32) {
	roll = math.Clamp(roll, -ac.MaxBank, ac.MaxBank)
	maxDelta := ac.RollRate * dt
	ac.BankAngle += math.Clamp(roll-ac.BankAngle, -maxDelta, maxDelta)

	ac.Track = math.NormalizeHeading(ac.Track + ac.TurnRate()*dt)

	nmPerLongitude := math.NMPerLongitudeAt(ac.Position)
	v := math.Scale2f(math.SinCos(math.Radians(ac.Track)), ac.TAS/3600*dt)
	p := math.Add2f(math.LL2NM(ac.Position, nmPerLongitude), v)
	ac.Position = math.NM2LL(p, nmPerLongitude)
}

func (ac *Aircraft) String() string {
	return fmt.Sprintf("%s trk %05.1f bank %+.1f tas %.0f", ac.Position.DDString(), ac.Track, ac.BankAngle, ac.TAS)
}
