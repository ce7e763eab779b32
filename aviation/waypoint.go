// aviation/waypoint.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"strconv"

	"github.com/mmp/lnav/math"
)

// Waypoint is a named location with optional altitude and speed
// constraints. Waypoints are immutable once constructed.
type Waypoint struct {
	Ident    string              `json:"ident"`
	Location math.Point2LL       `json:"location"`
	Altitude *AltitudeConstraint `json:"altitude,omitempty"`
	Speed    *SpeedConstraint    `json:"speed,omitempty"`
	FlyOver  bool                `json:"fly_over,omitempty"`
}

func (wp Waypoint) String() string {
	s := wp.Ident
	if s == "" {
		s = wp.Location.DDString()
	}
	if wp.Altitude != nil {
		s += " " + wp.Altitude.String()
	}
	if wp.Speed != nil {
		s += " " + wp.Speed.String()
	}
	return s
}

///////////////////////////////////////////////////////////////////////////
// AltitudeConstraint

type AltitudeDescriptor int

const (
	AltitudeAt AltitudeDescriptor = iota
	AltitudeAtOrAbove
	AltitudeAtOrBelow
	AltitudeBetween
)

func (d AltitudeDescriptor) String() string {
	switch d {
	case AltitudeAt:
		return "at"
	case AltitudeAtOrAbove:
		return "at_or_above"
	case AltitudeAtOrBelow:
		return "at_or_below"
	case AltitudeBetween:
		return "between"
	default:
		return "AltitudeDescriptor(" + strconv.Itoa(int(d)) + ")"
	}
}

func (d AltitudeDescriptor) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *AltitudeDescriptor) UnmarshalText(b []byte) error {
	switch string(b) {
	case "at", "@", "":
		*d = AltitudeAt
	case "at_or_above", "+":
		*d = AltitudeAtOrAbove
	case "at_or_below", "-":
		*d = AltitudeAtOrBelow
	case "between", "B":
		*d = AltitudeBetween
	default:
		return fmt.Errorf("%q: unknown altitude descriptor", string(b))
	}
	return nil
}

// AltitudeConstraint is an altitude restriction at a waypoint, in feet.
// For AltitudeBetween, Value1 is the upper limit and Value2 the lower
// one, following the ordering used in ARINC-424 records.
type AltitudeConstraint struct {
	Descriptor AltitudeDescriptor `json:"descriptor"`
	Value1     float32            `json:"value1"`
	Value2     float32            `json:"value2,omitempty"`
}

// Range returns the [low, high] range of altitudes that satisfy the
// constraint; 0 denotes no limit on that side.
func (ac AltitudeConstraint) Range() [2]float32 {
	switch ac.Descriptor {
	case AltitudeAt:
		return [2]float32{ac.Value1, ac.Value1}
	case AltitudeAtOrAbove:
		return [2]float32{ac.Value1, 0}
	case AltitudeAtOrBelow:
		return [2]float32{0, ac.Value1}
	case AltitudeBetween:
		return [2]float32{min(ac.Value1, ac.Value2), max(ac.Value1, ac.Value2)}
	default:
		panic("unhandled altitude descriptor " + ac.Descriptor.String())
	}
}

// TargetAltitude returns the altitude to fly in order to satisfy the
// constraint, given the current altitude.
func (ac AltitudeConstraint) TargetAltitude(alt float32) float32 {
	r := ac.Range()
	if r[0] != 0 && alt < r[0] {
		return r[0]
	}
	if r[1] != 0 && alt > r[1] {
		return r[1]
	}
	return alt
}

func (ac AltitudeConstraint) String() string {
	switch ac.Descriptor {
	case AltitudeAt:
		return fmt.Sprintf("%.0f", ac.Value1)
	case AltitudeAtOrAbove:
		return fmt.Sprintf("%.0f+", ac.Value1)
	case AltitudeAtOrBelow:
		return fmt.Sprintf("%.0f-", ac.Value1)
	case AltitudeBetween:
		r := ac.Range()
		return fmt.Sprintf("%.0f-%.0f", r[0], r[1])
	default:
		return "???"
	}
}

///////////////////////////////////////////////////////////////////////////
// SpeedConstraint

type SpeedDescriptor int

const (
	SpeedAt SpeedDescriptor = iota
	SpeedAtOrAbove
	SpeedAtOrBelow
)

func (d SpeedDescriptor) String() string {
	return [...]string{"at", "at_or_above", "at_or_below"}[d]
}

func (d SpeedDescriptor) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *SpeedDescriptor) UnmarshalText(b []byte) error {
	switch string(b) {
	case "at", "@", "":
		*d = SpeedAt
	case "at_or_above", "+":
		*d = SpeedAtOrAbove
	case "at_or_below", "-":
		*d = SpeedAtOrBelow
	default:
		return fmt.Errorf("%q: unknown speed descriptor", string(b))
	}
	return nil
}

// SpeedConstraint is a speed restriction at a waypoint, in knots.
type SpeedConstraint struct {
	Descriptor SpeedDescriptor `json:"descriptor"`
	Value      float32         `json:"value"`
}

func (sc SpeedConstraint) String() string {
	switch sc.Descriptor {
	case SpeedAtOrAbove:
		return fmt.Sprintf("%.0fK+", sc.Value)
	case SpeedAtOrBelow:
		return fmt.Sprintf("%.0fK-", sc.Value)
	default:
		return fmt.Sprintf("%.0fK", sc.Value)
	}
}

///////////////////////////////////////////////////////////////////////////
// TurnDirection

type TurnDirection int

const (
	TurnEither TurnDirection = iota
	TurnLeft
	TurnRight
)

func (t TurnDirection) String() string {
	return [...]string{"either", "left", "right"}[t]
}

func (t TurnDirection) MarshalText() ([]byte, error) {
	return []byte([...]string{"", "L", "R"}[t]), nil
}

func (t *TurnDirection) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "E", "either":
		*t = TurnEither
	case "L", "left":
		*t = TurnLeft
	case "R", "right":
		*t = TurnRight
	default:
		return fmt.Errorf("%q: unknown turn direction", string(b))
	}
	return nil
}

func parseTurnDirection(b byte) TurnDirection {
	switch b {
	case 'L':
		return TurnLeft
	case 'R':
		return TurnRight
	default:
		return TurnEither
	}
}
