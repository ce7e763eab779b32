// nav/turn.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/math"
)

const (
	MinBankAngle = 5   // degrees
	MinTurnSpeed = 150 // knots
)

// MaxBankAngle returns the maximum bank angle used when planning turns at
// the given speed: 25 degrees between 150 and 300 knots, tapering to 19
// degrees at 450 knots and above and to 15 degrees at a standstill.
func MaxBankAngle(speed float32) float32 {
	switch {
	case speed < 150:
		return 15 + 10*max(speed, 0)/150
	case speed <= 300:
		return 25
	default:
		return max(19, 25-6*(speed-300)/150)
	}
}

// TurnBankAngle returns the planned bank angle for a turn through the
// given course change at the given speed.
func TurnBankAngle(courseChange, speed float32) float32 {
	return math.Clamp(math.Abs(courseChange)/2, MinBankAngle, MaxBankAngle(speed))
}

// TurnRadius returns the turn radius in nm at the given speed and bank
// angle.
func TurnRadius(speed, bank float32) float32 {
	t := math.Tan(math.Radians(bank))
	if t <= 0 {
		return 0
	}
	return speed * speed / (gravity * t) / turnRadiusUnitsPerNM
}

// turnParameters are the quantities common to all transition types,
// computed from the two legs being joined.
type turnParameters struct {
	Speed        float32 // knots
	CourseChange float32 // signed degrees, positive clockwise
	BankAngle    float32
	MaxBank      float32
	Radius       float32 // nm
	Clockwise    bool
}

// assumedSpeed returns the speed used for turn planning after prev: its
// speed constraint if it has one and otherwise the current true
// airspeed, but never less than MinTurnSpeed.
func assumedSpeed(prev Leg, fs FlightState) float32 {
	speed := fs.TAS
	if sc := prev.SpeedConstraint(); sc != nil && sc.Value > 0 {
		speed = sc.Value
	}
	return max(speed, MinTurnSpeed)
}

func makeTurnParameters(prev, next Leg, fs FlightState) turnParameters {
	tp := turnParameters{
		Speed:        assumedSpeed(prev, fs),
		CourseChange: math.DiffAngle(prev.Bearing(), next.InboundCourse()),
	}
	tp.MaxBank = MaxBankAngle(tp.Speed)
	tp.BankAngle = TurnBankAngle(tp.CourseChange, tp.Speed)
	tp.Radius = TurnRadius(tp.Speed, tp.BankAngle)
	tp.Clockwise = tp.CourseChange >= 0
	return tp
}

// withTurnDirection applies an explicitly coded turn direction.
func (tp turnParameters) withTurnDirection(turn av.TurnDirection) turnParameters {
	switch turn {
	case av.TurnRight:
		tp.Clockwise = true
	case av.TurnLeft:
		tp.Clockwise = false
	}
	return tp
}

// turnAngle returns the angle turned through in the planned direction.
func (tp turnParameters) turnAngle() float32 {
	return math.TurnAngle(0, tp.CourseChange, tp.Clockwise)
}

func (tp turnParameters) String() string {
	return fmt.Sprintf("speed %.0f course change %+.1f bank %.1f (max %.1f) radius %.3fnm %s", tp.Speed,
		tp.CourseChange, tp.BankAngle, tp.MaxBank, tp.Radius, map[bool]string{true: "cw", false: "ccw"}[tp.Clockwise])
}

// flyByCircle returns the circle for a fly-by turn at pivot from course a
// onto course b: its center lies on the bisector of the two courses at
// r/cos(theta/2) from the pivot and it's tangent to both courses at
// r*tan(theta/2) from the pivot.
func flyByCircle(pivot math.Point2LL, a, b float32, tp turnParameters) (circle, math.Point2LL, math.Point2LL, error) {
	theta := math.Abs(tp.CourseChange)
	half := math.Radians(theta / 2)
	cosHalf := math.Cos(half)
	if cosHalf < 0.01 || tp.Radius < degenerateDistance {
		return circle{}, math.Point2LL{}, math.Point2LL{}, ErrDegenerateTurn
	}

	var bisector float32
	if tp.Clockwise {
		bisector = b + (180-theta)/2
	} else {
		bisector = b - (180-theta)/2
	}
	center := math.DestinationPoint(pivot, tp.Radius/cosHalf, math.NormalizeHeading(bisector))

	tangent := tp.Radius * math.Tan(half)
	start := math.DestinationPoint(pivot, tangent, math.OppositeHeading(a))
	end := math.DestinationPoint(pivot, tangent, b)

	c := circle{Center: center, Radius: tp.Radius, Clockwise: tp.Clockwise, Sweep: theta}
	c.StartRadial = c.radialFor(a)
	return c, start, end, nil
}

const (
	tangentSearchStep     = 0.2 // degrees
	tangentSearchMaxSteps = 1800
	tangentSearchMaxError = 5 // degrees
)

// tangentToFix returns the circle for a turn starting at pivot on course
// a and ending where the track around the circle points directly at fix.
// The tangent point is found by scanning the circle in small steps and
// refining the crossing by interpolation.
func tangentToFix(pivot math.Point2LL, a float32, fix math.Point2LL, tp turnParameters) (circle, math.Point2LL, error) {
	c := circle{Radius: tp.Radius, Clockwise: tp.Clockwise}
	if tp.Clockwise {
		c.Center = math.DestinationPoint(pivot, tp.Radius, math.NormalizeHeading(a+90))
	} else {
		c.Center = math.DestinationPoint(pivot, tp.Radius, math.NormalizeHeading(a-90))
	}
	c.StartRadial = c.radialFor(a)

	if math.GreatCircleDistance(c.Center, fix) <= tp.Radius {
		// The fix is inside the turn; no tangent exists.
		return circle{}, math.Point2LL{}, fmt.Errorf("fix within turn radius: %w", ErrTangentNotFound)
	}

	// Signed angle from the track at the given point on the circle to the
	// bearing to the fix.
	errAt := func(sweep float32) float32 {
		radial := math.NormalizeHeading(c.StartRadial + signedAngle(c.Clockwise, sweep))
		p := c.pointAt(radial)
		return math.DiffAngle(c.trackAt(radial), math.GreatCircleBearing(p, fix))
	}

	prev := errAt(0)
	if math.Abs(prev) < 1e-3 {
		c.Sweep = 0
		return c, pivot, nil
	}
	for i := 1; i <= tangentSearchMaxSteps; i++ {
		sweep := float32(i) * tangentSearchStep
		cur := errAt(sweep)
		// A sign change with a small error is the tangent; a sign change
		// with a large one is the wrap from +180 to -180 when pointing
		// away from the fix.
		if (cur == 0 || math.Sign(cur) != math.Sign(prev)) && math.Abs(cur) < tangentSearchMaxError &&
			math.Abs(prev) < tangentSearchMaxError {
			t := prev / (prev - cur)
			c.Sweep = math.Mod(sweep-tangentSearchStep+t*tangentSearchStep, 360)
			return c, c.End(), nil
		}
		prev = cur
	}

	return circle{}, math.Point2LL{}, ErrTangentNotFound
}

func signedAngle(clockwise bool, a float32) float32 {
	if clockwise {
		return a
	}
	return -a
}
