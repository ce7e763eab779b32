// math/geodesy.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
)

// EarthRadiusNM is the mean radius of the Earth in nautical miles.
const EarthRadiusNM = 3440.065

// All of the great-circle routines below are evaluated in float64; the
// differences between nearby positions are too small for float32 to
// represent reliably. See
// https://www.movable-type.co.uk/scripts/latlong.html for the formulae.
//
// Results are undefined for coincident antipodal inputs.

func radians64(d float32) float64 { return float64(d) / 180 * gomath.Pi }

func degrees64(r float64) float32 { return float32(r * 180 / gomath.Pi) }

// GreatCircleBearing returns the initial true bearing in degrees, in
// [0,360), of the great circle from a to b.
func GreatCircleBearing(a, b Point2LL) float32 {
	lat1, lon1 := radians64(a[1]), radians64(a[0])
	lat2, lon2 := radians64(b[1]), radians64(b[0])
	dlon := lon2 - lon1

	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)
	if x == 0 && y == 0 {
		return 0
	}
	return NormalizeHeading(degrees64(gomath.Atan2(y, x)))
}

// greatCircleAngle returns the central angle in radians between a and b.
func greatCircleAngle(a, b Point2LL) float64 {
	lat1, lon1 := radians64(a[1]), radians64(a[0])
	lat2, lon2 := radians64(b[1]), radians64(b[0])
	dlat, dlon := lat2-lat1, lon2-lon1

	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	x = Clamp(x, 0, 1)
	return 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))
}

// GreatCircleDistance returns the distance in nautical miles between two
// lat-long coordinates.
func GreatCircleDistance(a, b Point2LL) float32 {
	return float32(greatCircleAngle(a, b) * EarthRadiusNM)
}

// DestinationPoint returns the point reached by traveling dist nautical
// miles from origin along the great circle with initial bearing hdg.
func DestinationPoint(origin Point2LL, dist float32, hdg float32) Point2LL {
	if dist == 0 {
		return origin
	}
	lat1, lon1 := radians64(origin[1]), radians64(origin[0])
	theta := radians64(hdg)
	delta := float64(dist) / EarthRadiusNM

	sinLat2 := gomath.Sin(lat1)*gomath.Cos(delta) + gomath.Cos(lat1)*gomath.Sin(delta)*gomath.Cos(theta)
	lat2 := gomath.Asin(Clamp(sinLat2, -1, 1))
	y := gomath.Sin(theta) * gomath.Sin(delta) * gomath.Cos(lat1)
	x := gomath.Cos(delta) - gomath.Sin(lat1)*sinLat2
	lon2 := lon1 + gomath.Atan2(y, x)

	// Keep longitude in [-180,180].
	lon2 = gomath.Mod(lon2+3*gomath.Pi, 2*gomath.Pi) - gomath.Pi
	return Point2LL{degrees64(lon2), degrees64(lat2)}
}

// CrossTrackDistance returns the distance in nautical miles from p to the
// great circle through ref with the given course. Positive values are to
// the right of the course.
func CrossTrackDistance(p, ref Point2LL, course float32) float32 {
	d13 := greatCircleAngle(ref, p)
	if d13 < 1e-12 {
		return 0
	}
	theta := radians64(GreatCircleBearing(ref, p)) - radians64(course)
	return float32(gomath.Asin(Clamp(gomath.Sin(d13)*gomath.Sin(theta), -1, 1)) * EarthRadiusNM)
}

// AlongTrackDistance returns the signed distance in nautical miles from
// ref to the projection of p onto the great circle through ref with the
// given course; it is positive if the projection lies ahead of ref.
func AlongTrackDistance(p, ref Point2LL, course float32) float32 {
	d13 := greatCircleAngle(ref, p)
	if d13 < 1e-12 {
		return 0
	}
	theta := radians64(GreatCircleBearing(ref, p)) - radians64(course)
	dxt := gomath.Asin(Clamp(gomath.Sin(d13)*gomath.Sin(theta), -1, 1))
	c := gomath.Cos(dxt)
	if c < 1e-12 {
		return 0
	}
	dat := gomath.Acos(Clamp(gomath.Cos(d13)/c, -1, 1))
	if gomath.Cos(theta) < 0 {
		dat = -dat
	}
	return float32(dat * EarthRadiusNM)
}
