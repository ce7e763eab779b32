// math/latlong.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const NMPerLatitude = 60

// Point2LL is a position on the Earth. Note that [0] is the longitude and
// [1] is the latitude.
type Point2LL [2]float32

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

// DDString returns the position in decimal degrees, latitude first, e.g.
// (39.860901, -75.274864).
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0])
}

// NMPerLongitudeAt returns the number of nautical miles per degree of
// longitude at the latitude of p.
func NMPerLongitudeAt(p Point2LL) float32 {
	return NMPerLatitude * Cos(Radians(p[1]))
}

// NM2LL converts a point in nautical mile coordinates to lat-long.
func NM2LL(p [2]float32, nmPerLongitude float32) Point2LL {
	return Point2LL{p[0] / nmPerLongitude, p[1] / NMPerLatitude}
}

// LL2NM converts a lat-long point to nautical mile coordinates, where both
// axes have the same scale. The local flat-earth geometry used by the
// path terminators is done in this space.
func LL2NM(p Point2LL, nmPerLongitude float32) [2]float32 {
	return [2]float32{p[0] * nmPerLongitude, p[1] * NMPerLatitude}
}

// ParseLatLong parses a position given either in dotted degrees, minutes,
// seconds, and milliseconds ("N40.37.58.400,W073.46.17.000") or as a
// pair of decimal degrees, latitude first ("40.6328888, -73.771385").
func ParseLatLong(llstr []byte) (Point2LL, error) {
	lat, long, ok := strings.Cut(string(llstr), ",")
	if !ok {
		return Point2LL{}, fmt.Errorf("%s: invalid latlong string", llstr)
	}
	lat, long = strings.TrimSpace(lat), strings.TrimSpace(long)

	if lat != "" && (lat[0] == 'N' || lat[0] == 'S') {
		la, err := parseDotted(lat, 'N', 'S')
		if err != nil {
			return Point2LL{}, fmt.Errorf("%s: %w", llstr, err)
		}
		lo, err := parseDotted(long, 'E', 'W')
		if err != nil {
			return Point2LL{}, fmt.Errorf("%s: %w", llstr, err)
		}
		return Point2LL{lo, la}, nil
	}

	la, err := strconv.ParseFloat(lat, 32)
	if err != nil {
		return Point2LL{}, fmt.Errorf("%s: invalid latitude: %w", llstr, err)
	}
	lo, err := strconv.ParseFloat(long, 32)
	if err != nil {
		return Point2LL{}, fmt.Errorf("%s: invalid longitude: %w", llstr, err)
	}
	if la < -90 || la > 90 || lo < -180 || lo > 180 {
		return Point2LL{}, fmt.Errorf("%s: latlong out of range", llstr)
	}
	return Point2LL{float32(lo), float32(la)}, nil
}

// parseDotted parses a single hemisphere-prefixed coordinate of the form
// H<deg>.<min>.<sec>.<msec>. The milliseconds are a decimal fraction, so
// ".4" is 400ms.
func parseDotted(s string, pos, neg byte) (float32, error) {
	if s == "" || (s[0] != pos && s[0] != neg) {
		return 0, fmt.Errorf("%q: expected %c or %c", s, pos, neg)
	}
	fields := strings.Split(s[1:], ".")
	if len(fields) != 4 {
		return 0, fmt.Errorf("%q: expected four dotted fields", s)
	}

	var v float64
	for i, f := range fields {
		if f == "" || strings.ContainsFunc(f, func(r rune) bool { return r < '0' || r > '9' }) {
			return 0, fmt.Errorf("%q: invalid number %q", s, f)
		}
		if i == 3 {
			f = (f + "00")[:3]
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, err
		}
		v += float64(n) / [4]float64{1, 60, 3600, 3600000}[i]
	}

	if s[0] == neg {
		v = -v
	}
	return float32(v), nil
}

// MarshalJSON writes the point as a [longitude, latitude] array.
func (p Point2LL) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float32(p))
}

// UnmarshalJSON accepts either a [longitude, latitude] array or a string
// in one of the forms handled by ParseLatLong.
func (p *Point2LL) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		var pt [2]float32
		if err := json.Unmarshal(b, &pt); err != nil {
			return err
		}
		*p = pt
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	pt, err := ParseLatLong([]byte(s))
	if err == nil {
		*p = pt
	}
	return err
}
