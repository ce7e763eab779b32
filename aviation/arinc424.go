// aviation/arinc424.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mmp/lnav/math"
	"github.com/mmp/lnav/util"
)

const ARINC424LineLength = 132

// arincDecoder carries the state for decoding a single ARINC-424 file;
// the first numeric decoding error encountered is latched in err so that
// field accessors can be chained without checking each one.
type arincDecoder struct {
	lineno int
	err    error
}

func empty(s []byte) bool {
	return len(bytes.TrimSpace(s)) == 0
}

func (d *arincDecoder) fail(field string, s []byte) {
	if d.err == nil {
		d.err = fmt.Errorf("line %d: %s %q: %w", d.lineno, field, string(s), ErrInvalidARINC424)
	}
}

func (d *arincDecoder) parseInt(field string, s []byte) int {
	v, err := strconv.Atoi(strings.TrimSpace(string(s)))
	if err != nil {
		d.fail(field, s)
	}
	return v
}

// parseTenths decodes fields like courses and DME distances that are
// coded in tenths of a unit; blank fields decode as zero.
func (d *arincDecoder) parseTenths(field string, s []byte) float32 {
	if empty(s) {
		return 0
	}
	return float32(d.parseInt(field, s)) / 10
}

func (d *arincDecoder) parseAltitude(s []byte) float32 {
	if empty(s) {
		return 0
	}
	if len(s) > 2 && string(s[:2]) == "FL" {
		return float32(100 * d.parseInt("altitude", s[2:]))
	}
	return float32(d.parseInt("altitude", s))
}

func (d *arincDecoder) parseLLDigits(dg, m, s []byte) float32 {
	deg := d.parseInt("degrees", dg)
	min := d.parseInt("minutes", m)
	sec := d.parseInt("seconds", s)
	return float32(deg) + float32(min)/60 + float32(sec)/100/3600
}

func (d *arincDecoder) parseLatLong(lat, long []byte) math.Point2LL {
	if (lat[0] != 'N' && lat[0] != 'S') || (long[0] != 'E' && long[0] != 'W') {
		d.fail("latlong", append(append([]byte{}, lat...), long...))
		return math.Point2LL{}
	}

	var p math.Point2LL
	p[1] = d.parseLLDigits(lat[1:3], lat[3:5], lat[5:])
	p[0] = d.parseLLDigits(long[1:4], long[4:6], long[6:])

	if lat[0] == 'S' {
		p[1] = -p[1]
	}
	if long[0] == 'W' {
		p[0] = -p[0]
	}
	return p
}

// parseMagVar decodes a magnetic variation such as "W0130" (13.0 degrees
// west) into an east-positive value.
func (d *arincDecoder) parseMagVar(s []byte) float32 {
	if empty(s) || s[0] == 'T' {
		return 0
	}
	v := d.parseTenths("magnetic variation", s[1:])
	return util.Select(s[0] == 'W', -v, v)
}

///////////////////////////////////////////////////////////////////////////

type ssaRecord struct {
	icao                   string
	subsection             byte
	id                     string
	routeType              byte
	transition             string
	fix                    string
	continuation           byte
	waypointDescription    []byte
	turnDirection          byte
	pathAndTermination     string
	recommendedNavaid      []byte
	arcRadius              []byte
	theta                  []byte
	rho                    []byte
	outboundMagneticCourse []byte
	routeDistance          []byte
	altDescrip             byte
	alt0, alt1             []byte
	speed                  []byte
	centerFix              []byte
	speedLimitType         byte
}

func parseSSA(line []byte) ssaRecord {
	return ssaRecord{
		icao:                   strings.TrimSpace(string(line[6:10])),
		subsection:             line[12],
		id:                     strings.TrimSpace(string(line[13:19])),
		routeType:              line[19],
		transition:             strings.TrimSpace(string(line[20:25])),
		fix:                    strings.TrimSpace(string(line[29:34])),
		continuation:           line[38],
		waypointDescription:    line[39:43],
		turnDirection:          line[43],
		pathAndTermination:     string(line[47:49]), // 5.21
		recommendedNavaid:      line[50:54],
		arcRadius:              line[56:62],
		theta:                  line[62:66],
		rho:                    line[66:70],
		outboundMagneticCourse: line[70:74],
		routeDistance:          line[74:78],
		altDescrip:             line[82], // 5.29
		alt0:                   line[84:89],
		alt1:                   line[89:94],
		speed:                  line[99:102],
		centerFix:              line[106:111],
		speedLimitType:         line[117], // 5.261
	}
}

// sameProcedure reports whether two records belong to the same procedure
// transition and so should be decoded into the same Procedure.
func (r ssaRecord) sameProcedure(o ssaRecord) bool {
	return r.icao == o.icao && r.subsection == o.subsection && r.id == o.id &&
		r.routeType == o.routeType && r.transition == o.transition
}

func (d *arincDecoder) procedureLeg(r ssaRecord) ProcedureLeg {
	leg := ProcedureLeg{
		PathTerminator:    r.pathAndTermination,
		Fix:               r.fix,
		FlyOver:           r.waypointDescription[1] == 'Y',
		Course:            d.parseTenths("course", r.outboundMagneticCourse),
		TurnDirection:     parseTurnDirection(r.turnDirection),
		CenterFix:         strings.TrimSpace(string(r.centerFix)),
		RecommendedNavaid: strings.TrimSpace(string(r.recommendedNavaid)),
		Theta:             d.parseTenths("theta", r.theta),
		Rho:               d.parseTenths("rho", r.rho),
	}

	if !empty(r.routeDistance) {
		if r.routeDistance[0] == 'T' { // it's a time
			leg.IsTime = true
			leg.Distance = d.parseTenths("time", r.routeDistance[1:])
		} else {
			leg.Distance = d.parseTenths("distance", r.routeDistance)
		}
	}

	if !empty(r.arcRadius) {
		// thousandths of a nm
		leg.ArcRadius = float32(d.parseInt("arc radius", r.arcRadius)) / 1000
	}

	alt0, alt1 := d.parseAltitude(r.alt0), d.parseAltitude(r.alt1)
	if alt0 != 0 || alt1 != 0 {
		ac := &AltitudeConstraint{Value1: alt0}
		switch r.altDescrip {
		case ' ', '@', 'G', 'I', 'X':
			// G/I/X carry a glideslope or vertical angle altitude in the
			// second field; the first is 'at'.
			ac.Descriptor = AltitudeAt
		case '+', 'H', 'J', 'V':
			ac.Descriptor = AltitudeAtOrAbove
		case '-':
			ac.Descriptor = AltitudeAtOrBelow
		case 'B':
			// "At or above to at or below"; the higher value always
			// appears first.
			ac.Descriptor = AltitudeBetween
			ac.Value2 = alt1
		default:
			d.fail("altitude descriptor", []byte{r.altDescrip})
		}
		leg.Altitude = ac
	}

	if !empty(r.speed) {
		sc := &SpeedConstraint{Value: float32(d.parseInt("speed", r.speed))}
		switch r.speedLimitType {
		case '+':
			sc.Descriptor = SpeedAtOrAbove
		case '-':
			sc.Descriptor = SpeedAtOrBelow
		default:
			sc.Descriptor = SpeedAt
		}
		leg.Speed = sc
	}

	return leg
}

func procedureType(subsection byte) ProcedureType {
	switch subsection {
	case 'D':
		return ProcedureSID
	case 'E':
		return ProcedureSTAR
	default:
		return ProcedureApproach
	}
}

///////////////////////////////////////////////////////////////////////////

// ParseARINC424 decodes navaid (D), enroute waypoint (EA), airport (PA),
// terminal waypoint (PC) and SID/STAR/approach (PD/PE/PF) records from
// the given reader. Other record types are ignored. Procedure legs are
// not resolved; see Database.Resolve.
func ParseARINC424(r io.Reader) (*Database, error) {
	db := NewDatabase()
	d := &arincDecoder{}

	var cur *Procedure
	var curRec ssaRecord
	flush := func() {
		if cur != nil && len(cur.Legs) > 0 {
			db.AddProcedure(cur)
		}
		cur = nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		d.lineno++
		line := bytes.TrimRight(sc.Bytes(), "\r\n")
		if len(line) == 0 {
			continue
		}
		if len(line) > ARINC424LineLength {
			return nil, fmt.Errorf("line %d: unexpected line length %d: %w", d.lineno, len(line), ErrInvalidARINC424)
		}
		if len(line) < ARINC424LineLength {
			// Tolerate trailing whitespace having been stripped.
			line = append(append([]byte{}, line...), bytes.Repeat([]byte{' '}, ARINC424LineLength-len(line))...)
		}

		if line[0] != 'S' { // not a standard record
			continue
		}

		switch section := line[4]; section {
		case 'D':
			subsection := line[5]
			if subsection != ' ' && subsection != 'B' { // VOR / NDB
				break
			}
			id := strings.TrimSpace(string(line[13:17]))
			name := strings.TrimSpace(string(line[93:123]))
			if !empty(line[32:51]) {
				db.Navaids[id] = Navaid{
					Ident:    id,
					Type:     util.Select(subsection == ' ', "VOR", "NDB"),
					Name:     name,
					Location: d.parseLatLong(line[32:41], line[41:51]),
				}
			} else {
				db.Navaids[id] = Navaid{
					Ident:    id,
					Type:     "DME",
					Name:     name,
					Location: d.parseLatLong(line[55:64], line[64:74]),
				}
			}

		case 'E':
			if line[5] == 'A' { // enroute waypoint
				id := strings.TrimSpace(string(line[13:18]))
				db.Fixes[id] = Fix{Ident: id, Location: d.parseLatLong(line[32:41], line[41:51])}
			}

		case 'P':
			icao := strings.TrimSpace(string(line[6:10]))
			switch subsection := line[12]; subsection {
			case 'A': // primary airport record 4.1.7
				if line[21] != '0' && line[21] != '1' {
					break
				}
				db.Airports[icao] = Airport{
					Ident:             icao,
					Location:          d.parseLatLong(line[32:41], line[41:51]),
					MagneticVariation: d.parseMagVar(line[51:56]),
					Elevation:         d.parseInt("elevation", line[56:61]),
				}

			case 'C': // terminal waypoint 4.1.4
				id := strings.TrimSpace(string(line[13:18]))
				db.Fixes[id] = Fix{Ident: id, Location: d.parseLatLong(line[32:41], line[41:51])}

			case 'D', 'E', 'F': // SID, STAR, approach 4.1.9
				rec := parseSSA(line)
				if rec.continuation != '0' && rec.continuation != '1' {
					// Continuation records don't carry leg geometry.
					break
				}
				if cur == nil || !curRec.sameProcedure(rec) {
					flush()
					cur = &Procedure{
						Airport:    rec.icao,
						Ident:      rec.id,
						Type:       procedureType(subsection),
						Transition: rec.transition,
					}
					curRec = rec
				}
				cur.Legs = append(cur.Legs, d.procedureLeg(rec))
				continue
			}
		}

		if d.err != nil {
			return nil, d.err
		}
	}
	flush()

	if err := sc.Err(); err != nil {
		return nil, err
	}
	if d.err != nil {
		return nil, d.err
	}

	// Procedures pick up the airport's variation.
	for _, p := range db.Procedures {
		if ap, ok := db.Airports[p.Airport]; ok {
			p.MagneticVariation = ap.MagneticVariation
		}
	}

	return db, nil
}
