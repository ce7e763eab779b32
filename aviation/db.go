// aviation/db.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"maps"

	"github.com/mmp/lnav/math"
	"github.com/mmp/lnav/util"
)

type Fix struct {
	Ident    string        `json:"ident"`
	Location math.Point2LL `json:"location"`
}

type Navaid struct {
	Ident    string        `json:"ident"`
	Type     string        `json:"type"` // VOR, NDB, DME
	Name     string        `json:"name,omitempty"`
	Location math.Point2LL `json:"location"`
}

type Airport struct {
	Ident             string        `json:"ident"`
	Location          math.Point2LL `json:"location"`
	Elevation         int           `json:"elevation"`
	MagneticVariation float32       `json:"magnetic_variation"`
}

// Database holds the fixes, navaids and procedures available for
// building flight plans. It is not safe for concurrent mutation; callers
// should treat it as read-only once loaded.
type Database struct {
	Airports   map[string]Airport
	Navaids    map[string]Navaid
	Fixes      map[string]Fix
	Procedures map[string]*Procedure
}

func NewDatabase() *Database {
	return &Database{
		Airports:   make(map[string]Airport),
		Navaids:    make(map[string]Navaid),
		Fixes:      make(map[string]Fix),
		Procedures: make(map[string]*Procedure),
	}
}

// Lookup returns the location of the named fix, navaid or airport.
// Navaids take precedence over fixes with the same identifier, matching
// how recommended navaids are coded in procedure records.
func (db *Database) Lookup(ident string) (math.Point2LL, bool) {
	if n, ok := db.Navaids[ident]; ok {
		return n.Location, true
	}
	if f, ok := db.Fixes[ident]; ok {
		return f.Location, true
	}
	if ap, ok := db.Airports[ident]; ok {
		return ap.Location, true
	}
	return math.Point2LL{}, false
}

// AddProcedure adds p to the database, replacing any existing procedure
// with the same name.
func (db *Database) AddProcedure(p *Procedure) {
	db.Procedures[p.Name()] = p
}

// Procedure returns a copy of the named procedure.
func (db *Database) Procedure(name string) (*Procedure, error) {
	p, ok := db.Procedures[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownProcedure)
	}
	return p.Clone(), nil
}

func (db *Database) ProcedureNames() []string {
	return util.SortedMapKeys(db.Procedures)
}

// Merge adds the contents of other to db; entries in other take
// precedence.
func (db *Database) Merge(other *Database) {
	maps.Copy(db.Airports, other.Airports)
	maps.Copy(db.Navaids, other.Navaids)
	maps.Copy(db.Fixes, other.Fixes)
	maps.Copy(db.Procedures, other.Procedures)
}

// Resolve fills in the locations of all fixes referenced by the legs of
// p that do not already have one. If the procedure does not specify a
// magnetic variation, the airport's is used.
func (db *Database) Resolve(p *Procedure) error {
	lookup := func(ident string, loc *math.Point2LL) error {
		if ident == "" || !loc.IsZero() {
			return nil
		}
		if l, ok := db.Lookup(ident); ok {
			*loc = l
			return nil
		}
		return fmt.Errorf("%s: %s: %w", p.Name(), ident, ErrUnknownFix)
	}

	for i := range p.Legs {
		leg := &p.Legs[i]
		if err := lookup(leg.Fix, &leg.Location); err != nil {
			return err
		}
		if err := lookup(leg.CenterFix, &leg.CenterLocation); err != nil {
			return err
		}
		if err := lookup(leg.RecommendedNavaid, &leg.NavaidLocation); err != nil {
			return err
		}
	}

	if ap, ok := db.Airports[p.Airport]; ok && p.MagneticVariation == 0 {
		p.MagneticVariation = ap.MagneticVariation
	}
	return nil
}

// ResolveAll resolves every procedure in the database, logging the ones
// that can't be resolved in e and removing them.
func (db *Database) ResolveAll(e *util.ErrorLogger) {
	for _, name := range db.ProcedureNames() {
		if err := db.Resolve(db.Procedures[name]); err != nil {
			e.Error(err)
			delete(db.Procedures, name)
		}
	}
}

///////////////////////////////////////////////////////////////////////////
// JSON procedure files

// ProcedureFile is the JSON format used for hand-authored procedures.
type ProcedureFile struct {
	Fixes      map[string]math.Point2LL `json:"fixes,omitempty"`
	Navaids    map[string]Navaid        `json:"navaids,omitempty"`
	Airports   map[string]Airport       `json:"airports,omitempty"`
	Procedures []Procedure              `json:"procedures"`
}

// LoadProcedureFile decodes and validates a JSON procedure file,
// returning a database holding its fixes and procedures. Errors are
// accumulated in e; the returned database holds whatever could be
// loaded.
func LoadProcedureFile(contents []byte, e *util.ErrorLogger) *Database {
	defer e.CheckDepth(e.CurrentDepth())

	db := NewDatabase()

	util.CheckJSON[ProcedureFile](contents, e)
	if e.HaveErrors() {
		return db
	}

	var pf ProcedureFile
	if err := util.UnmarshalJSONBytes(contents, &pf); err != nil {
		e.Error(err)
		return db
	}

	for id, loc := range pf.Fixes {
		db.Fixes[id] = Fix{Ident: id, Location: loc}
	}
	for id, n := range pf.Navaids {
		n.Ident = id
		db.Navaids[id] = n
	}
	for id, ap := range pf.Airports {
		ap.Ident = id
		db.Airports[id] = ap
	}
	for i := range pf.Procedures {
		p := &pf.Procedures[i]
		p.Check(e)
		db.AddProcedure(p)
	}
	return db
}
