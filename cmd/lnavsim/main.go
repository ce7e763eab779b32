// cmd/lnavsim/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// lnavsim builds procedures into segments of legs and transitions and
// flies them with a simple simulated aircraft.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/log"
	"github.com/mmp/lnav/nav"
	"github.com/mmp/lnav/sim"
	"github.com/mmp/lnav/util"

	"github.com/apenwarr/fixconsole"
	"github.com/goforj/godump"
	"github.com/iancoleman/orderedmap"
)

var (
	logLevel         = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir           = flag.String("logdir", "", "log file directory")
	configFilename   = flag.String("config", "", "JSON file with the simulated aircraft configuration")
	procedureFiles   = flag.String("procedures", "", "comma-separated list of JSON procedure files; default: resources/procedures.json")
	arincFilename    = flag.String("arinc", "", "ARINC-424 file with navaids, waypoints and procedures")
	procedureNames   = flag.String("run", "", "comma-separated list of procedures to fly (e.g. KJFK/I04R); default: all")
	traceFilename    = flag.String("trace", "", "write the flown traces to this file")
	dumpSegments     = flag.Bool("dump", false, "dump the built segments")
	printTable       = flag.Bool("table", false, "print the leg transition table as JSON and exit")
	navLog           = flag.Bool("navlog", false, "enable navigation logging")
	navLogCategories = flag.String("navlog-categories", "all", "navigation log categories (comma-separated: build,transition,sequence,guidance)")
)

const (
	segmentCacheSize = 256
	segmentCacheTTL  = time.Hour
	maxCacheBytes    = 256 * 1024 * 1024
)

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	nav.InitNavLog(*navLog, *navLogCategories, lg)

	if *printTable {
		if err := writeTransitionTable(); err != nil {
			lg.Errorf("%v", err)
			os.Exit(1)
		}
		return
	}

	var e util.ErrorLogger
	config := loadConfig(&e)
	db := loadDatabase(&e, lg)
	if e.HaveErrors() {
		e.PrintErrors(lg)
		os.Exit(1)
	}

	names := db.ProcedureNames()
	if *procedureNames != "" {
		names = strings.Split(*procedureNames, ",")
	}
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "no procedures to fly")
		os.Exit(1)
	}

	cache := sim.NewSegmentCache(segmentCacheSize, segmentCacheTTL, lg)

	if *dumpSegments {
		for _, name := range names {
			proc, err := db.Procedure(name)
			if err != nil {
				lg.Errorf("%v", err)
				os.Exit(1)
			}
			seg, err := cache.Segment(proc, config)
			if err != nil {
				lg.Errorf("%v", err)
				os.Exit(1)
			}
			fmt.Printf("%s\n%s\n", name, seg)
			godump.Dump(seg.Transitions())
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	start := time.Now()
	traces, err := sim.RunAll(ctx, db, names, config, cache, lg)
	if err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}
	lg.Info("ran procedures", "count", len(traces), "elapsed", time.Since(start))

	for _, tr := range traces {
		fmt.Printf("%-24s %5d steps  done %-5v  discontinuities %d  max xte %.3fnm\n", tr.Procedure,
			len(tr.Steps), tr.Done, tr.Discontinuities, tr.MaxCrossTrackError(0))
	}

	if *traceFilename != "" {
		if err := writeTraces(*traceFilename, traces); err != nil {
			lg.Errorf("%s: %v", *traceFilename, err)
			os.Exit(1)
		}
	}
}

func loadConfig(e *util.ErrorLogger) sim.Config {
	var config sim.Config
	if *configFilename == "" {
		config.SetDefaults()
		return config
	}

	e.Push(*configFilename)
	defer e.Pop()

	f, err := os.Open(*configFilename)
	if err != nil {
		e.Error(err)
		return config
	}
	defer f.Close()

	config, err = sim.LoadConfig(f)
	if err != nil {
		e.Error(err)
		return config
	}
	config.Check(e)
	return config
}

func loadDatabase(e *util.ErrorLogger, lg *log.Logger) *av.Database {
	db := av.NewDatabase()

	if *arincFilename != "" {
		adb, err := loadARINC(*arincFilename, lg)
		if err != nil {
			e.Push(*arincFilename)
			e.Error(err)
			e.Pop()
		} else {
			db.Merge(adb)
		}
	}

	if *procedureFiles == "" && *arincFilename == "" {
		// Fly the example procedures.
		e.Push("procedures.json")
		if contents, err := util.LoadResourceBytes("procedures.json"); err != nil {
			e.Error(err)
		} else {
			db.Merge(av.LoadProcedureFile(contents, e))
		}
		e.Pop()
	} else if *procedureFiles != "" {
		for _, fn := range strings.Split(*procedureFiles, ",") {
			contents, err := os.ReadFile(fn)
			e.Push(fn)
			if err != nil {
				e.Error(err)
			} else {
				db.Merge(av.LoadProcedureFile(contents, e))
			}
			e.Pop()
		}
	}

	db.ResolveAll(e)
	return db
}

// loadARINC returns the database decoded from an ARINC-424 file; decoded
// databases are cached, keyed by the file's contents, since large files
// are slow to parse.
func loadARINC(fn string, lg *log.Logger) (*av.Database, error) {
	contents, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	h, err := util.Hash(bytes.NewReader(contents))
	if err != nil {
		return nil, err
	}
	cachePath := fmt.Sprintf("arinc/%x.msgpack", h)

	var db av.Database
	if _, err := util.CacheRetrieveObject(cachePath, &db); err == nil {
		lg.Infof("%s: using cached database", fn)
		return &db, nil
	}

	adb, err := av.ParseARINC424(bytes.NewReader(contents))
	if err != nil {
		return nil, err
	}

	if err := util.CacheStoreObject(cachePath, adb); err != nil {
		lg.Warnf("%s: unable to cache database: %v", fn, err)
	} else if err := util.CacheCullObjects(maxCacheBytes); err != nil {
		lg.Warnf("cache cull: %v", err)
	}
	return adb, nil
}

// writeTransitionTable prints the transition rule for every supported
// pair of leg types, ordered by leg type.
func writeTransitionTable() error {
	table := nav.TransitionTable()

	om := orderedmap.New()
	for _, from := range nav.AllLegTypes() {
		row := orderedmap.New()
		for _, to := range nav.AllLegTypes() {
			if r, ok := table[[2]nav.LegType{from, to}]; ok {
				row.Set(to.String(), r.String())
			}
		}
		om.Set(from.String(), row)
	}

	b, err := json.MarshalIndent(om, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func writeTraces(fn string, traces []*sim.Trace) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if err := sim.WriteTrace(f, traces); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
