// sim/run.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/log"
	"github.com/mmp/lnav/math"
	"github.com/mmp/lnav/nav"

	"golang.org/x/sync/errgroup"
)

// Step records the aircraft state and guidance at one time step.
type Step struct {
	Time         float32 // seconds since the start
	Position     math.Point2LL
	Track        float32
	BankAngle    float32
	Leg          int
	InTransition bool
	Guidance     nav.GuidanceParameters
	HaveGuidance bool
}

// Trace is the record of flying a procedure.
type Trace struct {
	Procedure       string
	Steps           []Step
	Done            bool // the last leg was sequenced
	Discontinuities int
}

// MaxCrossTrackError returns the largest cross-track error of the steps
// flown with lateral path guidance after the given time.
func (tr *Trace) MaxCrossTrackError(after float32) float32 {
	var m float32
	for _, s := range tr.Steps {
		if s.Time >= after && s.HaveGuidance && s.Guidance.Law == nav.LawLateralPath {
			m = max(m, math.Abs(s.Guidance.CrossTrackError))
		}
	}
	return m
}

func (tr *Trace) String() string {
	return fmt.Sprintf("%s: %d steps done %v discontinuities %d", tr.Procedure, len(tr.Steps), tr.Done,
		tr.Discontinuities)
}

// Run flies the segment from the configured initial state until it has
// been completed or the configured number of steps have been taken.
// Discontinuities are cleared as soon as they're reached: the leg after
// one is flown from wherever the aircraft is.
func Run(ctx context.Context, name string, seg *nav.Segment, c Config, lg *log.Logger) (*Trace, error) {
	ac := NewAircraft(c)
	seq := nav.NewSequencer(seg, lg)
	tr := &Trace{Procedure: name}

	for i := range c.Steps {
		if err := ctx.Err(); err != nil {
			return tr, err
		}

		fs := ac.FlightState()
		seq.Update(ac.Position, ac.Track, fs)
		if seq.AtDiscontinuity() {
			tr.Discontinuities++
			seq.ClearDiscontinuity()
			seq.Update(ac.Position, ac.Track, fs)
		}
		if seq.Done() {
			tr.Done = true
			break
		}

		var roll float32
		gp, ok := seq.Guidance(ac.Position, ac.Track, fs)
		if ok {
			roll = RollCommand(gp, ac.Track, ac.MaxBank)
		}
		tr.Steps = append(tr.Steps, Step{
			Time:         float32(i) * c.DT,
			Position:     ac.Position,
			Track:        ac.Track,
			BankAngle:    ac.BankAngle,
			Leg:          seq.Index(),
			InTransition: seq.ActiveTransition() != nil,
			Guidance:     gp,
			HaveGuidance: ok,
		})

		ac.Update(roll, c.DT)
	}

	if !tr.Done {
		lg.Info("procedure not completed", slog.String("procedure", name), slog.Int("leg", seq.Index()),
			slog.String("aircraft", ac.String()))
	}
	return tr, nil
}

// RunProcedure builds (or fetches from the cache) the segment for proc and
// flies it.
func RunProcedure(ctx context.Context, proc *av.Procedure, c Config, cache *SegmentCache, lg *log.Logger) (*Trace, error) {
	seg, err := cache.Segment(proc, c)
	if err != nil {
		return nil, err
	}
	return Run(ctx, proc.Name(), seg, c, lg.With(slog.String("procedure", proc.Name())))
}

// RunAll flies the named procedures from db concurrently, returning their
// traces in the order of names. The first error cancels the remaining
// runs.
func RunAll(ctx context.Context, db *av.Database, names []string, c Config, cache *SegmentCache,
	lg *log.Logger) ([]*Trace, error) {
	traces := make([]*Trace, len(names))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, name := range names {
		eg.Go(func() error {
			proc, err := db.Procedure(name)
			if err != nil {
				return err
			}
			tr, err := RunProcedure(ctx, proc, c, cache, lg)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			traces[i] = tr
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return traces, nil
}
