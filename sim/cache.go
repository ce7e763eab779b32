// sim/cache.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"time"

	av "github.com/mmp/lnav/aviation"
	"github.com/mmp/lnav/log"
	"github.com/mmp/lnav/nav"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// SegmentCache holds recently-built segments. Segments are immutable
// once built, so cached ones are shared between concurrent runs.
type SegmentCache struct {
	lru    *expirable.LRU[string, *nav.Segment]
	builds singleflight.Group
	lg     *log.Logger
}

func NewSegmentCache(size int, ttl time.Duration, lg *log.Logger) *SegmentCache {
	return &SegmentCache{
		lru: expirable.NewLRU[string, *nav.Segment](size, nil, ttl),
		lg:  lg,
	}
}

// segmentKey identifies everything that affects how a procedure's
// segment is built.
func segmentKey(proc *av.Procedure, c Config) string {
	return fmt.Sprintf("%s|%s|%.1f|%.0f|%.0f|%.0f|%.2f", proc.Name(), c.Position.DDString(), c.TAS,
		c.Altitude, c.ClimbGradient, c.MaxBank, c.MagneticVariation)
}

// Segment returns the validated segment for flying proc with the given
// configuration, building it if it isn't already cached. A nil cache
// always builds.
func (sc *SegmentCache) Segment(proc *av.Procedure, c Config) (*nav.Segment, error) {
	if sc == nil {
		return buildSegment(proc, c, nil)
	}

	key := segmentKey(proc, c)
	if seg, ok := sc.lru.Get(key); ok {
		return seg, nil
	}

	v, err, _ := sc.builds.Do(key, func() (any, error) {
		seg, err := buildSegment(proc, c, sc.lg)
		if err != nil {
			return nil, err
		}
		sc.lru.Add(key, seg)
		sc.lg.Debugf("%s: cached segment with %d legs", proc.Name(), len(seg.Elements))
		return seg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*nav.Segment), nil
}

func (sc *SegmentCache) Len() int {
	if sc == nil {
		return 0
	}
	return sc.lru.Len()
}

func buildSegment(proc *av.Procedure, c Config, lg *log.Logger) (*nav.Segment, error) {
	seg, err := nav.BuildProcedure(proc, c.BuildContext(), c.FlightState(), lg)
	if err != nil {
		return nil, err
	}
	if err := seg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", proc.Name(), err)
	}
	return seg, nil
}
