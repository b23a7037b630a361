// Package zonespan splits an instant range into subranges of constant UTC offset
// A range that crosses a daylight-saving transition cannot be bucketed by
// local calendar rules in one piece, so the splitter walks the instant axis
// and closes a subrange at every offset change. At day-or-longer grain a
// zero-width gap marker is emitted at the transition so callers know the
// surrounding local day is not a clean bucket and must not be queried as one
package zonespan

import (
	"fmt"
	"time"

	"headcount/internal/core/grain"
)

// Order controls the ordering of returned subranges
type Order uint8

const (
	// Asc returns subranges earliest first
	Asc Order = iota

	// Desc returns subranges latest first
	Desc
)

// Subrange is a maximal contiguous instant range with a single UTC offset
// Gap marks a zero-width placeholder at a transition whose local wall-clock
// span is not well defined; gap subranges contain no queryable data
type Subrange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Gap   bool      `json:"gap"`
}

// probeStep caps how far apart offsets are sampled while walking
// Coarse grains still need at least daily samples or a transition inside one
// step could be missed
const probeStep = 24 * time.Hour

// Split partitions [start, end) into offset-constant subranges
// Concatenating the ascending result with gaps excluded reproduces the input
// range exactly; order only affects return ordering, never coverage. The
// boundary instant always opens the later-offset subrange, so a descending
// split is the structural mirror of the ascending one
func Split(loc *time.Location, start, end time.Time, g grain.Grain, order Order) ([]Subrange, error) {
	if loc == nil {
		return nil, fmt.Errorf("zonespan: nil location")
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("zonespan: start %v is not before end %v", start, end)
	}

	step := g.Step()
	if step > probeStep {
		step = probeStep
	}

	var subs []Subrange
	segStart := start
	cursor := start
	for cursor.Before(end) {
		next := cursor.Add(step)
		if next.After(end) {
			next = end
		}
		if offsetAt(loc, cursor) != offsetAt(loc, next) {
			boundary := transitionAfter(loc, cursor, next)
			subs = append(subs, Subrange{Start: segStart, End: boundary})
			if !g.SubDaily() {
				subs = append(subs, Subrange{Start: boundary, End: boundary, Gap: true})
			}
			segStart = boundary
		}
		cursor = next
	}
	if segStart.Before(end) {
		subs = append(subs, Subrange{Start: segStart, End: end})
	}

	if order == Desc {
		for i, j := 0, len(subs)-1; i < j; i, j = i+1, j-1 {
			subs[i], subs[j] = subs[j], subs[i]
		}
	}
	return subs, nil
}

// offsetAt returns the UTC offset in seconds at t
func offsetAt(loc *time.Location, t time.Time) int {
	_, off := t.In(loc).Zone()
	return off
}

// transitionAfter finds the first instant in (lo, hi] whose offset differs
// from lo's, to one second precision. Zone transitions land on whole seconds
// so the result is exact
func transitionAfter(loc *time.Location, lo, hi time.Time) time.Time {
	want := offsetAt(loc, lo)
	for hi.Sub(lo) > time.Second {
		mid := lo.Add(hi.Sub(lo) / 2).Truncate(time.Second)
		if !mid.After(lo) {
			mid = lo.Add(time.Second)
		}
		if offsetAt(loc, mid) == want {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}
