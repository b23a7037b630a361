package zonespan

import (
	"testing"
	"time"

	"headcount/internal/core/grain"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q): %v", name, err)
	}
	return loc
}

// The canonical fall-back case: New York, October through December 2018,
// with the clocks falling back on November 4th
func TestSplitFallBackHourGrain(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	start := time.Date(2018, 10, 1, 0, 0, 0, 0, ny)
	end := time.Date(2018, 12, 1, 0, 0, 0, 0, ny)

	subs, err := Split(ny, start, end, grain.Grain1h, Asc)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("got %d subranges, want 2: %v", len(subs), subs)
	}

	boundary := time.Date(2018, 11, 4, 6, 0, 0, 0, time.UTC)
	if !subs[0].End.Equal(boundary) || !subs[1].Start.Equal(boundary) {
		t.Fatalf("split at %v / %v, want %v", subs[0].End, subs[1].Start, boundary)
	}
	// 2018-11-04T02:00:00-04:00 and 2018-11-04T01:00:00-05:00 are the same instant
	if got := subs[0].End.In(ny).Format("2006-01-02T15:04:05-07:00"); got != "2018-11-04T01:00:00-05:00" {
		t.Fatalf("boundary local form = %s", got)
	}
	for _, s := range subs {
		if s.Gap {
			t.Fatalf("hour grain produced a gap subrange: %v", s)
		}
	}
}

func TestSplitFallBackDayGrainInsertsGap(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	start := time.Date(2018, 10, 1, 0, 0, 0, 0, ny)
	end := time.Date(2018, 12, 1, 0, 0, 0, 0, ny)

	subs, err := Split(ny, start, end, grain.Grain1d, Asc)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d subranges, want 3: %v", len(subs), subs)
	}
	if subs[0].Gap || !subs[1].Gap || subs[2].Gap {
		t.Fatalf("gap flags = %v %v %v, want middle only", subs[0].Gap, subs[1].Gap, subs[2].Gap)
	}
	if !subs[1].Start.Equal(subs[1].End) {
		t.Fatalf("gap subrange is not zero width: %v", subs[1])
	}
	if !subs[0].End.Equal(subs[1].Start) || !subs[1].End.Equal(subs[2].Start) {
		t.Fatalf("subranges are not contiguous: %v", subs)
	}
}

func TestSplitSpringForward(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	start := time.Date(2019, 3, 1, 0, 0, 0, 0, ny)
	end := time.Date(2019, 4, 1, 0, 0, 0, 0, ny)

	subs, err := Split(ny, start, end, grain.Grain1d, Asc)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d subranges, want 3: %v", len(subs), subs)
	}
	// clocks spring forward 2019-03-10 at 07:00 UTC
	boundary := time.Date(2019, 3, 10, 7, 0, 0, 0, time.UTC)
	if !subs[1].Gap || !subs[1].Start.Equal(boundary) {
		t.Fatalf("gap = %v, want zero width at %v", subs[1], boundary)
	}
}

func TestSplitNoTransition(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	start := time.Date(2019, 6, 1, 0, 0, 0, 0, ny)
	end := time.Date(2019, 7, 1, 0, 0, 0, 0, ny)

	for _, g := range []grain.Grain{grain.Grain5m, grain.Grain1h, grain.Grain1d, grain.Grain1w} {
		subs, err := Split(ny, start, end, g, Asc)
		if err != nil {
			t.Fatalf("Split(%v): %v", g, err)
		}
		if len(subs) != 1 || subs[0].Gap {
			t.Fatalf("Split(%v) = %v, want one plain subrange", g, subs)
		}
		if !subs[0].Start.Equal(start) || !subs[0].End.Equal(end) {
			t.Fatalf("Split(%v) does not cover the range: %v", g, subs)
		}
	}
}

func TestSplitDescIsStructuralMirror(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	start := time.Date(2018, 10, 1, 0, 0, 0, 0, ny)
	end := time.Date(2018, 12, 1, 0, 0, 0, 0, ny)

	asc, err := Split(ny, start, end, grain.Grain1d, Asc)
	if err != nil {
		t.Fatalf("Split asc: %v", err)
	}
	desc, err := Split(ny, start, end, grain.Grain1d, Desc)
	if err != nil {
		t.Fatalf("Split desc: %v", err)
	}
	if len(asc) != len(desc) {
		t.Fatalf("asc %d vs desc %d subranges", len(asc), len(desc))
	}
	for i := range asc {
		j := len(desc) - 1 - i
		if !asc[i].Start.Equal(desc[j].Start) || !asc[i].End.Equal(desc[j].End) || asc[i].Gap != desc[j].Gap {
			t.Fatalf("asc[%d] = %v, desc[%d] = %v, want mirror", i, asc[i], j, desc[j])
		}
	}
}

// Coverage invariant: ascending subranges with gaps excluded tile [start, end)
// exactly, and no subrange straddles an offset change
func TestSplitCoverage(t *testing.T) {
	zones := []string{"America/New_York", "America/Los_Angeles", "Europe/London", "Australia/Sydney", "UTC"}
	ranges := []struct{ from, to time.Time }{
		{time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2018, 12, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2019, 3, 9, 12, 0, 0, 0, time.UTC), time.Date(2019, 3, 11, 12, 0, 0, 0, time.UTC)},
		{time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	grains := []grain.Grain{grain.Grain15m, grain.Grain1h, grain.Grain1d, grain.Grain1w}

	for _, zone := range zones {
		loc := mustZone(t, zone)
		for _, rng := range ranges {
			for _, g := range grains {
				subs, err := Split(loc, rng.from, rng.to, g, Asc)
				if err != nil {
					t.Fatalf("Split(%s, %v): %v", zone, g, err)
				}
				cursor := rng.from
				for _, s := range subs {
					if s.Gap {
						if !s.Start.Equal(s.End) {
							t.Fatalf("%s %v: non zero width gap %v", zone, g, s)
						}
						continue
					}
					if !s.Start.Equal(cursor) {
						t.Fatalf("%s %v: subrange starts at %v, cursor at %v", zone, g, s.Start, cursor)
					}
					if !s.Start.Before(s.End) {
						t.Fatalf("%s %v: empty subrange %v", zone, g, s)
					}
					if offsetAt(loc, s.Start) != offsetAt(loc, s.End.Add(-time.Second)) {
						t.Fatalf("%s %v: subrange %v crosses an offset change", zone, g, s)
					}
					cursor = s.End
				}
				if !cursor.Equal(rng.to) {
					t.Fatalf("%s %v: coverage ends at %v, want %v", zone, g, cursor, rng.to)
				}
			}
		}
	}
}

func TestSplitRejectsBadInput(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	at := time.Date(2019, 6, 1, 0, 0, 0, 0, ny)
	if _, err := Split(nil, at, at.Add(time.Hour), grain.Grain1h, Asc); err == nil {
		t.Fatalf("nil location accepted")
	}
	if _, err := Split(ny, at, at, grain.Grain1h, Asc); err == nil {
		t.Fatalf("empty range accepted")
	}
	if _, err := Split(ny, at.Add(time.Hour), at, grain.Grain1h, Asc); err == nil {
		t.Fatalf("inverted range accepted")
	}
}
