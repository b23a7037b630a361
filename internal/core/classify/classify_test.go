package classify

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"headcount/internal/core/grain"
	"headcount/internal/core/timefilter"
)

var testSpace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q): %v", name, err)
	}
	return loc
}

func eventAtLocal(loc *time.Location, y int, m time.Month, d, hh, mm int) RawCountEvent {
	return RawCountEvent{
		SpaceID:   testSpace,
		Timestamp: time.Date(y, m, d, hh, mm, 0, 0, loc).UTC(),
		Metrics:   Metrics{Max: 10, Min: 2, Entrances: 5, Exits: 4, Events: 9},
	}
}

// Overnight Friday window 22:00-02:00: an early Saturday morning event is
// Friday's, and the same time on Sunday is excluded because Saturday is not
// in the day set
func TestClassifyOvernightBucketDay(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	seg := timefilter.Segment{
		Start: timefilter.TimeOfDay{Hour: 22},
		End:   timefilter.TimeOfDay{Hour: 2},
		Days:  timefilter.Days(time.Friday),
	}
	now := time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC)

	// Saturday 2019-09-21 01:00 local
	dp, ok, err := Classify(eventAtLocal(ny, 2019, 9, 21, 1, 0), ny, seg, grain.Grain1h, now)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !ok {
		t.Fatalf("early Saturday event excluded from Friday overnight window")
	}
	if dp.LocalDay != "2019-09-21" {
		t.Fatalf("LocalDay = %s, want 2019-09-21", dp.LocalDay)
	}
	if dp.BucketDay != "2019-09-20" {
		t.Fatalf("BucketDay = %s, want the preceding Friday 2019-09-20", dp.BucketDay)
	}

	// Sunday 2019-09-22 01:00 local: bucket day is Saturday, not in Days
	_, ok, err = Classify(eventAtLocal(ny, 2019, 9, 22, 1, 0), ny, seg, grain.Grain1h, now)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if ok {
		t.Fatalf("Sunday 01:00 event passed a Friday-only overnight window")
	}
}

func TestClassifyOvernightWrapsBucketTime(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	seg := timefilter.Segment{
		Start: timefilter.TimeOfDay{Hour: 22},
		End:   timefilter.TimeOfDay{Hour: 2},
		Days:  timefilter.Days(time.Friday),
	}
	now := time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC)

	late, ok, err := Classify(eventAtLocal(ny, 2019, 9, 20, 23, 10), ny, seg, grain.Grain1h, now)
	if err != nil || !ok {
		t.Fatalf("Classify late = %v, %v", ok, err)
	}
	early, ok, err := Classify(eventAtLocal(ny, 2019, 9, 21, 1, 10), ny, seg, grain.Grain1h, now)
	if err != nil || !ok {
		t.Fatalf("Classify early = %v, %v", ok, err)
	}

	if late.BucketTime != "23:00" {
		t.Fatalf("late BucketTime = %s, want 23:00", late.BucketTime)
	}
	if early.BucketTime != "25:00" {
		t.Fatalf("early BucketTime = %s, want 25:00", early.BucketTime)
	}
	if early.BucketDay != late.BucketDay {
		t.Fatalf("wrapped event bucket day %s differs from %s", early.BucketDay, late.BucketDay)
	}
	if early.BucketTime <= late.BucketTime {
		t.Fatalf("wrapped label %s does not sort after %s", early.BucketTime, late.BucketTime)
	}
}

func TestClassifyDaytimeWindow(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	seg := timefilter.Segment{
		Start: timefilter.TimeOfDay{Hour: 9},
		End:   timefilter.TimeOfDay{Hour: 17},
		Days:  timefilter.Weekdays,
	}
	now := time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ev   RawCountEvent
		ok   bool
	}{
		{name: "inside window", ev: eventAtLocal(ny, 2019, 9, 23, 10, 30), ok: true},
		{name: "start boundary inclusive", ev: eventAtLocal(ny, 2019, 9, 23, 9, 0), ok: true},
		{name: "end boundary inclusive", ev: eventAtLocal(ny, 2019, 9, 23, 17, 0), ok: true},
		{name: "before window", ev: eventAtLocal(ny, 2019, 9, 23, 8, 59), ok: false},
		{name: "after window", ev: eventAtLocal(ny, 2019, 9, 23, 17, 1), ok: false},
		{name: "weekend excluded", ev: eventAtLocal(ny, 2019, 9, 21, 10, 30), ok: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			dp, ok, err := Classify(tc.ev, ny, seg, grain.Grain15m, now)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if ok != tc.ok {
				t.Fatalf("Classify ok = %v, want %v", ok, tc.ok)
			}
			if ok && dp.BucketDay != dp.LocalDay {
				t.Fatalf("daytime window shifted bucket day %s from %s", dp.BucketDay, dp.LocalDay)
			}
		})
	}
}

func TestClassifyTruncatesToGrain(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	seg := timefilter.FullDay[0]
	now := time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC)
	ev := eventAtLocal(ny, 2019, 9, 23, 10, 37)

	tests := []struct {
		g    grain.Grain
		want string
	}{
		{grain.Grain5m, "10:35"},
		{grain.Grain15m, "10:30"},
		{grain.Grain1h, "10:00"},
		{grain.Grain1d, "00:00"},
		{grain.Grain1w, "00:00"},
	}
	for _, tc := range tests {
		dp, ok, err := Classify(ev, ny, seg, tc.g, now)
		if err != nil || !ok {
			t.Fatalf("Classify(%v) = %v, %v", tc.g, ok, err)
		}
		if dp.BucketTime != tc.want {
			t.Fatalf("BucketTime(%v) = %s, want %s", tc.g, dp.BucketTime, tc.want)
		}
	}
}

func TestClassifyDropsForwardDated(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	now := time.Date(2019, 9, 23, 12, 0, 0, 0, time.UTC)
	ev := RawCountEvent{SpaceID: testSpace, Timestamp: now.Add(time.Hour)}

	_, ok, err := Classify(ev, ny, timefilter.FullDay[0], grain.Grain1h, now)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if ok {
		t.Fatalf("forward-dated event not dropped")
	}
}

func TestClassifyRejectsNilLocation(t *testing.T) {
	ev := eventAtLocal(time.UTC, 2019, 9, 23, 10, 0)
	if _, _, err := Classify(ev, nil, timefilter.FullDay[0], grain.Grain1h, time.Now()); err == nil {
		t.Fatalf("nil location accepted")
	}
}

func TestClassifyRejectsUnknownGrain(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	ev := eventAtLocal(ny, 2019, 9, 23, 10, 0)
	now := time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC)
	if _, _, err := Classify(ev, ny, timefilter.FullDay[0], grain.Grain(99), now); err == nil {
		t.Fatalf("unknown grain accepted")
	}
}
