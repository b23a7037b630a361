// Package daterange realizes symbolic report date ranges into concrete instants
// A range is either an absolute pair of calendar dates or a relative kind
// anchored to "now". Realization needs a timezone, an injectable now, and the
// organization's week start day since "last week" depends on where weeks begin
package daterange

import (
	"fmt"
	"time"
)

// Kind discriminates the range variants
type Kind uint8

const (
	// Absolute is a fixed pair of calendar dates
	Absolute Kind = iota

	// WeekToDate runs from the current week's start day through today
	WeekToDate

	// Last7Days runs from seven calendar days ago through today
	Last7Days

	// LastWeek is the previous full organizational week
	LastWeek
)

// ParseKind maps a wire value to its Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "absolute":
		return Absolute, nil
	case "week_to_date":
		return WeekToDate, nil
	case "last_7_days":
		return Last7Days, nil
	case "last_week":
		return LastWeek, nil
	default:
		return 0, fmt.Errorf("daterange: unknown range kind %q", s)
	}
}

// String returns the wire value for k
func (k Kind) String() string {
	switch k {
	case Absolute:
		return "absolute"
	case WeekToDate:
		return "week_to_date"
	case Last7Days:
		return "last_7_days"
	case LastWeek:
		return "last_week"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Date is a calendar date with no time or zone attached
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("daterange: malformed date %q", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Range is a symbolic date range
// Start and End are only meaningful when Kind is Absolute
type Range struct {
	Kind  Kind
	Start Date
	End   Date
}

// Options parameterize realization
// A zero Now means the real current instant; the zero WeekStart is Sunday
type Options struct {
	Now       time.Time
	WeekStart time.Weekday
}

// Realize converts r into concrete zoned start and end instants
// Start is local midnight of the first day and End is 23:59:59.999 of the
// last day, both in loc
func Realize(r Range, loc *time.Location, opt Options) (time.Time, time.Time, error) {
	if loc == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("daterange: nil location")
	}
	now := opt.Now
	if now.IsZero() {
		now = time.Now()
	}
	local := now.In(loc)
	today := Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}

	switch r.Kind {
	case Absolute:
		if r.End.before(r.Start) {
			return time.Time{}, time.Time{}, fmt.Errorf("daterange: end %v before start %v", r.End, r.Start)
		}
		return midnight(r.Start, loc), endOfDay(r.End, loc), nil

	case WeekToDate:
		return midnight(weekStartOnOrBefore(today, loc, opt.WeekStart), loc), endOfDay(today, loc), nil

	case Last7Days:
		return midnight(today.add(-7), loc), endOfDay(today, loc), nil

	case LastWeek:
		cur := weekStartOnOrBefore(today, loc, opt.WeekStart)
		return midnight(cur.add(-7), loc), endOfDay(cur.add(-1), loc), nil

	default:
		return time.Time{}, time.Time{}, fmt.Errorf("daterange: unknown range kind %d", r.Kind)
	}
}

// weekStartOnOrBefore walks back from d to the most recent occurrence of
// start, inclusive of d itself
func weekStartOnOrBefore(d Date, loc *time.Location, start time.Weekday) Date {
	back := (int(midnight(d, loc).Weekday()) - int(start) + 7) % 7
	return d.add(-back)
}

// midnight returns local midnight of d in loc
// time.Date normalizes, so this is safe even when a DST jump lands on the
// nominal midnight
func midnight(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// endOfDay returns 23:59:59.999 of d in loc
func endOfDay(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 999_000_000, loc)
}

// add returns the date n calendar days later (or earlier for negative n)
func (d Date) add(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// String renders d as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
