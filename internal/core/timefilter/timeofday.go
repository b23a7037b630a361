// Package timefilter models time-of-day windows and day-of-week filters
// A filter is an ordered list of segments; each segment is a start and end
// time of day plus the set of weekdays it applies to. A segment whose end is
// earlier than its start wraps past midnight and belongs to the start day
package timefilter

import (
	"fmt"
	"regexp"
	"strconv"
)

// DayMillis is the number of milliseconds in one civil day
const DayMillis = 24 * 60 * 60 * 1000

// TimeOfDay is a civil wall-clock time with millisecond resolution
// Hour 24 is only valid as an exclusive end-of-day sentinel
type TimeOfDay struct {
	Hour        int `json:"hour"`
	Minute      int `json:"minute"`
	Second      int `json:"second"`
	Millisecond int `json:"millisecond"`
}

// EndOfDay is the exclusive end-of-day sentinel 24:00:00.000
var EndOfDay = TimeOfDay{Hour: 24}

// Millis converts t to milliseconds since local midnight
func (t TimeOfDay) Millis() int {
	return t.Hour*3_600_000 + t.Minute*60_000 + t.Second*1_000 + t.Millisecond
}

// FromMillis converts a millisecond offset back to a TimeOfDay
// DayMillis maps to the 24:00 sentinel; anything else is floor-mod
// normalized into [0, DayMillis) first so negative inputs wrap backwards
func FromMillis(ms int) TimeOfDay {
	if ms == DayMillis {
		return EndOfDay
	}
	ms %= DayMillis
	if ms < 0 {
		ms += DayMillis
	}
	return TimeOfDay{
		Hour:        ms / 3_600_000,
		Minute:      ms / 60_000 % 60,
		Second:      ms / 1_000 % 60,
		Millisecond: ms % 1_000,
	}
}

// timeOfDayRe matches HH:mm with optional seconds and milliseconds
var timeOfDayRe = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2})(?:\.(\d{3}))?)?$`)

// ParseTimeOfDay parses "HH:mm", "HH:mm:ss" or "HH:mm:ss.SSS"
// It returns a complete value or an error, never a partial parse.
// "24:00" is accepted as the end-of-day sentinel
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRe.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("timefilter: malformed time of day %q", s)
	}
	atoi := func(s string) int {
		if s == "" {
			return 0
		}
		n, _ := strconv.Atoi(s) // regexp guarantees digits
		return n
	}
	t := TimeOfDay{
		Hour:        atoi(m[1]),
		Minute:      atoi(m[2]),
		Second:      atoi(m[3]),
		Millisecond: atoi(m[4]),
	}
	if t.Minute > 59 || t.Second > 59 {
		return TimeOfDay{}, fmt.Errorf("timefilter: time of day %q out of range", s)
	}
	switch {
	case t.Hour < 24:
	case t.Hour == 24 && t.Minute == 0 && t.Second == 0 && t.Millisecond == 0:
		// end-of-day sentinel
	default:
		return TimeOfDay{}, fmt.Errorf("timefilter: time of day %q out of range", s)
	}
	return t, nil
}

// String renders t as HH:mm:ss.SSS trimmed to the shortest exact form
func (t TimeOfDay) String() string {
	switch {
	case t.Millisecond != 0:
		return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour, t.Minute, t.Second, t.Millisecond)
	case t.Second != 0:
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	default:
		return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	}
}
