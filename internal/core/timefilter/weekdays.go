package timefilter

import (
	"fmt"
	"time"
)

// WeekdaySet is a small bitset over time.Weekday
type WeekdaySet uint8

// Days builds a WeekdaySet from the given weekdays
func Days(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// Weekdays is the full Monday through Friday set
var Weekdays = Days(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)

// Weekend is Saturday and Sunday
var Weekend = Days(time.Saturday, time.Sunday)

// EveryDay is all seven weekdays
var EveryDay = Weekdays | Weekend

// Has reports whether d is in the set
func (s WeekdaySet) Has(d time.Weekday) bool { return s&(1<<uint(d)) != 0 }

// With returns s plus d
func (s WeekdaySet) With(d time.Weekday) WeekdaySet { return s | 1<<uint(d) }

// Empty reports whether no weekday is set
func (s WeekdaySet) Empty() bool { return s == 0 }

// serializationOrder is the wire ordering of weekdays, Monday first
var serializationOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// abbrev is the three letter wire form of each weekday
func abbrev(d time.Weekday) string { return d.String()[:3] }

// parseAbbrev maps a three letter day back to its weekday
func parseAbbrev(s string) (time.Weekday, error) {
	for _, d := range serializationOrder {
		if abbrev(d) == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("timefilter: unknown weekday %q", s)
}
