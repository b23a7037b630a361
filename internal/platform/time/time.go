// Package time contains time related helpers
package time

import "time"

// LayoutCivil is an offset-free local timestamp, the form the upstream
// counts API expects when it reinterprets instants per space zone
const LayoutCivil = "2006-01-02T15:04:05"

// Civil renders t in loc as an offset-free local timestamp
func Civil(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LayoutCivil)
}

// ParseCivil parses an offset-free local timestamp in loc
func ParseCivil(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(LayoutCivil, s, loc)
}

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
