package timefilter

import (
	"fmt"
	"strings"

	"headcount/internal/core/grain"
)

// Segment is one time-of-day window applied on a set of weekdays
// An overnight segment (end before start) spans midnight and belongs to the
// start day; Days must be non-empty for the segment to match anything
type Segment struct {
	Start TimeOfDay  `json:"start"`
	End   TimeOfDay  `json:"end"`
	Days  WeekdaySet `json:"days"`
}

// Overnight reports whether the segment wraps past midnight
func (s Segment) Overnight() bool { return s.End.Millis() < s.Start.Millis() }

// Filter is an ordered list of segments
// The current report UI only ever builds one segment but the wire format and
// the engine accept many
type Filter []Segment

// FullDay is the identity filter: every day, midnight to midnight
var FullDay = Filter{{Start: TimeOfDay{}, End: EndOfDay, Days: EveryDay}}

// Serialize renders the filter in its query-string wire form:
// days abbreviated and joined by "+", then ":HHMM-HHMM", segments joined by
// ",". An end that normalizes to 2400 is respelled 0000 so "0000-0000" means
// a full day rather than a zero-length window
func (f Filter) Serialize() string {
	parts := make([]string, 0, len(f))
	for _, seg := range f {
		var days []string
		for _, d := range serializationOrder {
			if seg.Days.Has(d) {
				days = append(days, abbrev(d))
			}
		}
		parts = append(parts, fmt.Sprintf("%s:%s-%s",
			strings.Join(days, "+"), hhmm(seg.Start), hhmm(seg.End)))
	}
	return strings.Join(parts, ",")
}

// hhmm renders a TimeOfDay as four digits, respelling 2400 as 0000
func hhmm(t TimeOfDay) string {
	if t.Millis() == DayMillis {
		return "0000"
	}
	return fmt.Sprintf("%02d%02d", t.Hour, t.Minute)
}

// Parse is the inverse of Serialize
// An empty string yields an empty filter
func Parse(s string) (Filter, error) {
	if s == "" {
		return nil, nil
	}
	var f Filter
	for _, part := range strings.Split(s, ",") {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, err
		}
		f = append(f, seg)
	}
	return f, nil
}

func parseSegment(s string) (Segment, error) {
	daysPart, window, ok := strings.Cut(s, ":")
	if !ok {
		return Segment{}, fmt.Errorf("timefilter: malformed segment %q", s)
	}
	var days WeekdaySet
	for _, a := range strings.Split(daysPart, "+") {
		d, err := parseAbbrev(a)
		if err != nil {
			return Segment{}, err
		}
		days = days.With(d)
	}
	startRaw, endRaw, ok := strings.Cut(window, "-")
	if !ok || len(startRaw) != 4 || len(endRaw) != 4 {
		return Segment{}, fmt.Errorf("timefilter: malformed window %q", window)
	}
	start, err := ParseTimeOfDay(startRaw[:2] + ":" + startRaw[2:])
	if err != nil {
		return Segment{}, err
	}
	end, err := ParseTimeOfDay(endRaw[:2] + ":" + endRaw[2:])
	if err != nil {
		return Segment{}, err
	}
	// an end of 0000 is the respelled 2400: the window runs to end of day,
	// so 0000-0000 is a full 24-hour span and 0900-0000 means 09:00-24:00
	if end.Millis() == 0 {
		end = EndOfDay
	}
	return Segment{Start: start, End: end, Days: days}, nil
}

// Snap aligns segment bounds to the query grain
// Sub-hour grains floor the start and ceil the end to the nearest multiple
// clamped to [0, DayMillis]; the hour grain rounds to whole hours; day and
// week grains pass the filter through since no finer truncation is meaningful
func (f Filter) Snap(g grain.Grain) Filter {
	if !g.SubDaily() {
		return f
	}
	step := int(g.Step().Milliseconds())
	out := make(Filter, len(f))
	for i, seg := range f {
		var start, end int
		if g.SubHourly() {
			start = seg.Start.Millis() / step * step
			end = seg.End.Millis()
			if rem := end % step; rem != 0 {
				end += step - rem
			}
		} else {
			start = roundTo(seg.Start.Millis(), step)
			end = roundTo(seg.End.Millis(), step)
		}
		if end > DayMillis {
			end = DayMillis
		}
		out[i] = Segment{Start: FromMillis(start), End: FromMillis(end), Days: seg.Days}
	}
	return out
}

// roundTo rounds ms to the nearest multiple of step, half up
func roundTo(ms, step int) int {
	return (ms + step/2) / step * step
}
