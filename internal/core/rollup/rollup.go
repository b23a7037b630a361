package rollup

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"headcount/internal/core/classify"
	"headcount/internal/core/grain"
)

// SegmentKind discriminates the chart segment variants
type SegmentKind string

const (
	// SegmentMultipleDays plots one point per day per space
	SegmentMultipleDays SegmentKind = "multiple_days"

	// SegmentTimesOfSingleDay plots one point per time label per space for
	// one calendar day
	SegmentTimesOfSingleDay SegmentKind = "times_of_single_day"
)

// Point is one plotted value
type Point struct {
	Day   string  `json:"day"`
	Time  string  `json:"time,omitempty"`
	Value float64 `json:"value"`
}

// Series is one space's points within a segment
type Series struct {
	SpaceID uuid.UUID `json:"space_id"`
	Points  []Point   `json:"points"`
}

// ChartSegment is one renderable chart section
// Day and Times are set for times-of-single-day segments, Days for
// multiple-days segments
type ChartSegment struct {
	Kind   SegmentKind `json:"kind"`
	Day    string      `json:"day,omitempty"`
	Days   []string    `json:"days,omitempty"`
	Times  []string    `json:"times,omitempty"`
	Series []Series    `json:"series"`
}

// ChartData is the full chart-ready aggregate
// YearStartDates and MonthStartDates hold the first plotted day of each year
// and month in first-encounter order; the renderer uses them purely to place
// axis labels
type ChartData struct {
	Segments        []ChartSegment `json:"segments"`
	MinMetricValue  float64        `json:"min_metric_value"`
	MaxMetricValue  float64        `json:"max_metric_value"`
	YearStartDates  []string       `json:"year_start_dates"`
	MonthStartDates []string       `json:"month_start_dates"`
}

// foldKind is the per-metric roll-up rule
type foldKind uint8

const (
	foldSum foldKind = iota
	foldMax
	foldMin
)

// metricFold returns the roll-up rule and value extractor for m
// The extractor's boolean is false when the event carries no value for the
// metric (missing target data), which excludes it rather than guessing zero
func metricFold(m Metric) (foldKind, func(classify.Metrics) (float64, bool), error) {
	switch m {
	case MetricMax:
		return foldMax, func(mt classify.Metrics) (float64, bool) { return float64(mt.Max), true }, nil
	case MetricUtilization:
		return foldMax, func(mt classify.Metrics) (float64, bool) {
			if mt.TargetUtilization == nil {
				return 0, false
			}
			return *mt.TargetUtilization, true
		}, nil
	case MetricOpportunity:
		return foldMin, func(mt classify.Metrics) (float64, bool) {
			if mt.TargetCapacity == nil {
				return 0, false
			}
			return float64(*mt.TargetCapacity - mt.Max), true
		}, nil
	case MetricEntrances:
		return foldSum, func(mt classify.Metrics) (float64, bool) { return float64(mt.Entrances), true }, nil
	case MetricExits:
		return foldSum, func(mt classify.Metrics) (float64, bool) { return float64(mt.Exits), true }, nil
	case MetricEvents:
		return foldSum, func(mt classify.Metrics) (float64, bool) { return float64(mt.Events), true }, nil
	default:
		return 0, nil, fmt.Errorf("rollup: unknown metric %v", m)
	}
}

// acc accumulates one group's values under a fold rule
type acc struct {
	kind  foldKind
	value float64
	seen  bool
}

func (a *acc) add(v float64) {
	if !a.seen {
		a.value, a.seen = v, true
		return
	}
	switch a.kind {
	case foldSum:
		a.value += v
	case foldMax:
		if v > a.value {
			a.value = v
		}
	case foldMin:
		if v < a.value {
			a.value = v
		}
	}
}

// groupKey identifies one chart bucket
type groupKey struct {
	day   string
	space uuid.UUID
	time  string
}

// Aggregate rolls classified datapoints up into chart-ready structures
// Day-or-longer grains produce a single multiple-days segment grouped by
// space and bucket day; sub-daily grains produce one times-of-single-day
// segment per bucket day. Hidden spaces are excluded before aggregation.
// Output ordering is fully deterministic and independent of input order
func Aggregate(
	points []classify.Datapoint,
	g grain.Grain,
	m Metric,
	hidden map[uuid.UUID]bool,
) (ChartData, error) {
	kind, extract, err := metricFold(m)
	if err != nil {
		return ChartData{}, err
	}

	groups := make(map[groupKey]*acc)
	for _, dp := range points {
		if hidden[dp.SpaceID] {
			continue
		}
		v, ok := extract(dp.Metrics)
		if !ok {
			continue
		}
		key := groupKey{day: dp.BucketDay, space: dp.SpaceID}
		if g.SubDaily() {
			key.time = dp.BucketTime
		}
		a, ok := groups[key]
		if !ok {
			a = &acc{kind: kind}
			groups[key] = a
		}
		a.add(v)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		if keys[i].space != keys[j].space {
			return keys[i].space.String() < keys[j].space.String()
		}
		return keys[i].time < keys[j].time
	})

	out := ChartData{}
	track := newExtents()
	for _, k := range keys {
		track.observe(k.day, groups[k].value)
	}
	out.MinMetricValue, out.MaxMetricValue = track.min, track.max
	out.YearStartDates, out.MonthStartDates = track.years, track.months

	if len(keys) == 0 {
		return out, nil
	}

	if g.SubDaily() {
		out.Segments = buildSingleDaySegments(keys, groups)
	} else {
		out.Segments = []ChartSegment{buildMultiDaySegment(keys, groups)}
	}
	return out, nil
}

// buildMultiDaySegment folds all (space, day) groups into one segment
func buildMultiDaySegment(keys []groupKey, groups map[groupKey]*acc) ChartSegment {
	seg := ChartSegment{Kind: SegmentMultipleDays}
	daySeen := map[string]bool{}
	bySpace := map[uuid.UUID][]Point{}
	var spaceOrder []uuid.UUID
	for _, k := range keys {
		if !daySeen[k.day] {
			daySeen[k.day] = true
			seg.Days = append(seg.Days, k.day)
		}
		if _, ok := bySpace[k.space]; !ok {
			spaceOrder = append(spaceOrder, k.space)
		}
		bySpace[k.space] = append(bySpace[k.space], Point{Day: k.day, Value: groups[k].value})
	}
	sort.Slice(spaceOrder, func(i, j int) bool { return spaceOrder[i].String() < spaceOrder[j].String() })
	for _, id := range spaceOrder {
		pts := bySpace[id]
		sort.Slice(pts, func(i, j int) bool { return pts[i].Day < pts[j].Day })
		seg.Series = append(seg.Series, Series{SpaceID: id, Points: pts})
	}
	return seg
}

// buildSingleDaySegments emits one segment per bucket day with per-space
// series across that day's sorted time labels
func buildSingleDaySegments(keys []groupKey, groups map[groupKey]*acc) []ChartSegment {
	var segs []ChartSegment
	byDay := map[string][]groupKey{}
	var dayOrder []string
	for _, k := range keys {
		if _, ok := byDay[k.day]; !ok {
			dayOrder = append(dayOrder, k.day)
		}
		byDay[k.day] = append(byDay[k.day], k)
	}
	sort.Strings(dayOrder)

	for _, day := range dayOrder {
		seg := ChartSegment{Kind: SegmentTimesOfSingleDay, Day: day}
		timeSeen := map[string]bool{}
		bySpace := map[uuid.UUID][]Point{}
		var spaceOrder []uuid.UUID
		for _, k := range byDay[day] {
			if !timeSeen[k.time] {
				timeSeen[k.time] = true
				seg.Times = append(seg.Times, k.time)
			}
			if _, ok := bySpace[k.space]; !ok {
				spaceOrder = append(spaceOrder, k.space)
			}
			bySpace[k.space] = append(bySpace[k.space], Point{Day: day, Time: k.time, Value: groups[k].value})
		}
		sort.Strings(seg.Times)
		sort.Slice(spaceOrder, func(i, j int) bool { return spaceOrder[i].String() < spaceOrder[j].String() })
		for _, id := range spaceOrder {
			pts := bySpace[id]
			sort.Slice(pts, func(i, j int) bool { return pts[i].Time < pts[j].Time })
			seg.Series = append(seg.Series, Series{SpaceID: id, Points: pts})
		}
		segs = append(segs, seg)
	}
	return segs
}

// extents tracks the value axis range and calendar label anchor days
type extents struct {
	min, max  float64
	any       bool
	years     []string
	months    []string
	yearSeen  map[string]bool
	monthSeen map[string]bool
}

func newExtents() *extents {
	return &extents{yearSeen: map[string]bool{}, monthSeen: map[string]bool{}}
}

// observe folds one plotted value and its day into the running extents
// Days arrive sorted, so first encounter per year or month is the earliest
// plotted day of that year or month
func (e *extents) observe(day string, v float64) {
	if !e.any {
		e.min, e.max, e.any = v, v, true
	} else {
		if v < e.min {
			e.min = v
		}
		if v > e.max {
			e.max = v
		}
	}
	year, month := day[:4], day[:7]
	if !e.yearSeen[year] {
		e.yearSeen[year] = true
		e.years = append(e.years, day)
	}
	if !e.monthSeen[month] {
		e.monthSeen[month] = true
		e.months = append(e.months, day)
	}
}
