// Package service contains report workflows
// A report run resolves its spaces and zones, realizes the symbolic date
// range per zone, splits the range on offset transitions, fetches raw counts
// for each clean subrange, classifies every event against the time filter,
// and rolls the surviving datapoints up into chart or table form
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"headcount/internal/adapters/counts"
	"headcount/internal/core/classify"
	"headcount/internal/core/daterange"
	"headcount/internal/core/grain"
	"headcount/internal/core/rollup"
	"headcount/internal/core/timefilter"
	"headcount/internal/core/zonespan"
	perr "headcount/internal/platform/errors"
	ptime "headcount/internal/platform/time"
	"headcount/internal/services/api/reports/domain"
	spacesdom "headcount/internal/services/api/spaces/domain"
)

// CountsPort is the surface the report engine needs from the counts adapter
type CountsPort interface {
	Counts(ctx context.Context, q counts.CountsQuery) ([]classify.RawCountEvent, error)
	MetricsSummary(ctx context.Context, q counts.SummaryQuery) (map[uuid.UUID]counts.SpaceSummary, error)
}

// Service defines the reports service contract
type Service interface {
	domain.ServicePort
}

// Options configures the reports service
type Options struct {
	Counts CountsPort
	Spaces spacesdom.ServicePort

	// WeekStart is the organization default when a request does not set one
	WeekStart time.Weekday

	// Now is an injectable clock for relative ranges and forward-date checks
	Now func() time.Time
}

// Svc implements the reports service
type Svc struct {
	counts    CountsPort
	spaces    spacesdom.ServicePort
	weekStart time.Weekday
	now       func() time.Time
	palette   domain.Palette
}

// New constructs a reports service
func New(opt Options) *Svc {
	if opt.Counts == nil {
		panic("reports.Service requires a non nil CountsPort")
	}
	if opt.Spaces == nil {
		panic("reports.Service requires a non nil spaces ServicePort")
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Svc{
		counts:    opt.Counts,
		spaces:    opt.Spaces,
		weekStart: opt.WeekStart,
		now:       opt.Now,
		palette:   domain.DefaultPalette(),
	}
}

// maxSpacesPerReport matches the space_ids bound on the wire input
const maxSpacesPerReport = 100

// query is a fully parsed report request
type query struct {
	rng       daterange.Range
	filter    timefilter.Filter
	g         grain.Grain
	metric    rollup.Metric
	spaceIDs  []uuid.UUID
	hidden    map[uuid.UUID]bool
	weekStart time.Weekday
}

// parse validates and resolves the wire input into engine types
// Space id bounds are enforced here as well as at the bind layer so every
// transport into the service carries the same contract
func (s *Svc) parse(in domain.ReportInput) (query, error) {
	if len(in.SpaceIDs) == 0 {
		return query{}, perr.Newf(perr.ErrorCodeValidation, "reports requires at least one space id")
	}
	if len(in.SpaceIDs) > maxSpacesPerReport {
		return query{}, perr.Newf(perr.ErrorCodeValidation, "reports allows at most %d space ids", maxSpacesPerReport)
	}
	kind, err := daterange.ParseKind(in.Range)
	if err != nil {
		return query{}, perr.Wrapf(err, perr.ErrorCodeValidation, "reports bad range kind")
	}
	rng := daterange.Range{Kind: kind}
	if kind == daterange.Absolute {
		if in.StartDate == "" || in.EndDate == "" {
			return query{}, perr.Newf(perr.ErrorCodeValidation, "reports absolute range requires start_date and end_date")
		}
		if rng.Start, err = daterange.ParseDate(in.StartDate); err != nil {
			return query{}, perr.Wrapf(err, perr.ErrorCodeValidation, "reports bad start_date")
		}
		if rng.End, err = daterange.ParseDate(in.EndDate); err != nil {
			return query{}, perr.Wrapf(err, perr.ErrorCodeValidation, "reports bad end_date")
		}
	}

	g, err := grain.Parse(in.Interval)
	if err != nil {
		return query{}, perr.Wrapf(err, perr.ErrorCodeValidation, "reports bad interval")
	}

	filter, err := timefilter.Parse(in.TimeFilter)
	if err != nil {
		return query{}, perr.Wrapf(err, perr.ErrorCodeValidation, "reports bad time_filter")
	}
	if len(filter) == 0 {
		filter = timefilter.FullDay
	}
	filter = filter.Snap(g)

	metric := rollup.MetricMax
	if in.Metric != "" {
		if metric, err = rollup.ParseMetric(in.Metric); err != nil {
			return query{}, perr.Wrapf(err, perr.ErrorCodeValidation, "reports bad metric")
		}
	}

	weekStart := s.weekStart
	if in.WeekStart != "" {
		if weekStart, err = parseWeekday(in.WeekStart); err != nil {
			return query{}, perr.Wrapf(err, perr.ErrorCodeValidation, "reports bad week_start")
		}
	}

	hidden := make(map[uuid.UUID]bool, len(in.HiddenSpaceIDs))
	for _, id := range in.HiddenSpaceIDs {
		hidden[id] = true
	}

	return query{
		rng:       rng,
		filter:    filter,
		g:         g,
		metric:    metric,
		spaceIDs:  in.SpaceIDs,
		hidden:    hidden,
		weekStart: weekStart,
	}, nil
}

// collect fetches and classifies every datapoint the query covers
// Spaces sharing a zone are fetched together since their civil subranges are
// identical; zero-width gap subranges carry no instants and are skipped
func (s *Svc) collect(ctx context.Context, q query) ([]classify.Datapoint, error) {
	zones, err := s.spaces.Zones(ctx, q.spaceIDs)
	if err != nil {
		return nil, err
	}

	groups := map[string][]uuid.UUID{}
	locs := map[string]*time.Location{}
	for _, id := range q.spaceIDs {
		loc := zones[id]
		groups[loc.String()] = append(groups[loc.String()], id)
		locs[loc.String()] = loc
	}
	zoneNames := make([]string, 0, len(groups))
	for name := range groups {
		zoneNames = append(zoneNames, name)
	}
	sort.Strings(zoneNames)

	now := s.now()
	var points []classify.Datapoint
	for _, name := range zoneNames {
		loc := locs[name]
		start, end, err := daterange.Realize(q.rng, loc, daterange.Options{Now: now, WeekStart: q.weekStart})
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "reports bad date range")
		}
		subs, err := zonespan.Split(loc, start, end, q.g, zonespan.Asc)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "reports range split failed")
		}
		for _, sub := range subs {
			if sub.Gap {
				continue
			}
			events, err := s.counts.Counts(ctx, counts.CountsQuery{
				StartTime: ptime.Civil(sub.Start, loc),
				EndTime:   ptime.Civil(sub.End, loc),
				Interval:  q.g,
				SpaceIDs:  groups[name],
			})
			if err != nil {
				return nil, err
			}
			for _, ev := range events {
				dp, ok, err := s.classify(ev, loc, q, now)
				if err != nil {
					return nil, err
				}
				if ok {
					points = append(points, dp)
				}
			}
		}
	}
	return points, nil
}

// classify tests ev against each filter segment until one claims it
func (s *Svc) classify(
	ev classify.RawCountEvent,
	loc *time.Location,
	q query,
	now time.Time,
) (classify.Datapoint, bool, error) {
	for _, seg := range q.filter {
		dp, ok, err := classify.Classify(ev, loc, seg, q.g, now)
		if err != nil {
			return classify.Datapoint{}, false, err
		}
		if ok {
			return dp, true, nil
		}
	}
	return classify.Datapoint{}, false, nil
}

// Chart runs the full pipeline and returns chart-ready data with colors
func (s *Svc) Chart(ctx context.Context, in domain.ReportInput) (domain.ChartOutput, error) {
	q, err := s.parse(in)
	if err != nil {
		return domain.ChartOutput{}, err
	}
	points, err := s.collect(ctx, q)
	if err != nil {
		return domain.ChartOutput{}, err
	}
	data, err := rollup.Aggregate(points, q.g, q.metric, q.hidden)
	if err != nil {
		return domain.ChartOutput{}, perr.Wrapf(err, perr.ErrorCodeValidation, "reports aggregate failed")
	}

	visible := make([]uuid.UUID, 0, len(q.spaceIDs))
	for _, id := range q.spaceIDs {
		if !q.hidden[id] {
			visible = append(visible, id)
		}
	}
	return domain.ChartOutput{Chart: data, Colors: s.palette.Assign(visible)}, nil
}

// Table runs the pipeline and summarizes per space across the whole range
func (s *Svc) Table(ctx context.Context, in domain.ReportInput) (domain.TableOutput, error) {
	q, err := s.parse(in)
	if err != nil {
		return domain.TableOutput{}, err
	}
	points, err := s.collect(ctx, q)
	if err != nil {
		return domain.TableOutput{}, err
	}
	caps, err := s.spaces.Capacities(ctx, q.spaceIDs)
	if err != nil {
		return domain.TableOutput{}, err
	}
	names, err := s.spaceNames(ctx, q.spaceIDs)
	if err != nil {
		return domain.TableOutput{}, err
	}

	rows := rollup.Summarize(points, q.hidden, caps)
	out := domain.TableOutput{Rows: make([]domain.TableRow, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, domain.TableRow{Name: names[row.SpaceID], SummaryRow: row})
	}
	return out, nil
}

// Metrics proxies the upstream summary endpoint with the serialized filter
// Relative ranges are realized in the first requested space's zone; the
// upstream reinterprets the civil instants in each space's own zone
func (s *Svc) Metrics(ctx context.Context, in domain.ReportInput) (domain.MetricsOutput, error) {
	q, err := s.parse(in)
	if err != nil {
		return domain.MetricsOutput{}, err
	}
	zones, err := s.spaces.Zones(ctx, q.spaceIDs)
	if err != nil {
		return domain.MetricsOutput{}, err
	}
	loc := zones[q.spaceIDs[0]]
	start, end, err := daterange.Realize(q.rng, loc, daterange.Options{Now: s.now(), WeekStart: q.weekStart})
	if err != nil {
		return domain.MetricsOutput{}, perr.Wrapf(err, perr.ErrorCodeValidation, "reports bad date range")
	}

	sums, err := s.counts.MetricsSummary(ctx, counts.SummaryQuery{
		CountsQuery: counts.CountsQuery{
			StartTime: ptime.Civil(start, loc),
			EndTime:   ptime.Civil(end, loc),
			Interval:  q.g,
			SpaceIDs:  q.spaceIDs,
		},
		TimeFilters: q.filter.Serialize(),
	})
	if err != nil {
		return domain.MetricsOutput{}, err
	}

	out := domain.MetricsOutput{Metrics: make(map[uuid.UUID]domain.SpaceMetrics, len(sums))}
	for id, sum := range sums {
		if q.hidden[id] {
			continue
		}
		out.Metrics[id] = domain.SpaceMetrics{
			Peak:           sum.Peak,
			Average:        sum.Average,
			TotalEntrances: sum.TotalEntrances,
			TotalExits:     sum.TotalExits,
			Utilization:    sum.Utilization,
		}
	}
	return out, nil
}

func (s *Svc) spaceNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	list, err := s.spaces.List(ctx, spacesdom.ListInput{SpaceIDs: ids})
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(list))
	for _, sp := range list {
		out[sp.ID] = sp.Name
	}
	return out, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, perr.Newf(perr.ErrorCodeValidation, "reports unknown weekday %q", s)
}
