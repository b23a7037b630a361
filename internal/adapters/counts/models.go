package counts

import (
	"time"

	"github.com/google/uuid"

	"headcount/internal/core/classify"
	"headcount/internal/core/grain"
)

// CountsQuery describes one counts request
// StartTime and EndTime are civil-time strings without a UTC offset; the
// upstream interprets them in each requested space's local zone
type CountsQuery struct {
	StartTime string
	EndTime   string
	Interval  grain.Grain
	SpaceIDs  []uuid.UUID
}

// SummaryQuery adds the serialized time filter for the metrics summary call
type SummaryQuery struct {
	CountsQuery
	TimeFilters string
}

// SpaceSummary is one space's upstream metrics summary
type SpaceSummary struct {
	Peak           int      `json:"peak"`
	Average        float64  `json:"average"`
	TotalEntrances int      `json:"total_entrances"`
	TotalExits     int      `json:"total_exits"`
	Utilization    *float64 `json:"utilization,omitempty"`
}

// wire shapes

// countsPage is one page of the counts response
// Results maps space id to its bucket list; Next is the absolute URL of the
// following page or null on the last one
type countsPage struct {
	Results map[string][]wireBucket `json:"results"`
	Next    *string                 `json:"next"`
}

type wireBucket struct {
	Timestamp time.Time    `json:"timestamp"`
	Interval  wireInterval `json:"interval"`
}

type wireInterval struct {
	Start     string        `json:"start"`
	End       string        `json:"end"`
	Analytics wireAnalytics `json:"analytics"`
}

type wireAnalytics struct {
	Max               int      `json:"max"`
	Min               int      `json:"min"`
	Entrances         int      `json:"entrances"`
	Exits             int      `json:"exits"`
	Events            int      `json:"events"`
	Utilization       *float64 `json:"utilization,omitempty"`
	TargetUtilization *float64 `json:"target_utilization,omitempty"`
	TargetCapacity    *int     `json:"target_capacity,omitempty"`
}

type summaryPage struct {
	Metrics map[string]SpaceSummary `json:"metrics"`
}

// toEvent converts a wire bucket for one space into the engine's event type
func (b wireBucket) toEvent(space uuid.UUID) classify.RawCountEvent {
	return classify.RawCountEvent{
		SpaceID:   space,
		Timestamp: b.Timestamp,
		Metrics: classify.Metrics{
			Max:               b.Interval.Analytics.Max,
			Min:               b.Interval.Analytics.Min,
			Entrances:         b.Interval.Analytics.Entrances,
			Exits:             b.Interval.Analytics.Exits,
			Events:            b.Interval.Analytics.Events,
			Utilization:       b.Interval.Analytics.Utilization,
			TargetUtilization: b.Interval.Analytics.TargetUtilization,
			TargetCapacity:    b.Interval.Analytics.TargetCapacity,
		},
	}
}
