// Package domain holds report DTOs and contracts
package domain

import (
	"github.com/google/uuid"

	"headcount/internal/core/rollup"
)

// ReportInput describes one report query
// Range is a symbolic kind; StartDate and EndDate are only read when Range is
// absolute. TimeFilter uses the serialized wire form and an empty string means
// the full day on every weekday
type ReportInput struct {
	Range     string `json:"range" validate:"required,oneof=absolute week_to_date last_7_days last_week" example:"last_7_days"`
	StartDate string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2019-01-01"`
	EndDate   string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2019-02-01"`

	TimeFilter string `json:"time_filter,omitempty" example:"Mon+Tue+Wed+Thu+Fri:0930-1830"`
	Interval   string `json:"interval" validate:"required,oneof=5m 15m 1h 1d 1w" example:"1h"`
	Metric     string `json:"metric,omitempty" validate:"omitempty,oneof=max utilization opportunity entrances exits events" example:"max"`

	SpaceIDs       []uuid.UUID `json:"space_ids" validate:"required,min=1,max=100"`
	HiddenSpaceIDs []uuid.UUID `json:"hidden_space_ids,omitempty" validate:"omitempty,max=100"`

	// WeekStart overrides the organization default week start day
	WeekStart string `json:"week_start,omitempty" validate:"omitempty,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday" example:"Monday"`
}

// ChartOutput is the chart-ready report payload
type ChartOutput struct {
	Chart  rollup.ChartData     `json:"chart"`
	Colors map[uuid.UUID]string `json:"colors"`
}

// TableRow is one space's summary line with its display name attached
type TableRow struct {
	Name string `json:"name" example:"Cafeteria"`
	rollup.SummaryRow
}

// TableOutput is the report table payload
type TableOutput struct {
	Rows []TableRow `json:"rows"`
}

// SpaceMetrics is one space's upstream-computed summary
type SpaceMetrics struct {
	Peak           int      `json:"peak" example:"30"`
	Average        float64  `json:"average" example:"12.5"`
	TotalEntrances int      `json:"total_entrances" example:"100"`
	TotalExits     int      `json:"total_exits" example:"98"`
	Utilization    *float64 `json:"utilization,omitempty"`
}

// MetricsOutput is the proxied upstream summary payload
type MetricsOutput struct {
	Metrics map[uuid.UUID]SpaceMetrics `json:"metrics"`
}
