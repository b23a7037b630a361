// Package rollup groups classified datapoints into chart and table structures
// The engine is pure: same inputs give byte-identical outputs regardless of
// the order events arrive in, which keeps re-renders and CSV exports stable
package rollup

import "fmt"

// Metric selects which analytics value a report rolls up
type Metric uint8

const (
	// MetricMax is peak occupancy per bucket
	MetricMax Metric = iota

	// MetricUtilization is occupancy relative to target capacity
	MetricUtilization

	// MetricOpportunity is spare capacity per bucket
	MetricOpportunity

	// MetricEntrances counts people entering
	MetricEntrances

	// MetricExits counts people leaving
	MetricExits

	// MetricEvents counts raw sensor events
	MetricEvents
)

// ParseMetric maps a wire value to its Metric
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "max":
		return MetricMax, nil
	case "utilization":
		return MetricUtilization, nil
	case "opportunity":
		return MetricOpportunity, nil
	case "entrances":
		return MetricEntrances, nil
	case "exits":
		return MetricExits, nil
	case "events":
		return MetricEvents, nil
	default:
		return 0, fmt.Errorf("rollup: unknown metric %q", s)
	}
}

// String returns the wire value for m
func (m Metric) String() string {
	switch m {
	case MetricMax:
		return "max"
	case MetricUtilization:
		return "utilization"
	case MetricOpportunity:
		return "opportunity"
	case MetricEntrances:
		return "entrances"
	case MetricExits:
		return "exits"
	case MetricEvents:
		return "events"
	default:
		return fmt.Sprintf("metric(%d)", uint8(m))
	}
}
