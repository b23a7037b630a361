package rollup

import (
	"sort"

	"github.com/google/uuid"

	"headcount/internal/core/classify"
)

// SummaryRow is one space's lifetime-of-range aggregate for the report table
// PeakOpportunity and AverageOpportunity are nil when the space has no known
// target capacity; they are never defaulted to zero
type SummaryRow struct {
	SpaceID            uuid.UUID `json:"space_id"`
	Peak               int       `json:"peak"`
	Average            float64   `json:"average"`
	TotalEntrances     int       `json:"total_entrances"`
	TotalExits         int       `json:"total_exits"`
	PeakOpportunity    *int      `json:"peak_opportunity"`
	AverageOpportunity *float64  `json:"average_opportunity"`
}

// Summarize computes per-space peak, average and totals across the whole
// queried range, deriving spare capacity where a target capacity is known
// Hidden spaces are excluded the same way Aggregate excludes them
func Summarize(
	points []classify.Datapoint,
	hidden map[uuid.UUID]bool,
	capacities map[uuid.UUID]*int,
) []SummaryRow {
	type spaceAcc struct {
		peak      int
		sum       float64
		count     int
		entrances int
		exits     int
	}
	bySpace := map[uuid.UUID]*spaceAcc{}
	var order []uuid.UUID
	for _, dp := range points {
		if hidden[dp.SpaceID] {
			continue
		}
		a, ok := bySpace[dp.SpaceID]
		if !ok {
			a = &spaceAcc{}
			bySpace[dp.SpaceID] = a
			order = append(order, dp.SpaceID)
		}
		if dp.Metrics.Max > a.peak {
			a.peak = dp.Metrics.Max
		}
		a.sum += float64(dp.Metrics.Max)
		a.count++
		a.entrances += dp.Metrics.Entrances
		a.exits += dp.Metrics.Exits
	}
	sort.Slice(order, func(i, j int) bool { return order[i].String() < order[j].String() })

	rows := make([]SummaryRow, 0, len(order))
	for _, id := range order {
		a := bySpace[id]
		row := SummaryRow{
			SpaceID:        id,
			Peak:           a.peak,
			Average:        a.sum / float64(a.count),
			TotalEntrances: a.entrances,
			TotalExits:     a.exits,
		}
		if target, ok := capacities[id]; ok && target != nil {
			peakOpp := *target - a.peak
			avgOpp := float64(*target) - row.Average
			row.PeakOpportunity = &peakOpp
			row.AverageOpportunity = &avgOpp
		}
		rows = append(rows, row)
	}
	return rows
}
