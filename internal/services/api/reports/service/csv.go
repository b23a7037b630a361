package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	perr "headcount/internal/platform/errors"
	"headcount/internal/services/api/reports/domain"
)

var csvHeader = []string{
	"space", "peak", "average",
	"total_entrances", "total_exits",
	"peak_opportunity", "average_opportunity",
}

// CSV renders the report table as a CSV export
// Opportunity cells are empty rather than zero for spaces with no target
// capacity so a spreadsheet does not mistake unknown for full
func (s *Svc) CSV(ctx context.Context, in domain.ReportInput) ([]byte, error) {
	table, err := s.Table(ctx, in)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "reports csv write failed")
	}
	for _, row := range table.Rows {
		rec := []string{
			row.Name,
			strconv.Itoa(row.Peak),
			strconv.FormatFloat(row.Average, 'f', 2, 64),
			strconv.Itoa(row.TotalEntrances),
			strconv.Itoa(row.TotalExits),
			"",
			"",
		}
		if row.PeakOpportunity != nil {
			rec[5] = strconv.Itoa(*row.PeakOpportunity)
		}
		if row.AverageOpportunity != nil {
			rec[6] = strconv.FormatFloat(*row.AverageOpportunity, 'f', 2, 64)
		}
		if err := w.Write(rec); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "reports csv write failed")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "reports csv flush failed")
	}
	return buf.Bytes(), nil
}
