// Package http provides http transport for reports
package http

import (
	stdhttp "net/http"

	"headcount/internal/modkit/httpkit"
	"headcount/internal/services/api/reports/domain"
	svc "headcount/internal/services/api/reports/service"
)

// Register mounts report endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// chart-ready rollup
	httpkit.PostJSON[domain.ReportInput](r, "/chart", h.chart)

	// per-space summary table
	httpkit.PostJSON[domain.ReportInput](r, "/table", h.table)

	// upstream metrics proxy
	httpkit.PostJSON[domain.ReportInput](r, "/metrics", h.metrics)

	// csv export writes raw bytes, not the JSON envelope
	r.Post("/csv", h.csv)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /reports/chart Reports reportsChart
// @Summary Chart-ready report rollup
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.ReportInput true "Report query"
// @Success 200 {object} domain.ChartOutput "ok"
// @Router /reports/chart [post]
func (h *handlers) chart(r *stdhttp.Request, in domain.ReportInput) (any, error) {
	return h.svc.Chart(r.Context(), in)
}

// swagger:route POST /reports/table Reports reportsTable
// @Summary Per-space report summary table
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.ReportInput true "Report query"
// @Success 200 {object} domain.TableOutput "ok"
// @Router /reports/table [post]
func (h *handlers) table(r *stdhttp.Request, in domain.ReportInput) (any, error) {
	return h.svc.Table(r.Context(), in)
}

// swagger:route POST /reports/metrics Reports reportsMetrics
// @Summary Upstream metrics summary proxy
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.ReportInput true "Report query"
// @Success 200 {object} domain.MetricsOutput "ok"
// @Router /reports/metrics [post]
func (h *handlers) metrics(r *stdhttp.Request, in domain.ReportInput) (any, error) {
	return h.svc.Metrics(r.Context(), in)
}

// swagger:route POST /reports/csv Reports reportsCSV
// @Summary Report table as CSV
// @Tags Reports
// @Accept json
// @Produce text/csv
// @Param payload body domain.ReportInput true "Report query"
// @Success 200 {string} string "csv"
// @Router /reports/csv [post]
func (h *handlers) csv(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := httpkit.Bind[domain.ReportInput](r)
	if err != nil {
		httpkit.Handle(func(*stdhttp.Request) httpkit.Response { return httpkit.Error(err) })(w, r)
		return
	}
	out, err := h.svc.CSV(r.Context(), in)
	if err != nil {
		httpkit.Handle(func(*stdhttp.Request) httpkit.Response { return httpkit.Error(err) })(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write(out)
}
