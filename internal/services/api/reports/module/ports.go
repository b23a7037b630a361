package module

import (
	"context"

	"headcount/internal/services/api/reports/domain"
	reportssvc "headcount/internal/services/api/reports/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptReportsPort struct{ svc reportssvc.Service }

// Chart runs the full report pipeline and returns chart-ready data
func (a adaptReportsPort) Chart(ctx context.Context, in domain.ReportInput) (domain.ChartOutput, error) {
	return a.svc.Chart(ctx, in)
}

// Table runs the pipeline and summarizes per space
func (a adaptReportsPort) Table(ctx context.Context, in domain.ReportInput) (domain.TableOutput, error) {
	return a.svc.Table(ctx, in)
}

// CSV renders the report table as CSV
func (a adaptReportsPort) CSV(ctx context.Context, in domain.ReportInput) ([]byte, error) {
	return a.svc.CSV(ctx, in)
}

// Metrics proxies the upstream metrics summary
func (a adaptReportsPort) Metrics(ctx context.Context, in domain.ReportInput) (domain.MetricsOutput, error) {
	return a.svc.Metrics(ctx, in)
}
