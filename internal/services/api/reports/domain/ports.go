package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Chart(ctx context.Context, in ReportInput) (ChartOutput, error)
	Table(ctx context.Context, in ReportInput) (TableOutput, error)
	CSV(ctx context.Context, in ReportInput) ([]byte, error)
	Metrics(ctx context.Context, in ReportInput) (MetricsOutput, error)
}
