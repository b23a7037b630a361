package module

import (
	"time"

	"headcount/internal/platform/config"
)

// Options controls report behavior and upstream counts client settings
type Options struct {
	// WeekStart is the organization default week start day name
	WeekStart string

	// Upstream counts client
	BaseURL    string
	Token      string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration
	PageSize   int
}

// FromConfig reads REPORTS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("REPORTS_")
	return Options{
		WeekStart:  rc.MayString("WEEK_START", "Sunday"),
		BaseURL:    rc.MustString("COUNTS_BASE_URL"),
		Token:      rc.MayString("COUNTS_TOKEN", ""),
		UserAgent:  rc.MayString("COUNTS_UA", "headcount-api"),
		Timeout:    rc.MayDuration("COUNTS_TIMEOUT", 10*time.Second),
		MaxRetries: rc.MayInt("COUNTS_MAX_RETRIES", 5),
		RetryBase:  rc.MayDuration("COUNTS_RETRY_BASE", 500*time.Millisecond),
		PageSize:   rc.MayInt("COUNTS_PAGE_SIZE", 5000),
	}
}
