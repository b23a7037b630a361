// Package classify turns raw UTC count events into filter-tested, bucket-keyed datapoints
// Classification is where the overnight window semantics live: an event at
// 01:00 Saturday under a Friday 22:00-02:00 window is tested and bucketed as
// part of Friday, and its bucket time label is pushed past 24:00 so it sorts
// after Friday's late evening instead of before it
package classify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"headcount/internal/core/grain"
	"headcount/internal/core/timefilter"
)

// Metrics are the per-bucket analytics reported upstream for one space
// Utilization, TargetUtilization and TargetCapacity are only present for
// spaces with a configured target and must stay nil when unknown
type Metrics struct {
	Max               int      `json:"max"`
	Min               int      `json:"min"`
	Entrances         int      `json:"entrances"`
	Exits             int      `json:"exits"`
	Events            int      `json:"events"`
	Utilization       *float64 `json:"utilization,omitempty"`
	TargetUtilization *float64 `json:"target_utilization,omitempty"`
	TargetCapacity    *int     `json:"target_capacity,omitempty"`
}

// RawCountEvent is one upstream count bucket for one space, timestamped in UTC
type RawCountEvent struct {
	SpaceID   uuid.UUID `json:"space_id"`
	Timestamp time.Time `json:"timestamp"`
	Metrics   Metrics   `json:"metrics"`
}

// Datapoint is a RawCountEvent enriched with local-time and bucket keys
// LocalDay and LocalTime are the literal local civil day and time. BucketDay
// may be one calendar day earlier for overnight windows and BucketTime is the
// grain-truncated label, with hours 24 and up for times wrapped past midnight
type Datapoint struct {
	RawCountEvent

	LocalDay   string `json:"local_day"`   // YYYY-MM-DD
	LocalTime  string `json:"local_time"`  // HH:mm
	BucketDay  string `json:"bucket_day"`  // YYYY-MM-DD
	BucketTime string `json:"bucket_time"` // HH:mm, hour may exceed 24
}

// Classify tests ev against the active segment and computes its bucket keys
// The boolean is false when the event is excluded: forward-dated, outside the
// time-of-day window, or on a weekday the segment does not cover. loc must be
// the space's zone; resolving it is the caller's job and failing to resolve
// it is the caller's error, never a silent default here
func Classify(
	ev RawCountEvent,
	loc *time.Location,
	seg timefilter.Segment,
	g grain.Grain,
	now time.Time,
) (Datapoint, bool, error) {
	if loc == nil {
		return Datapoint{}, false, fmt.Errorf("classify: nil location for space %s", ev.SpaceID)
	}

	// the upstream API occasionally returns forward-dated buckets; drop them
	if ev.Timestamp.After(now) {
		return Datapoint{}, false, nil
	}

	local := ev.Timestamp.In(loc)
	localMillis := local.Hour()*3_600_000 + local.Minute()*60_000 + local.Second()*1_000 + local.Nanosecond()/1_000_000
	startMillis := seg.Start.Millis()
	endMillis := seg.End.Millis()
	overnight := seg.Overnight()

	// time-of-day membership, with the window wrapping midnight when overnight
	if overnight {
		if localMillis < startMillis && localMillis > endMillis {
			return Datapoint{}, false, nil
		}
	} else {
		if localMillis < startMillis || localMillis > endMillis {
			return Datapoint{}, false, nil
		}
	}

	// an overnight event before the window start belongs to the previous
	// day's window
	bucket := local
	wrapped := false
	if overnight && localMillis < startMillis {
		bucket = local.AddDate(0, 0, -1)
		wrapped = true
	}

	// weekday membership is tested on the bucket day so a Friday 23:00-05:00
	// window claims early Saturday mornings as Friday
	if !seg.Days.Has(bucket.Weekday()) {
		return Datapoint{}, false, nil
	}

	label, err := bucketTime(localMillis, wrapped, g)
	if err != nil {
		return Datapoint{}, false, err
	}

	return Datapoint{
		RawCountEvent: ev,
		LocalDay:      local.Format("2006-01-02"),
		LocalTime:     local.Format("15:04"),
		BucketDay:     bucket.Format("2006-01-02"),
		BucketTime:    label,
	}, true, nil
}

// bucketTime truncates a local millisecond offset to the grain and renders
// the series label, adding 24 hours for wrapped overnight times so 01:00
// sorts after 23:00 within the same bucket day
func bucketTime(localMillis int, wrapped bool, g grain.Grain) (string, error) {
	switch g {
	case grain.Grain5m, grain.Grain15m, grain.Grain1h:
		step := int(g.Step().Milliseconds())
		truncated := localMillis / step * step
		hour := truncated / 3_600_000
		minute := truncated / 60_000 % 60
		if wrapped {
			hour += 24
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), nil
	case grain.Grain1d, grain.Grain1w:
		// day buckets carry a constant label; the bucket day is the key
		return "00:00", nil
	default:
		return "", fmt.Errorf("classify: unsupported grain %v", g)
	}
}
