// Package grain defines the query interval grain shared by the temporal engine
package grain

import (
	"fmt"
	"time"
)

// Grain is the bucket width a query is rolled up to
type Grain uint8

const (
	// Grain5m buckets counts into five minute intervals
	Grain5m Grain = iota

	// Grain15m buckets counts into fifteen minute intervals
	Grain15m

	// Grain1h buckets counts into one hour intervals
	Grain1h

	// Grain1d buckets counts into one local calendar day intervals
	Grain1d

	// Grain1w buckets counts into one local calendar week intervals
	Grain1w
)

// Parse maps a wire value like "15m" to its Grain
func Parse(s string) (Grain, error) {
	switch s {
	case "5m":
		return Grain5m, nil
	case "15m":
		return Grain15m, nil
	case "1h":
		return Grain1h, nil
	case "1d":
		return Grain1d, nil
	case "1w":
		return Grain1w, nil
	default:
		return 0, fmt.Errorf("grain: unknown interval %q", s)
	}
}

// String returns the wire value for g
func (g Grain) String() string {
	switch g {
	case Grain5m:
		return "5m"
	case Grain15m:
		return "15m"
	case Grain1h:
		return "1h"
	case Grain1d:
		return "1d"
	case Grain1w:
		return "1w"
	default:
		return fmt.Sprintf("grain(%d)", uint8(g))
	}
}

// Step returns the nominal instant width of one bucket
// Calendar grains return their nominal length; callers that walk civil time
// must still consult the zone for offset changes
func (g Grain) Step() time.Duration {
	switch g {
	case Grain5m:
		return 5 * time.Minute
	case Grain15m:
		return 15 * time.Minute
	case Grain1h:
		return time.Hour
	case Grain1d:
		return 24 * time.Hour
	case Grain1w:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}

// SubDaily reports whether g is finer than one day
func (g Grain) SubDaily() bool { return g == Grain5m || g == Grain15m || g == Grain1h }

// SubHourly reports whether g is finer than one hour
func (g Grain) SubHourly() bool { return g == Grain5m || g == Grain15m }
