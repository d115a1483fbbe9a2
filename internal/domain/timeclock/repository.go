package timeclock

import (
	"context"
	"time"
)

// TimeClockRepository defines data access methods for time-clock entries.
type TimeClockRepository interface {
	ListForPeriod(ctx context.Context, dealerID string, start, end time.Time) ([]Entry, error)
}
