package commission

import (
	"context"
	"time"
)

// CommissionRepository defines data access methods for commissions.
type CommissionRepository interface {
	ListForPeriod(ctx context.Context, dealerID string, start, end time.Time) ([]Commission, error)
	Delete(ctx context.Context, id string, dealerID string) error
}
