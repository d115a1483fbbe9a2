package timeoff

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TimeOffRepository defines data access methods for time-off requests.
type TimeOffRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string, dealerID string) (Request, error)
	ListForEmployee(ctx context.Context, employeeID string, dealerID string) ([]Request, error)
	ListForDealer(ctx context.Context, dealerID string) ([]Request, error)

	// UpdateStatusIfPending transitions the request out of pending with a
	// compare-and-swap on status. Returns false when the request was already
	// decided, so concurrent approvals cannot double-apply.
	UpdateStatusIfPending(ctx context.Context, id string, dealerID string, status Status, decidedBy string, decidedAt time.Time) (bool, error)

	// ApprovePTO performs the status compare-and-swap and the pto_used
	// increment in one transaction. Returns false without mutating the
	// balance when the request was already decided.
	ApprovePTO(ctx context.Context, id string, dealerID string, employeeID string, days decimal.Decimal, decidedBy string, decidedAt time.Time) (bool, error)
}
