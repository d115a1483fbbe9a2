package commission

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission - One earned sale commission. Deleting a commission affects
// future aggregation only; paystubs already generated keep their figures.
type Commission struct {
	ID          string
	DealerID    string
	EmployeeID  string
	Amount      decimal.Decimal
	Description *string
	CreatedAt   time.Time
}
