package timeclock

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry - One clock-in/out interval. TotalHours stays nil until the employee
// clocks out; open entries never contribute to payroll aggregation.
type Entry struct {
	ID         string
	DealerID   string
	EmployeeID string
	ClockIn    time.Time
	ClockOut   *time.Time
	TotalHours *decimal.Decimal
	CreatedAt  time.Time
}
