package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayFrequency enum
type PayFrequency string

const (
	FrequencyWeekly      PayFrequency = "weekly"
	FrequencyBiWeekly    PayFrequency = "biweekly"
	FrequencySemiMonthly PayFrequency = "semimonthly"
	FrequencyMonthly     PayFrequency = "monthly"
)

func (f PayFrequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencySemiMonthly, FrequencyMonthly:
		return true
	}
	return false
}

// PeriodsPerYear returns how many pay periods the frequency produces per year.
// An unrecognized frequency is a configuration error, never a silent default.
func (f PayFrequency) PeriodsPerYear() (int64, error) {
	switch f {
	case FrequencyWeekly:
		return 52, nil
	case FrequencyBiWeekly:
		return 26, nil
	case FrequencySemiMonthly:
		return 24, nil
	case FrequencyMonthly:
		return 12, nil
	}
	return 0, ErrInvalidPayFrequency
}

// Default pay-day boundaries for semi-monthly and monthly schedules.
// PayDay2 pays the second half of the prior month, PayDay1 the first half of
// the current month.
const (
	DefaultPayDay1 = 20
	DefaultPayDay2 = 5
)

// PaySettings - Dealer-wide pay schedule config
type PaySettings struct {
	ID        string
	DealerID  string
	Frequency PayFrequency
	PayDay1   int
	PayDay2   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayPeriod is derived from PaySettings and a reference instant. It is never
// stored on its own; runs persist their resolved boundaries.
type PayPeriod struct {
	Start time.Time
	End   time.Time
}

// PayAdjustment - Per-run, per-employee override bag. It only exists during
// run composition and is folded into the resulting paystub. Bonus is taxable;
// reimbursement is not. HoursOverride, when set, replaces aggregated clock
// hours before the regular/overtime split.
type PayAdjustment struct {
	Bonus         decimal.Decimal
	Reimbursement decimal.Decimal
	HoursOverride *decimal.Decimal
}

// RunStatus enum
type RunStatus string

const (
	RunStatusProcessing RunStatus = "processing"
	RunStatusFinalized  RunStatus = "finalized"
	RunStatusPartial    RunStatus = "partial"
)

// PayrollRun - One executed payroll cycle
type PayrollRun struct {
	ID            string
	DealerID      string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	PayDate       time.Time
	EmployeeCount int
	SkippedCount  int
	FailedCount   int
	TotalGross    decimal.Decimal
	TotalNet      decimal.Decimal
	Status        RunStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaystubStatus enum
type PaystubStatus string

const PaystubStatusIssued PaystubStatus = "issued"

// Paystub - One employee's result for a run. Immutable after creation;
// corrections require a new adjustment on a later run, not an edit.
type Paystub struct {
	ID                  string
	RunID               string
	DealerID            string
	EmployeeID          string
	RegularHours        decimal.Decimal
	OvertimeHours       decimal.Decimal
	HourlyRate          decimal.Decimal
	SalaryAmount        decimal.Decimal
	CommissionAmount    decimal.Decimal
	BonusAmount         decimal.Decimal
	ReimbursementAmount decimal.Decimal
	GrossPay            decimal.Decimal
	FederalTax          decimal.Decimal
	StateTax            decimal.Decimal
	SocialSecurity      decimal.Decimal
	Medicare            decimal.Decimal
	NetPay              decimal.Decimal
	Status              PaystubStatus
	CreatedAt           time.Time

	// Joined fields
	EmployeeName *string
}

// RunResult - Summary returned to the caller after a run completes.
type RunResult struct {
	RunID             string
	Generated         int
	Skipped           int
	FailedEmployeeIDs []string
	TotalGross        decimal.Decimal
	TotalNet          decimal.Decimal
	Status            RunStatus
}
