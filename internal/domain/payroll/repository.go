package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// UpdateRunTotalsRequest carries the final aggregation written after every
// per-employee paystub write has completed.
type UpdateRunTotalsRequest struct {
	ID            string
	EmployeeCount int
	SkippedCount  int
	FailedCount   int
	TotalGross    decimal.Decimal
	TotalNet      decimal.Decimal
	Status        RunStatus
}

// PayrollRepository defines data access methods for payroll.
// All methods include dealerID to prevent cross-dealer data access.
type PayrollRepository interface {
	// Settings
	GetSettings(ctx context.Context, dealerID string) (PaySettings, error)
	UpsertSettings(ctx context.Context, settings PaySettings) (PaySettings, error)

	// Runs
	CreateRun(ctx context.Context, run PayrollRun) (PayrollRun, error)
	GetRunByID(ctx context.Context, id string, dealerID string) (PayrollRun, error)
	GetRunByPeriod(ctx context.Context, dealerID string, start, end time.Time) (PayrollRun, error)
	ListRecentRuns(ctx context.Context, dealerID string, limit int) ([]PayrollRun, error)
	UpdateRunTotals(ctx context.Context, dealerID string, req UpdateRunTotalsRequest) error

	// Paystubs (immutable: create and read only)
	CreatePaystub(ctx context.Context, stub Paystub) (Paystub, error)
	GetPaystubByID(ctx context.Context, id string, dealerID string) (Paystub, error)
	ListPaystubsForEmployee(ctx context.Context, employeeID string, dealerID string) ([]Paystub, error)
	ListPaystubsForRun(ctx context.Context, runID string, dealerID string) ([]Paystub, error)
}
