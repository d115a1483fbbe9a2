package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/commission"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/employee"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/payroll"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/timeclock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RunExecutor orchestrates a full payroll run: aggregation, calculation,
// withholding, paystub persistence and final run totals. Employees are
// independent units; a failed paystub write is collected and the rest of the
// run continues.
type RunExecutor struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	timeclockRepo  timeclock.TimeClockRepository
	commissionRepo commission.CommissionRepository
}

func NewRunExecutor(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	timeclockRepo timeclock.TimeClockRepository,
	commissionRepo commission.CommissionRepository,
) *RunExecutor {
	return &RunExecutor{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		timeclockRepo:  timeclockRepo,
		commissionRepo: commissionRepo,
	}
}

// Execute runs payroll for one dealer over the given period. Adjustments are
// an explicit per-employee map supplied by the caller for this run only.
//
// A run for a period that already has one is rejected outright; retrying a
// partial run requires operator review, money has already moved.
func (e *RunExecutor) Execute(
	ctx context.Context,
	dealerID string,
	period payroll.PayPeriod,
	payDate time.Time,
	frequency payroll.PayFrequency,
	adjustments map[string]payroll.PayAdjustment,
) (payroll.RunResult, error) {
	if !frequency.Valid() {
		return payroll.RunResult{}, payroll.ErrInvalidPayFrequency
	}

	// Idempotency guard on (dealer, period).
	_, err := e.payrollRepo.GetRunByPeriod(ctx, dealerID, period.Start, period.End)
	if err == nil {
		return payroll.RunResult{}, payroll.ErrRunAlreadyExists
	}
	if !errors.Is(err, payroll.ErrRunNotFound) {
		return payroll.RunResult{}, fmt.Errorf("failed to check for existing run: %w", err)
	}

	employees, err := e.employeeRepo.GetActiveByDealerID(ctx, dealerID)
	if err != nil {
		return payroll.RunResult{}, fmt.Errorf("failed to get active employees: %w", err)
	}

	entries, err := e.timeclockRepo.ListForPeriod(ctx, dealerID, period.Start, period.End)
	if err != nil {
		return payroll.RunResult{}, fmt.Errorf("failed to get time clock entries: %w", err)
	}

	commissions, err := e.commissionRepo.ListForPeriod(ctx, dealerID, period.Start, period.End)
	if err != nil {
		return payroll.RunResult{}, fmt.Errorf("failed to get commissions: %w", err)
	}

	run, err := e.payrollRepo.CreateRun(ctx, payroll.PayrollRun{
		ID:          uuid.NewString(),
		DealerID:    dealerID,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		PayDate:     payDate,
		TotalGross:  decimal.Zero,
		TotalNet:    decimal.Zero,
		Status:      payroll.RunStatusProcessing,
	})
	if err != nil {
		return payroll.RunResult{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	result := payroll.RunResult{
		RunID:      run.ID,
		TotalGross: decimal.Zero,
		TotalNet:   decimal.Zero,
	}

	for _, emp := range employees {
		stub, skipped, err := e.composePaystub(emp, run.ID, frequency, entries, commissions, adjustments[emp.ID], period)
		if err != nil {
			result.FailedEmployeeIDs = append(result.FailedEmployeeIDs, emp.ID)
			continue
		}
		if skipped {
			result.Skipped++
			continue
		}

		if _, err := e.payrollRepo.CreatePaystub(ctx, stub); err != nil {
			result.FailedEmployeeIDs = append(result.FailedEmployeeIDs, emp.ID)
			continue
		}

		result.Generated++
		result.TotalGross = result.TotalGross.Add(stub.GrossPay)
		result.TotalNet = result.TotalNet.Add(stub.NetPay)
	}

	// All per-employee writes are done; only now do the totals go out.
	result.Status = payroll.RunStatusFinalized
	if len(result.FailedEmployeeIDs) > 0 {
		result.Status = payroll.RunStatusPartial
	}

	totals := payroll.UpdateRunTotalsRequest{
		ID:            run.ID,
		EmployeeCount: result.Generated,
		SkippedCount:  result.Skipped,
		FailedCount:   len(result.FailedEmployeeIDs),
		TotalGross:    result.TotalGross,
		TotalNet:      result.TotalNet,
		Status:        result.Status,
	}
	if err := e.payrollRepo.UpdateRunTotals(ctx, dealerID, totals); err != nil {
		return result, fmt.Errorf("failed to update run totals: %w", err)
	}

	return result, nil
}

// composePaystub performs the pure per-employee computation. skipped is true
// when the employee earned nothing this period; that is an audited skip, not
// an error.
func (e *RunExecutor) composePaystub(
	emp employee.Employee,
	runID string,
	frequency payroll.PayFrequency,
	entries []timeclock.Entry,
	commissions []commission.Commission,
	adjustment payroll.PayAdjustment,
	period payroll.PayPeriod,
) (payroll.Paystub, bool, error) {
	totalHours := AggregateHours(emp.ID, entries, period)
	if adjustment.HoursOverride != nil {
		totalHours = *adjustment.HoursOverride
	}

	base, err := ComputeBasePay(emp, totalHours, frequency)
	if err != nil {
		return payroll.Paystub{}, false, err
	}

	commissionAmount := AggregateCommissions(emp.ID, commissions, period)
	grossPay := ComputeGrossPay(base.BasePay, commissionAmount).Add(adjustment.Bonus)

	if !grossPay.IsPositive() {
		return payroll.Paystub{}, true, nil
	}

	withheld := Withhold(grossPay)

	salaryAmount := decimal.Zero
	if emp.PayTypes.Has(employee.PaySalary) {
		salaryAmount = base.BasePay.Sub(hourlyComponent(emp, base))
	}

	return payroll.Paystub{
		ID:                  uuid.NewString(),
		RunID:               runID,
		DealerID:            emp.DealerID,
		EmployeeID:          emp.ID,
		RegularHours:        base.RegularHours,
		OvertimeHours:       base.OvertimeHours,
		HourlyRate:          emp.HourlyRate,
		SalaryAmount:        salaryAmount,
		CommissionAmount:    commissionAmount,
		BonusAmount:         adjustment.Bonus,
		ReimbursementAmount: adjustment.Reimbursement,
		GrossPay:            grossPay,
		FederalTax:          withheld.Federal,
		StateTax:            withheld.State,
		SocialSecurity:      withheld.SocialSecurity,
		Medicare:            withheld.Medicare,
		NetPay:              NetPay(grossPay, adjustment.Reimbursement, withheld),
		Status:              payroll.PaystubStatusIssued,
	}, false, nil
}

func hourlyComponent(emp employee.Employee, base BasePayResult) decimal.Decimal {
	if !emp.PayTypes.Has(employee.PayHourly) {
		return decimal.Zero
	}
	return base.RegularHours.Mul(emp.HourlyRate).
		Add(base.OvertimeHours.Mul(emp.HourlyRate).Mul(overtimeMultiplier))
}
