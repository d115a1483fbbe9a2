package payroll

import (
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/commission"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/employee"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/payroll"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/timeclock"
	"github.com/shopspring/decimal"
)

var (
	overtimeMultiplier = decimal.NewFromFloat(1.5)
	weeklyCapHours     = decimal.NewFromInt(40)
)

// AggregateHours sums completed clock hours for one employee inside the
// period. Entries still clocked in (nil TotalHours) are excluded rather than
// treated as zero, so an open shift never blocks a run.
func AggregateHours(employeeID string, entries []timeclock.Entry, period payroll.PayPeriod) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		if entry.EmployeeID != employeeID || entry.TotalHours == nil {
			continue
		}
		if !inPeriod(entry.ClockIn, period) {
			continue
		}
		total = total.Add(*entry.TotalHours)
	}
	return total
}

// AggregateCommissions sums commissions earned by one employee inside the
// period, filtered on the earn date.
func AggregateCommissions(employeeID string, commissions []commission.Commission, period payroll.PayPeriod) decimal.Decimal {
	total := decimal.Zero
	for _, c := range commissions {
		if c.EmployeeID != employeeID {
			continue
		}
		if !inPeriod(c.CreatedAt, period) {
			continue
		}
		total = total.Add(c.Amount)
	}
	return total
}

// inPeriod treats the period as inclusive of both boundary dates: any instant
// on the End date still belongs to the period.
func inPeriod(t time.Time, period payroll.PayPeriod) bool {
	return !t.Before(period.Start) && t.Before(period.End.AddDate(0, 0, 1))
}

// BasePayResult is the pre-commission, pre-adjustment computation for one
// employee in one period.
type BasePayResult struct {
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	BasePay       decimal.Decimal
}

// ComputeBasePay splits worked hours at the period overtime cap and prices
// the hourly and salary components of the employee's pay-type set.
//
// The overtime cap is 40 hours for weekly periods and 80 hours for every
// other frequency. Semi-monthly and monthly periods are longer than two exact
// weeks; the flat 80-hour cap is kept deliberately for compatibility with the
// established payout behavior.
func ComputeBasePay(emp employee.Employee, totalHours decimal.Decimal, frequency payroll.PayFrequency) (BasePayResult, error) {
	if totalHours.IsNegative() {
		return BasePayResult{}, payroll.ErrNegativeHours
	}

	capHours := weeklyCapHours
	if frequency != payroll.FrequencyWeekly {
		capHours = weeklyCapHours.Mul(decimal.NewFromInt(2))
	}

	regular := decimal.Min(totalHours, capHours)
	overtime := decimal.Max(decimal.Zero, totalHours.Sub(capHours))

	basePay := decimal.Zero
	if emp.PayTypes.Has(employee.PayHourly) {
		basePay = basePay.Add(regular.Mul(emp.HourlyRate))
		basePay = basePay.Add(overtime.Mul(emp.HourlyRate).Mul(overtimeMultiplier))
	}
	if emp.PayTypes.Has(employee.PaySalary) {
		// Salary is not hours-gated: the prorated slice is owed even for a
		// period with zero clocked hours.
		periods, err := frequency.PeriodsPerYear()
		if err != nil {
			return BasePayResult{}, err
		}
		basePay = basePay.Add(emp.AnnualSalary.Div(decimal.NewFromInt(periods)).Round(2))
	}

	return BasePayResult{
		RegularHours:  regular,
		OvertimeHours: overtime,
		BasePay:       basePay,
	}, nil
}

// ComputeGrossPay combines base pay with period commissions. Bonus is a
// run-time adjustment and is added by the run executor, not here.
func ComputeGrossPay(basePay, commissionAmount decimal.Decimal) decimal.Decimal {
	return basePay.Add(commissionAmount)
}
