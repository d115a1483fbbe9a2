package export

import (
	"encoding/csv"
	"strings"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/payroll"
)

// PayrollRunCSV renders one run's paystubs as a CSV document. This is a thin
// formatting adapter over already-computed figures; it performs no arithmetic
// of its own.
func PayrollRunCSV(run payroll.PayrollRun, stubs []payroll.Paystub) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{
		"employee_id",
		"employee_name",
		"pay_period_start",
		"pay_period_end",
		"pay_date",
		"regular_hours",
		"overtime_hours",
		"hourly_rate",
		"salary_amount",
		"commission_amount",
		"bonus_amount",
		"reimbursement_amount",
		"gross_pay",
		"federal_tax",
		"state_tax",
		"social_security",
		"medicare",
		"net_pay",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, stub := range stubs {
		name := ""
		if stub.EmployeeName != nil {
			name = *stub.EmployeeName
		}

		row := []string{
			stub.EmployeeID,
			name,
			run.PeriodStart.Format("2006-01-02"),
			run.PeriodEnd.Format("2006-01-02"),
			run.PayDate.Format("2006-01-02"),
			stub.RegularHours.String(),
			stub.OvertimeHours.String(),
			stub.HourlyRate.StringFixed(2),
			stub.SalaryAmount.StringFixed(2),
			stub.CommissionAmount.StringFixed(2),
			stub.BonusAmount.StringFixed(2),
			stub.ReimbursementAmount.StringFixed(2),
			stub.GrossPay.StringFixed(2),
			stub.FederalTax.StringFixed(2),
			stub.StateTax.StringFixed(2),
			stub.SocialSecurity.StringFixed(2),
			stub.Medicare.StringFixed(2),
			stub.NetPay.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}
