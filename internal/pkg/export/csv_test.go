package export

import (
	"strings"
	"testing"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollRunCSV(t *testing.T) {
	run := payroll.PayrollRun{
		ID:          "run-1",
		DealerID:    "dealer-1",
		PeriodStart: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
		PayDate:     time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	}

	name := "Jordan Reyes"
	stubs := []payroll.Paystub{{
		EmployeeID:     "emp-1",
		EmployeeName:   &name,
		RegularHours:   decimal.RequireFromString("40"),
		OvertimeHours:  decimal.RequireFromString("4"),
		HourlyRate:     decimal.RequireFromString("25"),
		GrossPay:       decimal.RequireFromString("1150"),
		FederalTax:     decimal.RequireFromString("138"),
		StateTax:       decimal.RequireFromString("56.93"),
		SocialSecurity: decimal.RequireFromString("71.3"),
		Medicare:       decimal.RequireFromString("16.68"),
		NetPay:         decimal.RequireFromString("867.09"),
	}}

	out, err := PayrollRunCSV(run, stubs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "employee_id,employee_name,pay_period_start"))
	assert.Equal(t,
		"emp-1,Jordan Reyes,2024-03-03,2024-03-09,2024-03-15,40,4,25.00,0.00,0.00,0.00,0.00,1150.00,138.00,56.93,71.30,16.68,867.09",
		lines[1])
}

func TestPayrollRunCSVEmptyRun(t *testing.T) {
	out, err := PayrollRunCSV(payroll.PayrollRun{}, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1) // header only
}
