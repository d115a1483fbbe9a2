package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/commission"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/employee"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/payroll"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/timeclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. The executor only touches the methods exercised here; the
// rest return not-found so misuse fails fast.

type fakePayrollRepo struct {
	settings map[string]payroll.PaySettings
	runs     map[string]payroll.PayrollRun
	stubs    []payroll.Paystub

	failPaystubFor map[string]bool
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		settings:       make(map[string]payroll.PaySettings),
		runs:           make(map[string]payroll.PayrollRun),
		failPaystubFor: make(map[string]bool),
	}
}

func (f *fakePayrollRepo) GetSettings(_ context.Context, dealerID string) (payroll.PaySettings, error) {
	s, ok := f.settings[dealerID]
	if !ok {
		return payroll.PaySettings{}, payroll.ErrPaySettingsNotFound
	}
	return s, nil
}

func (f *fakePayrollRepo) UpsertSettings(_ context.Context, settings payroll.PaySettings) (payroll.PaySettings, error) {
	f.settings[settings.DealerID] = settings
	return settings, nil
}

func (f *fakePayrollRepo) CreateRun(_ context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	run.CreatedAt = time.Now()
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakePayrollRepo) GetRunByID(_ context.Context, id string, dealerID string) (payroll.PayrollRun, error) {
	run, ok := f.runs[id]
	if !ok || run.DealerID != dealerID {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (f *fakePayrollRepo) GetRunByPeriod(_ context.Context, dealerID string, start, end time.Time) (payroll.PayrollRun, error) {
	for _, run := range f.runs {
		if run.DealerID == dealerID && run.PeriodStart.Equal(start) && run.PeriodEnd.Equal(end) {
			return run, nil
		}
	}
	return payroll.PayrollRun{}, payroll.ErrRunNotFound
}

func (f *fakePayrollRepo) ListRecentRuns(_ context.Context, dealerID string, limit int) ([]payroll.PayrollRun, error) {
	var runs []payroll.PayrollRun
	for _, run := range f.runs {
		if run.DealerID == dealerID {
			runs = append(runs, run)
		}
	}
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (f *fakePayrollRepo) UpdateRunTotals(_ context.Context, dealerID string, req payroll.UpdateRunTotalsRequest) error {
	run, ok := f.runs[req.ID]
	if !ok || run.DealerID != dealerID {
		return payroll.ErrRunNotFound
	}
	run.EmployeeCount = req.EmployeeCount
	run.SkippedCount = req.SkippedCount
	run.FailedCount = req.FailedCount
	run.TotalGross = req.TotalGross
	run.TotalNet = req.TotalNet
	run.Status = req.Status
	f.runs[req.ID] = run
	return nil
}

func (f *fakePayrollRepo) CreatePaystub(_ context.Context, stub payroll.Paystub) (payroll.Paystub, error) {
	if f.failPaystubFor[stub.EmployeeID] {
		return payroll.Paystub{}, errors.New("storage unavailable")
	}
	stub.CreatedAt = time.Now()
	f.stubs = append(f.stubs, stub)
	return stub, nil
}

func (f *fakePayrollRepo) GetPaystubByID(_ context.Context, id string, dealerID string) (payroll.Paystub, error) {
	for _, stub := range f.stubs {
		if stub.ID == id && stub.DealerID == dealerID {
			return stub, nil
		}
	}
	return payroll.Paystub{}, payroll.ErrPaystubNotFound
}

func (f *fakePayrollRepo) ListPaystubsForEmployee(_ context.Context, employeeID string, dealerID string) ([]payroll.Paystub, error) {
	var out []payroll.Paystub
	for _, stub := range f.stubs {
		if stub.EmployeeID == employeeID && stub.DealerID == dealerID {
			out = append(out, stub)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) ListPaystubsForRun(_ context.Context, runID string, dealerID string) ([]payroll.Paystub, error) {
	var out []payroll.Paystub
	for _, stub := range f.stubs {
		if stub.RunID == runID && stub.DealerID == dealerID {
			out = append(out, stub)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, dealerID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id && emp.DealerID == dealerID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByDealerID(_ context.Context, dealerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.DealerID == dealerID && emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakeTimeClockRepo struct {
	entries []timeclock.Entry
}

func (f *fakeTimeClockRepo) ListForPeriod(_ context.Context, dealerID string, start, end time.Time) ([]timeclock.Entry, error) {
	var out []timeclock.Entry
	for _, e := range f.entries {
		if e.DealerID == dealerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCommissionRepo struct {
	commissions []commission.Commission
}

func (f *fakeCommissionRepo) ListForPeriod(_ context.Context, dealerID string, start, end time.Time) ([]commission.Commission, error) {
	var out []commission.Commission
	for _, c := range f.commissions {
		if c.DealerID == dealerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommissionRepo) Delete(_ context.Context, id string, dealerID string) error {
	return commission.ErrCommissionNotFound
}

func testPeriod() payroll.PayPeriod {
	return payroll.PayPeriod{
		Start: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
	}
}

func entryFor(employeeID string, day int, hours string) timeclock.Entry {
	h := dec(hours)
	return timeclock.Entry{
		DealerID:   "dealer-1",
		EmployeeID: employeeID,
		ClockIn:    time.Date(2024, time.March, day, 9, 0, 0, 0, time.UTC),
		TotalHours: &h,
	}
}

func TestExecuteHappyPath(t *testing.T) {
	hourly := hourlyEmployee("25")
	salaried := salariedEmployee("52000")

	payrollRepo := newFakePayrollRepo()
	executor := NewRunExecutor(
		payrollRepo,
		&fakeEmployeeRepo{employees: []employee.Employee{hourly, salaried}},
		&fakeTimeClockRepo{entries: []timeclock.Entry{
			entryFor(hourly.ID, 4, "22"),
			entryFor(hourly.ID, 6, "22"),
		}},
		&fakeCommissionRepo{},
	)

	result, err := executor.Execute(context.Background(), "dealer-1", testPeriod(),
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		payroll.FrequencyWeekly, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Generated)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.FailedEmployeeIDs)
	assert.Equal(t, payroll.RunStatusFinalized, result.Status)

	// 44h at $25 weekly: 40 regular + 4 OT = 1150. Salary 52000/52 = 1000.
	assert.True(t, result.TotalGross.Equal(dec("2150")), "gross: %s", result.TotalGross)

	run := payrollRepo.runs[result.RunID]
	assert.Equal(t, payroll.RunStatusFinalized, run.Status)
	assert.Equal(t, 2, run.EmployeeCount)
	assert.True(t, run.TotalGross.Equal(result.TotalGross))
	assert.True(t, run.TotalNet.Equal(result.TotalNet))
	assert.Len(t, payrollRepo.stubs, 2)
}

func TestExecuteEndToEndFigures(t *testing.T) {
	hourly := hourlyEmployee("25")

	payrollRepo := newFakePayrollRepo()
	executor := NewRunExecutor(
		payrollRepo,
		&fakeEmployeeRepo{employees: []employee.Employee{hourly}},
		&fakeTimeClockRepo{entries: []timeclock.Entry{entryFor(hourly.ID, 4, "44")}},
		&fakeCommissionRepo{},
	)

	result, err := executor.Execute(context.Background(), "dealer-1", testPeriod(),
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		payroll.FrequencyWeekly, nil)
	require.NoError(t, err)
	require.Len(t, payrollRepo.stubs, 1)

	stub := payrollRepo.stubs[0]
	assert.True(t, stub.GrossPay.Equal(dec("1150")), "gross: %s", stub.GrossPay)
	assert.True(t, stub.FederalTax.Equal(dec("138.00")), "federal: %s", stub.FederalTax)
	assert.True(t, stub.StateTax.Equal(dec("56.93")), "state: %s", stub.StateTax)
	assert.True(t, stub.SocialSecurity.Equal(dec("71.30")), "social security: %s", stub.SocialSecurity)
	assert.True(t, stub.Medicare.Equal(dec("16.68")), "medicare: %s", stub.Medicare)
	assert.True(t, stub.NetPay.Equal(dec("867.09")), "net: %s", stub.NetPay)
	assert.True(t, result.TotalNet.Equal(dec("867.09")))
}

func TestExecuteSkipsZeroGross(t *testing.T) {
	idle := hourlyEmployee("25")

	payrollRepo := newFakePayrollRepo()
	executor := NewRunExecutor(
		payrollRepo,
		&fakeEmployeeRepo{employees: []employee.Employee{idle}},
		&fakeTimeClockRepo{},
		&fakeCommissionRepo{},
	)

	result, err := executor.Execute(context.Background(), "dealer-1", testPeriod(),
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		payroll.FrequencyWeekly, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Generated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, payroll.RunStatusFinalized, result.Status)
	assert.Empty(t, payrollRepo.stubs)
}

func TestExecuteRejectsDuplicatePeriod(t *testing.T) {
	hourly := hourlyEmployee("25")

	payrollRepo := newFakePayrollRepo()
	executor := NewRunExecutor(
		payrollRepo,
		&fakeEmployeeRepo{employees: []employee.Employee{hourly}},
		&fakeTimeClockRepo{entries: []timeclock.Entry{entryFor(hourly.ID, 4, "8")}},
		&fakeCommissionRepo{},
	)

	payDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	_, err := executor.Execute(context.Background(), "dealer-1", testPeriod(), payDate, payroll.FrequencyWeekly, nil)
	require.NoError(t, err)

	_, err = executor.Execute(context.Background(), "dealer-1", testPeriod(), payDate, payroll.FrequencyWeekly, nil)
	assert.ErrorIs(t, err, payroll.ErrRunAlreadyExists)
	assert.Len(t, payrollRepo.stubs, 1)
}

func TestExecuteAdjustments(t *testing.T) {
	hourly := hourlyEmployee("20")

	payrollRepo := newFakePayrollRepo()
	executor := NewRunExecutor(
		payrollRepo,
		&fakeEmployeeRepo{employees: []employee.Employee{hourly}},
		&fakeTimeClockRepo{entries: []timeclock.Entry{entryFor(hourly.ID, 4, "40")}},
		&fakeCommissionRepo{},
	)

	override := dec("30")
	adjustments := map[string]payroll.PayAdjustment{
		hourly.ID: {
			Bonus:         dec("100"),
			Reimbursement: dec("45.50"),
			HoursOverride: &override,
		},
	}

	_, err := executor.Execute(context.Background(), "dealer-1", testPeriod(),
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		payroll.FrequencyWeekly, adjustments)
	require.NoError(t, err)
	require.Len(t, payrollRepo.stubs, 1)

	stub := payrollRepo.stubs[0]
	// Override replaces the 40 clocked hours: 30*20 + 100 bonus = 700 gross.
	assert.True(t, stub.RegularHours.Equal(dec("30")))
	assert.True(t, stub.GrossPay.Equal(dec("700")), "gross: %s", stub.GrossPay)
	assert.True(t, stub.BonusAmount.Equal(dec("100")))
	assert.True(t, stub.ReimbursementAmount.Equal(dec("45.50")))

	// Reimbursement is untaxed and lands whole in net.
	w := Withhold(dec("700"))
	assert.True(t, stub.NetPay.Equal(dec("700").Add(dec("45.50")).Sub(w.Total())), "net: %s", stub.NetPay)
}

func TestExecutePartialOnPaystubFailure(t *testing.T) {
	good := hourlyEmployee("25")
	bad := employee.Employee{
		ID:         "emp-9",
		DealerID:   "dealer-1",
		Name:       "Flaky Row",
		PayTypes:   employee.PayHourly,
		HourlyRate: dec("25"),
		IsActive:   true,
	}

	payrollRepo := newFakePayrollRepo()
	payrollRepo.failPaystubFor[bad.ID] = true

	executor := NewRunExecutor(
		payrollRepo,
		&fakeEmployeeRepo{employees: []employee.Employee{good, bad}},
		&fakeTimeClockRepo{entries: []timeclock.Entry{
			entryFor(good.ID, 4, "40"),
			entryFor(bad.ID, 4, "40"),
		}},
		&fakeCommissionRepo{},
	)

	result, err := executor.Execute(context.Background(), "dealer-1", testPeriod(),
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		payroll.FrequencyWeekly, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, []string{bad.ID}, result.FailedEmployeeIDs)
	assert.Equal(t, payroll.RunStatusPartial, result.Status)

	// Totals cover only the generated stub.
	assert.True(t, result.TotalGross.Equal(dec("1000")), "gross: %s", result.TotalGross)
	assert.Equal(t, payroll.RunStatusPartial, payrollRepo.runs[result.RunID].Status)
}

func TestExecuteDeterministicTotals(t *testing.T) {
	build := func() (*RunExecutor, *fakePayrollRepo) {
		hourly := hourlyEmployee("25")
		salaried := salariedEmployee("60000")
		repo := newFakePayrollRepo()
		return NewRunExecutor(
			repo,
			&fakeEmployeeRepo{employees: []employee.Employee{hourly, salaried}},
			&fakeTimeClockRepo{entries: []timeclock.Entry{entryFor(hourly.ID, 4, "41.25")}},
			&fakeCommissionRepo{commissions: []commission.Commission{{
				DealerID:   "dealer-1",
				EmployeeID: hourly.ID,
				Amount:     dec("133.33"),
				CreatedAt:  time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC),
			}}},
		), repo
	}

	payDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	first, repoA := build()
	resultA, err := first.Execute(context.Background(), "dealer-1", testPeriod(), payDate, payroll.FrequencyWeekly, nil)
	require.NoError(t, err)

	second, repoB := build()
	resultB, err := second.Execute(context.Background(), "dealer-1", testPeriod(), payDate, payroll.FrequencyWeekly, nil)
	require.NoError(t, err)

	assert.True(t, resultA.TotalGross.Equal(resultB.TotalGross))
	assert.True(t, resultA.TotalNet.Equal(resultB.TotalNet))
	require.Len(t, repoA.stubs, len(repoB.stubs))
	for i := range repoA.stubs {
		assert.True(t, repoA.stubs[i].NetPay.Equal(repoB.stubs[i].NetPay))
	}
}
