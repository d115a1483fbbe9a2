package timeoff

import (
	"context"
	"testing"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/employee"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/timeoff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimeOffRepo struct {
	requests  map[string]timeoff.Request
	employees *fakeEmployeeRepo
}

func newFakeTimeOffRepo(employees *fakeEmployeeRepo) *fakeTimeOffRepo {
	return &fakeTimeOffRepo{
		requests:  make(map[string]timeoff.Request),
		employees: employees,
	}
}

func (f *fakeTimeOffRepo) Create(_ context.Context, request timeoff.Request) (timeoff.Request, error) {
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeTimeOffRepo) GetByID(_ context.Context, id string, dealerID string) (timeoff.Request, error) {
	request, ok := f.requests[id]
	if !ok || request.DealerID != dealerID {
		return timeoff.Request{}, timeoff.ErrRequestNotFound
	}
	return request, nil
}

func (f *fakeTimeOffRepo) ListForEmployee(_ context.Context, employeeID string, dealerID string) ([]timeoff.Request, error) {
	var out []timeoff.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.DealerID == dealerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTimeOffRepo) ListForDealer(_ context.Context, dealerID string) ([]timeoff.Request, error) {
	var out []timeoff.Request
	for _, r := range f.requests {
		if r.DealerID == dealerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTimeOffRepo) UpdateStatusIfPending(_ context.Context, id string, dealerID string, status timeoff.Status, decidedBy string, decidedAt time.Time) (bool, error) {
	request, ok := f.requests[id]
	if !ok || request.DealerID != dealerID || request.Status != timeoff.StatusPending {
		return false, nil
	}
	request.Status = status
	request.DecidedBy = &decidedBy
	request.DecidedAt = &decidedAt
	f.requests[id] = request
	return true, nil
}

func (f *fakeTimeOffRepo) ApprovePTO(ctx context.Context, id string, dealerID string, employeeID string, days decimal.Decimal, decidedBy string, decidedAt time.Time) (bool, error) {
	ok, err := f.UpdateStatusIfPending(ctx, id, dealerID, timeoff.StatusApproved, decidedBy, decidedAt)
	if err != nil || !ok {
		return ok, err
	}
	for i, emp := range f.employees.employees {
		if emp.ID == employeeID && emp.DealerID == dealerID {
			f.employees.employees[i].PTOUsed = emp.PTOUsed.Add(days)
			return true, nil
		}
	}
	return false, employee.ErrEmployeeNotFound
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
	return f.employees, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(ptoAccrued, ptoUsed string) (*TimeOffService, *fakeEmployeeRepo, *fakeTimeOffRepo) {
	employees := &fakeEmployeeRepo{employees: []employee.Employee{{
		ID:         "emp-1",
		DealerID:   "dealer-1",
		Name:       "Jordan Reyes",
		PTOAccrued: dec(ptoAccrued),
		PTOUsed:    dec(ptoUsed),
		IsActive:   true,
	}}}
	repo := newFakeTimeOffRepo(employees)
	return NewTimeOffService(repo, employees), employees, repo
}

func TestCountBusinessDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "full work week",
			start: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), // Monday
			end:   time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC), // Friday
			want:  5,
		},
		{
			name:  "across a weekend",
			start: time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC),  // Friday
			end:   time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), // Monday
			want:  2,
		},
		{
			name:  "single weekday",
			start: time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "weekend only",
			start: time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountBusinessDays(tt.start, tt.end))
		})
	}
}

func TestSubmitRequest(t *testing.T) {
	service, _, _ := newTestService("10", "0")

	created, err := service.SubmitRequest(context.Background(), "dealer-1", "emp-1", timeoff.CreateRequestRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-08",
		Type:      "pto",
	})
	require.NoError(t, err)

	assert.Equal(t, string(timeoff.StatusPending), created.Status)
	assert.True(t, created.DaysRequested.Equal(dec("5")), "days: %s", created.DaysRequested)
	assert.NotEmpty(t, created.ID)
}

func TestSubmitRequestAllowsOverdrawnBalance(t *testing.T) {
	// Submission never checks the balance; only approval does.
	service, _, _ := newTestService("1", "0")

	created, err := service.SubmitRequest(context.Background(), "dealer-1", "emp-1", timeoff.CreateRequestRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-08",
		Type:      "pto",
	})
	require.NoError(t, err)
	assert.Equal(t, string(timeoff.StatusPending), created.Status)
}

func TestSubmitRequestUnknownEmployee(t *testing.T) {
	service, _, _ := newTestService("10", "0")

	_, err := service.SubmitRequest(context.Background(), "dealer-1", "emp-404", timeoff.CreateRequestRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-08",
		Type:      "pto",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSubmitRequestInvalidType(t *testing.T) {
	service, _, _ := newTestService("10", "0")

	_, err := service.SubmitRequest(context.Background(), "dealer-1", "emp-1", timeoff.CreateRequestRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-08",
		Type:      "vacation",
	})
	assert.Error(t, err)
}

func submitPending(t *testing.T, service *TimeOffService, requestType string) string {
	t.Helper()
	created, err := service.SubmitRequest(context.Background(), "dealer-1", "emp-1", timeoff.CreateRequestRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-08",
		Type:      requestType,
	})
	require.NoError(t, err)
	return created.ID
}

func TestDecideApprovesPTOAndConsumesBalance(t *testing.T) {
	service, employees, _ := newTestService("10", "0")
	requestID := submitPending(t, service, "pto")

	decided, err := service.Decide(context.Background(), "dealer-1", requestID, "admin-1", timeoff.DecisionRequest{Action: "approved"})
	require.NoError(t, err)

	assert.Equal(t, string(timeoff.StatusApproved), decided.Status)
	assert.True(t, employees.employees[0].PTOUsed.Equal(dec("5")), "used: %s", employees.employees[0].PTOUsed)
}

func TestDecideRejectsInsufficientBalance(t *testing.T) {
	service, employees, _ := newTestService("3", "0")
	requestID := submitPending(t, service, "pto")

	_, err := service.Decide(context.Background(), "dealer-1", requestID, "admin-1", timeoff.DecisionRequest{Action: "approved"})
	assert.ErrorIs(t, err, timeoff.ErrInsufficientBalance)
	assert.True(t, employees.employees[0].PTOUsed.IsZero())
}

func TestDecideUnpaidLeaveSkipsBalance(t *testing.T) {
	// Non-pto types approve without touching the accrued balance.
	service, employees, _ := newTestService("0", "0")
	requestID := submitPending(t, service, "unpaid")

	decided, err := service.Decide(context.Background(), "dealer-1", requestID, "admin-1", timeoff.DecisionRequest{Action: "approved"})
	require.NoError(t, err)
	assert.Equal(t, string(timeoff.StatusApproved), decided.Status)
	assert.True(t, employees.employees[0].PTOUsed.IsZero())
}

func TestDecideDenyLeavesBalanceAlone(t *testing.T) {
	service, employees, _ := newTestService("10", "0")
	requestID := submitPending(t, service, "pto")

	decided, err := service.Decide(context.Background(), "dealer-1", requestID, "admin-1", timeoff.DecisionRequest{Action: "denied"})
	require.NoError(t, err)
	assert.Equal(t, string(timeoff.StatusDenied), decided.Status)
	assert.True(t, employees.employees[0].PTOUsed.IsZero())
}

func TestDecideTwiceIsRejected(t *testing.T) {
	service, employees, _ := newTestService("10", "0")
	requestID := submitPending(t, service, "pto")

	_, err := service.Decide(context.Background(), "dealer-1", requestID, "admin-1", timeoff.DecisionRequest{Action: "approved"})
	require.NoError(t, err)

	_, err = service.Decide(context.Background(), "dealer-1", requestID, "admin-2", timeoff.DecisionRequest{Action: "approved"})
	assert.ErrorIs(t, err, timeoff.ErrAlreadyDecided)

	// The balance was consumed exactly once.
	assert.True(t, employees.employees[0].PTOUsed.Equal(dec("5")))
}

func TestDecideInvalidAction(t *testing.T) {
	service, _, _ := newTestService("10", "0")
	requestID := submitPending(t, service, "pto")

	_, err := service.Decide(context.Background(), "dealer-1", requestID, "admin-1", timeoff.DecisionRequest{Action: "maybe"})
	assert.Error(t, err)
}

func TestGetBalance(t *testing.T) {
	service, _, _ := newTestService("12.5", "4")

	balance, err := service.GetBalance(context.Background(), "emp-1", "dealer-1")
	require.NoError(t, err)

	assert.True(t, balance.Accrued.Equal(dec("12.5")))
	assert.True(t, balance.Used.Equal(dec("4")))
	assert.True(t, balance.Balance.Equal(dec("8.5")))
}
