package timeoff

import (
	"context"
	"fmt"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/employee"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/timeoff"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeOffService handles the request/approval workflow. Requests move
// pending -> approved|denied exactly once; approval of a pto request is the
// only path that consumes the accrued balance.
type TimeOffService struct {
	timeoffRepo  timeoff.TimeOffRepository
	employeeRepo employee.EmployeeRepository
}

func NewTimeOffService(timeoffRepo timeoff.TimeOffRepository, employeeRepo employee.EmployeeRepository) *TimeOffService {
	return &TimeOffService{
		timeoffRepo:  timeoffRepo,
		employeeRepo: employeeRepo,
	}
}

// CountBusinessDays counts weekdays in [start, end], inclusive on both ends.
func CountBusinessDays(start, end time.Time) int {
	days := 0
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if current.Weekday() == time.Saturday || current.Weekday() == time.Sunday {
			continue
		}
		days++
	}
	return days
}

// SubmitRequest records a pending request. The balance is deliberately not
// checked here; a manager can still deny the request, and approval enforces
// the balance server-side.
func (s *TimeOffService) SubmitRequest(ctx context.Context, dealerID string, employeeID string, req timeoff.CreateRequestRequest) (timeoff.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return timeoff.RequestResponse{}, err
	}

	// Submitting employee must exist under this dealer.
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, dealerID); err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}
	if endDate.Before(startDate) {
		return timeoff.RequestResponse{}, timeoff.ErrInvalidDateRange
	}

	request := timeoff.Request{
		ID:            uuid.NewString(),
		DealerID:      dealerID,
		EmployeeID:    employeeID,
		StartDate:     startDate,
		EndDate:       endDate,
		DaysRequested: decimal.NewFromInt(int64(CountBusinessDays(startDate, endDate))),
		Type:          timeoff.RequestType(req.Type),
		Reason:        req.Reason,
		Status:        timeoff.StatusPending,
	}

	created, err := s.timeoffRepo.Create(ctx, request)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to create time-off request: %w", err)
	}

	return timeoff.MapToRequestResponse(created), nil
}

// Decide approves or denies a pending request. Terminal requests are
// rejected; the status transition is a compare-and-swap so two concurrent
// approvals can never deduct the balance twice.
func (s *TimeOffService) Decide(ctx context.Context, dealerID string, requestID string, deciderID string, req timeoff.DecisionRequest) (timeoff.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return timeoff.RequestResponse{}, err
	}

	request, err := s.timeoffRepo.GetByID(ctx, requestID, dealerID)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to get time-off request: %w", err)
	}
	if request.Status != timeoff.StatusPending {
		return timeoff.RequestResponse{}, timeoff.ErrAlreadyDecided
	}

	decision := timeoff.Status(req.Action)
	decidedAt := time.Now().UTC()

	if decision == timeoff.StatusApproved && request.Type == timeoff.TypePTO {
		emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID, dealerID)
		if err != nil {
			return timeoff.RequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
		}
		if emp.PTOBalance().LessThan(request.DaysRequested) {
			return timeoff.RequestResponse{}, timeoff.ErrInsufficientBalance
		}

		ok, err := s.timeoffRepo.ApprovePTO(ctx, request.ID, dealerID, request.EmployeeID, request.DaysRequested, deciderID, decidedAt)
		if err != nil {
			return timeoff.RequestResponse{}, fmt.Errorf("failed to approve pto request: %w", err)
		}
		if !ok {
			return timeoff.RequestResponse{}, timeoff.ErrAlreadyDecided
		}
	} else {
		ok, err := s.timeoffRepo.UpdateStatusIfPending(ctx, request.ID, dealerID, decision, deciderID, decidedAt)
		if err != nil {
			return timeoff.RequestResponse{}, fmt.Errorf("failed to update time-off request: %w", err)
		}
		if !ok {
			return timeoff.RequestResponse{}, timeoff.ErrAlreadyDecided
		}
	}

	request.Status = decision
	request.DecidedBy = &deciderID
	request.DecidedAt = &decidedAt
	return timeoff.MapToRequestResponse(request), nil
}

func (s *TimeOffService) ListForEmployee(ctx context.Context, employeeID string, dealerID string) ([]timeoff.RequestResponse, error) {
	requests, err := s.timeoffRepo.ListForEmployee(ctx, employeeID, dealerID)
	if err != nil {
		return nil, err
	}
	return mapToRequestResponses(requests), nil
}

func (s *TimeOffService) ListForDealer(ctx context.Context, dealerID string) ([]timeoff.RequestResponse, error) {
	requests, err := s.timeoffRepo.ListForDealer(ctx, dealerID)
	if err != nil {
		return nil, err
	}
	return mapToRequestResponses(requests), nil
}

// GetBalance reports accrued, used, and remaining balance for one employee.
func (s *TimeOffService) GetBalance(ctx context.Context, employeeID string, dealerID string) (timeoff.BalanceResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, dealerID)
	if err != nil {
		return timeoff.BalanceResponse{}, err
	}

	return timeoff.BalanceResponse{
		EmployeeID: emp.ID,
		Accrued:    emp.PTOAccrued,
		Used:       emp.PTOUsed,
		Balance:    emp.PTOBalance(),
	}, nil
}

func mapToRequestResponses(requests []timeoff.Request) []timeoff.RequestResponse {
	result := make([]timeoff.RequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, timeoff.MapToRequestResponse(r))
	}
	return result
}
