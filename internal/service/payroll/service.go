package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/payroll"
	"github.com/driveline-dms/payroll-backend-go/internal/pkg/export"
)

// PayrollService is the surface the HTTP layer talks to. Identity (dealer and
// employee IDs) arrives as explicit parameters; the engine assumes an
// already-authorized caller.
type PayrollService struct {
	payrollRepo payroll.PayrollRepository
	executor    *RunExecutor
}

func NewPayrollService(payrollRepo payroll.PayrollRepository, executor *RunExecutor) *PayrollService {
	return &PayrollService{
		payrollRepo: payrollRepo,
		executor:    executor,
	}
}

// GetSettings returns the dealer's pay schedule config, falling back to a
// weekly default when nothing has been configured yet.
func (s *PayrollService) GetSettings(ctx context.Context, dealerID string) (payroll.PaySettingsResponse, error) {
	settings, err := s.payrollRepo.GetSettings(ctx, dealerID)
	if err != nil {
		if errors.Is(err, payroll.ErrPaySettingsNotFound) {
			return payroll.PaySettingsResponse{
				DealerID:  dealerID,
				Frequency: string(payroll.FrequencyWeekly),
				PayDay1:   payroll.DefaultPayDay1,
				PayDay2:   payroll.DefaultPayDay2,
			}, nil
		}
		return payroll.PaySettingsResponse{}, err
	}

	return mapToSettingsResponse(settings), nil
}

func (s *PayrollService) UpdateSettings(ctx context.Context, dealerID string, req payroll.UpdatePaySettingsRequest) (payroll.PaySettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaySettingsResponse{}, err
	}

	current, err := s.payrollRepo.GetSettings(ctx, dealerID)
	if err != nil && !errors.Is(err, payroll.ErrPaySettingsNotFound) {
		return payroll.PaySettingsResponse{}, err
	}
	if errors.Is(err, payroll.ErrPaySettingsNotFound) {
		current = payroll.PaySettings{
			DealerID:  dealerID,
			Frequency: payroll.FrequencyWeekly,
			PayDay1:   payroll.DefaultPayDay1,
			PayDay2:   payroll.DefaultPayDay2,
		}
	}

	if req.Frequency != nil {
		current.Frequency = payroll.PayFrequency(*req.Frequency)
	}
	if req.PayDay1 != nil {
		current.PayDay1 = *req.PayDay1
	}
	if req.PayDay2 != nil {
		current.PayDay2 = *req.PayDay2
	}
	if current.PayDay2 >= current.PayDay1 {
		return payroll.PaySettingsResponse{}, payroll.ErrInvalidPayDays
	}

	updated, err := s.payrollRepo.UpsertSettings(ctx, current)
	if err != nil {
		return payroll.PaySettingsResponse{}, err
	}

	return mapToSettingsResponse(updated), nil
}

// GetSchedule resolves the current period, next pay date and a human label
// from the dealer's settings. Missing settings fail loudly here: previewing a
// schedule that was never configured would silently run on defaults.
func (s *PayrollService) GetSchedule(ctx context.Context, dealerID string, now time.Time) (payroll.ScheduleResponse, error) {
	settings, err := s.payrollRepo.GetSettings(ctx, dealerID)
	if err != nil {
		return payroll.ScheduleResponse{}, err
	}

	period, err := ResolvePeriod(settings, now)
	if err != nil {
		return payroll.ScheduleResponse{}, err
	}
	payDate, err := ResolveNextPayDate(settings, now)
	if err != nil {
		return payroll.ScheduleResponse{}, err
	}
	label, err := DescribeSchedule(settings)
	if err != nil {
		return payroll.ScheduleResponse{}, err
	}

	return payroll.ScheduleResponse{
		PeriodStart: period.Start.Format("2006-01-02"),
		PeriodEnd:   period.End.Format("2006-01-02"),
		NextPayDate: payDate.Format("2006-01-02"),
		Label:       label,
	}, nil
}

// RunPayroll resolves the dealer's current period and executes a run over it.
func (s *PayrollService) RunPayroll(ctx context.Context, dealerID string, req payroll.RunPayrollRequest, now time.Time) (payroll.RunResultResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResultResponse{}, err
	}

	settings, err := s.payrollRepo.GetSettings(ctx, dealerID)
	if err != nil {
		return payroll.RunResultResponse{}, fmt.Errorf("failed to load pay settings: %w", err)
	}

	period, err := ResolvePeriod(settings, now)
	if err != nil {
		return payroll.RunResultResponse{}, err
	}

	payDate, err := ResolveNextPayDate(settings, now)
	if err != nil {
		return payroll.RunResultResponse{}, err
	}
	if req.PayDate != nil {
		payDate, err = time.Parse("2006-01-02", *req.PayDate)
		if err != nil {
			return payroll.RunResultResponse{}, fmt.Errorf("failed to parse pay date: %w", err)
		}
	}

	adjustments := make(map[string]payroll.PayAdjustment, len(req.Adjustments))
	for employeeID := range req.Adjustments {
		adjustments[employeeID] = req.Adjustment(employeeID)
	}

	result, err := s.executor.Execute(ctx, dealerID, period, payDate, settings.Frequency, adjustments)
	if err != nil {
		return payroll.RunResultResponse{}, err
	}

	return payroll.RunResultResponse{
		RunID:             result.RunID,
		Generated:         result.Generated,
		Skipped:           result.Skipped,
		FailedEmployeeIDs: result.FailedEmployeeIDs,
		TotalGross:        result.TotalGross,
		TotalNet:          result.TotalNet,
		Status:            string(result.Status),
	}, nil
}

func (s *PayrollService) ListRecentRuns(ctx context.Context, dealerID string, limit int) ([]payroll.PayrollRunResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs, err := s.payrollRepo.ListRecentRuns(ctx, dealerID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayrollRunResponse, 0, len(runs))
	for _, r := range runs {
		result = append(result, payroll.MapToRunResponse(r))
	}
	return result, nil
}

func (s *PayrollService) GetRun(ctx context.Context, id string, dealerID string) (payroll.PayrollRunResponse, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, id, dealerID)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	return payroll.MapToRunResponse(run), nil
}

func (s *PayrollService) ListPaystubsForEmployee(ctx context.Context, employeeID string, dealerID string) ([]payroll.PaystubResponse, error) {
	stubs, err := s.payrollRepo.ListPaystubsForEmployee(ctx, employeeID, dealerID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PaystubResponse, 0, len(stubs))
	for _, stub := range stubs {
		result = append(result, payroll.MapToPaystubResponse(stub))
	}
	return result, nil
}

// ExportRunCSV renders all paystubs of one run as CSV.
func (s *PayrollService) ExportRunCSV(ctx context.Context, runID string, dealerID string) (string, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, runID, dealerID)
	if err != nil {
		return "", err
	}

	stubs, err := s.payrollRepo.ListPaystubsForRun(ctx, runID, dealerID)
	if err != nil {
		return "", err
	}

	return export.PayrollRunCSV(run, stubs)
}

// GetPaystubPDF renders one paystub as a PDF document.
func (s *PayrollService) GetPaystubPDF(ctx context.Context, paystubID string, dealerID string) ([]byte, error) {
	stub, err := s.payrollRepo.GetPaystubByID(ctx, paystubID, dealerID)
	if err != nil {
		return nil, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, stub.RunID, dealerID)
	if err != nil {
		return nil, err
	}

	return BuildPaystubPDF(run, stub)
}

func mapToSettingsResponse(s payroll.PaySettings) payroll.PaySettingsResponse {
	return payroll.PaySettingsResponse{
		ID:        s.ID,
		DealerID:  s.DealerID,
		Frequency: string(s.Frequency),
		PayDay1:   s.PayDay1,
		PayDay2:   s.PayDay2,
	}
}
