package payroll

import (
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTINGS DTOs ==========

type PaySettingsResponse struct {
	ID        string `json:"id"`
	DealerID  string `json:"dealer_id"`
	Frequency string `json:"pay_frequency"`
	PayDay1   int    `json:"pay_day_1"`
	PayDay2   int    `json:"pay_day_2"`
}

type UpdatePaySettingsRequest struct {
	Frequency *string `json:"pay_frequency,omitempty"`
	PayDay1   *int    `json:"pay_day_1,omitempty"`
	PayDay2   *int    `json:"pay_day_2,omitempty"`
}

func (r *UpdatePaySettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Frequency != nil && !PayFrequency(*r.Frequency).Valid() {
		errs = append(errs, validator.ValidationError{Field: "pay_frequency", Message: "must be one of weekly, biweekly, semimonthly, monthly"})
	}
	if r.PayDay1 != nil && (*r.PayDay1 < 1 || *r.PayDay1 > 31) {
		errs = append(errs, validator.ValidationError{Field: "pay_day_1", Message: "must be between 1 and 31"})
	}
	if r.PayDay2 != nil && (*r.PayDay2 < 1 || *r.PayDay2 > 31) {
		errs = append(errs, validator.ValidationError{Field: "pay_day_2", Message: "must be between 1 and 31"})
	}
	if r.PayDay1 != nil && r.PayDay2 != nil && *r.PayDay2 >= *r.PayDay1 {
		errs = append(errs, validator.ValidationError{Field: "pay_day_2", Message: "must be earlier in the month than pay_day_1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== SCHEDULE DTOs ==========

type ScheduleResponse struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	NextPayDate string `json:"next_pay_date"`
	Label       string `json:"label"`
}

// ========== RUN DTOs ==========

type PayAdjustmentRequest struct {
	Bonus         *decimal.Decimal `json:"bonus,omitempty"`
	Reimbursement *decimal.Decimal `json:"reimbursement,omitempty"`
	HoursOverride *decimal.Decimal `json:"hours_override,omitempty"`
}

type RunPayrollRequest struct {
	// PayDate overrides the resolved next pay date when set ("2006-01-02").
	PayDate     *string                         `json:"pay_date,omitempty"`
	Adjustments map[string]PayAdjustmentRequest `json:"adjustments,omitempty"`
}

func (r *RunPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PayDate != nil {
		if _, ok := validator.IsValidDate(*r.PayDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	for employeeID, adj := range r.Adjustments {
		if adj.Bonus != nil && adj.Bonus.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "adjustments." + employeeID + ".bonus", Message: "must be non-negative"})
		}
		if adj.Reimbursement != nil && adj.Reimbursement.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "adjustments." + employeeID + ".reimbursement", Message: "must be non-negative"})
		}
		if adj.HoursOverride != nil && adj.HoursOverride.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "adjustments." + employeeID + ".hours_override", Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Adjustment returns the parsed adjustment for one employee with zero-value
// defaults for absent fields.
func (r *RunPayrollRequest) Adjustment(employeeID string) PayAdjustment {
	req, ok := r.Adjustments[employeeID]
	if !ok {
		return PayAdjustment{Bonus: decimal.Zero, Reimbursement: decimal.Zero}
	}

	adj := PayAdjustment{Bonus: decimal.Zero, Reimbursement: decimal.Zero}
	if req.Bonus != nil {
		adj.Bonus = *req.Bonus
	}
	if req.Reimbursement != nil {
		adj.Reimbursement = *req.Reimbursement
	}
	if req.HoursOverride != nil {
		hours := *req.HoursOverride
		adj.HoursOverride = &hours
	}
	return adj
}

type RunResultResponse struct {
	RunID             string          `json:"run_id"`
	Generated         int             `json:"generated"`
	Skipped           int             `json:"skipped"`
	FailedEmployeeIDs []string        `json:"failed_employee_ids,omitempty"`
	TotalGross        decimal.Decimal `json:"total_gross"`
	TotalNet          decimal.Decimal `json:"total_net"`
	Status            string          `json:"status"`
}

type PayrollRunResponse struct {
	ID            string          `json:"id"`
	PeriodStart   string          `json:"pay_period_start"`
	PeriodEnd     string          `json:"pay_period_end"`
	PayDate       string          `json:"pay_date"`
	EmployeeCount int             `json:"employee_count"`
	SkippedCount  int             `json:"skipped_count"`
	FailedCount   int             `json:"failed_count"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalNet      decimal.Decimal `json:"total_net"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
}

// ========== PAYSTUB DTOs ==========

type PaystubResponse struct {
	ID                  string          `json:"id"`
	RunID               string          `json:"run_id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        string          `json:"employee_name,omitempty"`
	RegularHours        decimal.Decimal `json:"regular_hours"`
	OvertimeHours       decimal.Decimal `json:"overtime_hours"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	SalaryAmount        decimal.Decimal `json:"salary_amount"`
	CommissionAmount    decimal.Decimal `json:"commission_amount"`
	BonusAmount         decimal.Decimal `json:"bonus_amount"`
	ReimbursementAmount decimal.Decimal `json:"reimbursement_amount"`
	GrossPay            decimal.Decimal `json:"gross_pay"`
	FederalTax          decimal.Decimal `json:"federal_tax"`
	StateTax            decimal.Decimal `json:"state_tax"`
	SocialSecurity      decimal.Decimal `json:"social_security"`
	Medicare            decimal.Decimal `json:"medicare"`
	NetPay              decimal.Decimal `json:"net_pay"`
	Status              string          `json:"status"`
	CreatedAt           string          `json:"created_at"`
}

func MapToRunResponse(r PayrollRun) PayrollRunResponse {
	return PayrollRunResponse{
		ID:            r.ID,
		PeriodStart:   r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     r.PeriodEnd.Format("2006-01-02"),
		PayDate:       r.PayDate.Format("2006-01-02"),
		EmployeeCount: r.EmployeeCount,
		SkippedCount:  r.SkippedCount,
		FailedCount:   r.FailedCount,
		TotalGross:    r.TotalGross,
		TotalNet:      r.TotalNet,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}

func MapToPaystubResponse(s Paystub) PaystubResponse {
	employeeName := ""
	if s.EmployeeName != nil {
		employeeName = *s.EmployeeName
	}

	return PaystubResponse{
		ID:                  s.ID,
		RunID:               s.RunID,
		EmployeeID:          s.EmployeeID,
		EmployeeName:        employeeName,
		RegularHours:        s.RegularHours,
		OvertimeHours:       s.OvertimeHours,
		HourlyRate:          s.HourlyRate,
		SalaryAmount:        s.SalaryAmount,
		CommissionAmount:    s.CommissionAmount,
		BonusAmount:         s.BonusAmount,
		ReimbursementAmount: s.ReimbursementAmount,
		GrossPay:            s.GrossPay,
		FederalTax:          s.FederalTax,
		StateTax:            s.StateTax,
		SocialSecurity:      s.SocialSecurity,
		Medicare:            s.Medicare,
		NetPay:              s.NetPay,
		Status:              string(s.Status),
		CreatedAt:           s.CreatedAt.Format(time.RFC3339),
	}
}
