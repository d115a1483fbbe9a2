package timeoff

import (
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRequestRequest struct {
	EmployeeID string  `json:"-"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Type       string  `json:"request_type"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if !RequestType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "request_type", Message: "must be one of pto, sick, personal, unpaid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecisionRequest struct {
	Action string `json:"action"` // "approved" or "denied"
}

func (r *DecisionRequest) Validate() error {
	if r.Action != string(StatusApproved) && r.Action != string(StatusDenied) {
		return validator.ValidationErrors{{Field: "action", Message: "must be 'approved' or 'denied'"}}
	}
	return nil
}

type RequestResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	DaysRequested decimal.Decimal `json:"days_requested"`
	Type          string          `json:"request_type"`
	Reason        *string         `json:"reason,omitempty"`
	Status        string          `json:"status"`
	DecidedBy     *string         `json:"decided_by,omitempty"`
	DecidedAt     *string         `json:"decided_at,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

type BalanceResponse struct {
	EmployeeID string          `json:"employee_id"`
	Accrued    decimal.Decimal `json:"pto_accrued"`
	Used       decimal.Decimal `json:"pto_used"`
	Balance    decimal.Decimal `json:"pto_balance"`
}

func MapToRequestResponse(r Request) RequestResponse {
	var decidedAt *string
	if r.DecidedAt != nil {
		str := r.DecidedAt.Format(time.RFC3339)
		decidedAt = &str
	}

	employeeName := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}

	return RequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  employeeName,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		DaysRequested: r.DaysRequested,
		Type:          string(r.Type),
		Reason:        r.Reason,
		Status:        string(r.Status),
		DecidedBy:     r.DecidedBy,
		DecidedAt:     decidedAt,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}
