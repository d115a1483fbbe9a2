package response

import (
	"errors"
	"net/http"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/commission"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/employee"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/payroll"
	"github.com/driveline-dms/payroll-backend-go/internal/domain/timeoff"
	"github.com/driveline-dms/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUnknownPayType):
		InternalServerError(w, "Employee has an unknown pay type")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPaySettingsNotFound):
		NotFound(w, "Pay settings not configured for this dealer")
	case errors.Is(err, payroll.ErrInvalidPayFrequency):
		BadRequest(w, "Invalid pay frequency", nil)
	case errors.Is(err, payroll.ErrInvalidPayDays):
		BadRequest(w, "Second pay day must fall before the first pay day", nil)
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunAlreadyExists):
		Conflict(w, "Payroll has already been run for this period")
	case errors.Is(err, payroll.ErrPaystubNotFound):
		NotFound(w, "Paystub not found")
	case errors.Is(err, payroll.ErrNegativeHours):
		BadRequest(w, "Hours cannot be negative", nil)

	// Commission domain errors
	case errors.Is(err, commission.ErrCommissionNotFound):
		NotFound(w, "Commission not found")

	// Time-off domain errors
	case errors.Is(err, timeoff.ErrRequestNotFound):
		NotFound(w, "Time off request not found")
	case errors.Is(err, timeoff.ErrAlreadyDecided):
		Conflict(w, "Time off request already decided")
	case errors.Is(err, timeoff.ErrInsufficientBalance):
		BadRequest(w, "Insufficient PTO balance", nil)
	case errors.Is(err, timeoff.ErrInvalidRequestType):
		BadRequest(w, "Invalid time off request type", nil)
	case errors.Is(err, timeoff.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, timeoff.ErrInvalidDecision):
		BadRequest(w, "Decision must be approved or denied", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
