package employee

import "context"

// EmployeeRepository defines data access methods for employees.
// All methods include dealerID to prevent cross-dealer data access.
// The payroll engine never mutates employees; the only write it causes is the
// pto_used increment, which TimeOffRepository.ApprovePTO performs atomically
// with the request status transition.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, dealerID string) (Employee, error)
	GetActiveByDealerID(ctx context.Context, dealerID string) ([]Employee, error)
}
