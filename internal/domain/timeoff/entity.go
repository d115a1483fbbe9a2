package timeoff

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestType enum. Only approved pto requests consume the accrued balance;
// sick, personal and unpaid leave track dates without touching it.
type RequestType string

const (
	TypePTO      RequestType = "pto"
	TypeSick     RequestType = "sick"
	TypePersonal RequestType = "personal"
	TypeUnpaid   RequestType = "unpaid"
)

func (t RequestType) Valid() bool {
	switch t {
	case TypePTO, TypeSick, TypePersonal, TypeUnpaid:
		return true
	}
	return false
}

// Status enum. pending is the only non-terminal state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// Request - A PTO/sick/personal/unpaid ask
type Request struct {
	ID            string
	DealerID      string
	EmployeeID    string
	StartDate     time.Time
	EndDate       time.Time
	DaysRequested decimal.Decimal
	Type          RequestType
	Reason        *string
	Status        Status
	DecidedBy     *string
	DecidedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}
