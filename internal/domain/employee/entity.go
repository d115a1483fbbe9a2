package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayTypes is the set of compensation models attached to an employee. An
// employee can be hourly, salaried, or both at once (a blended contract), so
// this is a bitset rather than a single enum value.
type PayTypes uint8

const (
	PayHourly PayTypes = 1 << iota
	PaySalary
)

func (p PayTypes) Has(t PayTypes) bool {
	return p&t != 0
}

func (p PayTypes) IsZero() bool {
	return p == 0
}

// Strings returns the storage representation ("hourly", "salary").
func (p PayTypes) Strings() []string {
	var out []string
	if p.Has(PayHourly) {
		out = append(out, "hourly")
	}
	if p.Has(PaySalary) {
		out = append(out, "salary")
	}
	return out
}

// ParsePayTypes converts the storage representation back to a set. Unknown
// values are a data error, never silently dropped.
func ParsePayTypes(values []string) (PayTypes, error) {
	var p PayTypes
	for _, v := range values {
		switch v {
		case "hourly":
			p |= PayHourly
		case "salary":
			p |= PaySalary
		default:
			return 0, ErrUnknownPayType
		}
	}
	return p, nil
}

// Employee - A payable worker
type Employee struct {
	ID           string
	DealerID     string
	Name         string
	Email        *string
	PayTypes     PayTypes
	HourlyRate   decimal.Decimal
	AnnualSalary decimal.Decimal
	PTOAccrued   decimal.Decimal
	PTOUsed      decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PTOBalance returns accrued minus used, floored at zero.
func (e Employee) PTOBalance() decimal.Decimal {
	balance := e.PTOAccrued.Sub(e.PTOUsed)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}
