package payroll

import "github.com/shopspring/decimal"

// Flat statutory withholding rates applied to gross pay. This is an
// intentionally simplified model, not a bracket table; the four rates and the
// reimbursement-is-tax-free rule define the engine's payout behavior and must
// not change without a documented migration.
var (
	federalTaxRate     = decimal.NewFromFloat(0.12)
	stateTaxRate       = decimal.NewFromFloat(0.0495)
	socialSecurityRate = decimal.NewFromFloat(0.062)
	medicareRate       = decimal.NewFromFloat(0.0145)
)

// Withholding holds the four statutory deductions for one paystub, each
// rounded to cents.
type Withholding struct {
	Federal        decimal.Decimal
	State          decimal.Decimal
	SocialSecurity decimal.Decimal
	Medicare       decimal.Decimal
}

// Withhold computes statutory deductions from gross pay. Gross here is the
// post-bonus, pre-reimbursement total: bonuses are taxed, reimbursements are
// not.
func Withhold(grossPay decimal.Decimal) Withholding {
	return Withholding{
		Federal:        grossPay.Mul(federalTaxRate).Round(2),
		State:          grossPay.Mul(stateTaxRate).Round(2),
		SocialSecurity: grossPay.Mul(socialSecurityRate).Round(2),
		Medicare:       grossPay.Mul(medicareRate).Round(2),
	}
}

func (w Withholding) Total() decimal.Decimal {
	return w.Federal.Add(w.State).Add(w.SocialSecurity).Add(w.Medicare)
}

// NetPay is gross plus tax-free reimbursement minus the four deductions.
func NetPay(grossPay, reimbursement decimal.Decimal, w Withholding) decimal.Decimal {
	return grossPay.Add(reimbursement).Sub(w.Total())
}
