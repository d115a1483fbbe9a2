package payroll

import "errors"

var (
	ErrPaySettingsNotFound = errors.New("pay settings not found")
	ErrInvalidPayFrequency = errors.New("unrecognized pay frequency")
	ErrInvalidPayDays      = errors.New("invalid pay day configuration")
	ErrRunNotFound         = errors.New("payroll run not found")
	ErrRunAlreadyExists    = errors.New("payroll run already exists for this period")
	ErrPaystubNotFound     = errors.New("paystub not found")
	ErrNegativeHours       = errors.New("total hours must not be negative")
)
