package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUnknownPayType   = errors.New("unknown pay type")
)
