package timeoff

import "errors"

var (
	ErrRequestNotFound     = errors.New("time-off request not found")
	ErrAlreadyDecided      = errors.New("time-off request already decided")
	ErrInsufficientBalance = errors.New("insufficient pto balance")
	ErrInvalidRequestType  = errors.New("invalid time-off request type")
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrInvalidDecision     = errors.New("decision must be approved or denied")
)
