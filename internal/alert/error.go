package alert

import "errors"

var (
	ErrAlertNotFound       = errors.New("alert not found")
	ErrSuppressionNotFound = errors.New("suppression rule not found")
	ErrInvalidAlertType    = errors.New("invalid alert type")
	ErrInvalidStatus       = errors.New("invalid status transition")
	ErrInvalidRating       = errors.New("invalid feedback rating")
	ErrInvalidSuppression  = errors.New("invalid suppression rule")
	ErrInvalidThresholds   = errors.New("thresholds must satisfy immediate >= digest >= suppress")
	ErrInvalidSnoozeUntil  = errors.New("snooze_until must be in the future")
	ErrCustomerRequired    = errors.New("customer id required")
	ErrFieldRequired       = errors.New("field required")
)
