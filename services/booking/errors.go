package booking

import (
	"errors"
	"fmt"

	"velora/models"
)

// ErrorCode classifies booking failures for callers. Conflict and hold codes
// are expected, recoverable outcomes; the client picks a new slot or starts
// over. Configuration codes mean the professional's setup is at fault, not
// the request.
type ErrorCode string

const (
	CodeHoldNotFound          ErrorCode = "HOLD_NOT_FOUND"
	CodeHoldExpired           ErrorCode = "HOLD_EXPIRED"
	CodeHoldMismatch          ErrorCode = "HOLD_MISMATCH"
	CodeTimeNotAvailable      ErrorCode = "TIME_NOT_AVAILABLE"
	CodeOpeningNotAvailable   ErrorCode = "OPENING_NOT_AVAILABLE"
	CodeWorkingHoursViolation ErrorCode = "WORKING_HOURS_VIOLATION"
	CodeInvalidState          ErrorCode = "INVALID_STATE"
	CodeProfessionalConfig    ErrorCode = "PROFESSIONAL_CONFIG"
	CodeValidation            ErrorCode = "VALIDATION"
	CodeNotFound              ErrorCode = "NOT_FOUND"
)

// BookingError carries a machine-readable code alongside the message. State
// errors also expose the booking's current status so the caller can decide on
// a corrective action.
type BookingError struct {
	Code    ErrorCode
	Message string
	Status  models.BookingStatus
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBookingError builds a coded booking failure.
func NewBookingError(code ErrorCode, format string, args ...any) error {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewStateError builds an INVALID_STATE failure exposing the current status.
func NewStateError(status models.BookingStatus, format string, args ...any) error {
	return &BookingError{Code: CodeInvalidState, Message: fmt.Sprintf(format, args...), Status: status}
}

// CodeOf extracts the error code, or "" for uncoded errors.
func CodeOf(err error) ErrorCode {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
