package models

import "errors"

// ErrNotFound is returned when an operation targets an id that does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError carries a client-facing message for a rejected request.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
