package analytics

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root of every rejection raised by the engine.
// Callers match it with errors.Is; the concrete *ValidationError carries the
// offending field.
var ErrInvalidInput = errors.New("invalid input")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func invalidAt(field string, idx int, reason string) error {
	return &ValidationError{Field: fmt.Sprintf("%s[%d]", field, idx), Reason: reason}
}
