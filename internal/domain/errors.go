package domain

import (
	"errors"
	"strings"
)

// Common domain errors
var (
	ErrEventNotFound = errors.New("event not found")

	ErrInvalidPageNumber = errors.New("Page number must be greater than 0")
	ErrInvalidPageSize   = errors.New("Page size must be greater than 0")
	ErrPageSizeExceeded  = errors.New("Page size cannot exceed 100")
)

// ValidationError aggregates all field violations of a request.
// Validation always runs to completion so the caller sees every problem
// at once, not just the first.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// NewValidationError creates a ValidationError from the given violations
func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// IsNotFound returns true if the error is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}

// IsInvalidArgument returns true if the error is a validation or paging error
func IsInvalidArgument(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrInvalidPageNumber) ||
		errors.Is(err, ErrInvalidPageSize) ||
		errors.Is(err, ErrPageSizeExceeded)
}
