package services

import (
	"errors"
	"fmt"

	"ecoleta/internal/repository"
)

var (
	// ErrPointNotFound is returned when a requested point does not exist.
	ErrPointNotFound = repository.ErrPointNotFound

	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrPersistence wraps store failures. Nothing from the failed unit of work is kept.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError reports a rejected request attribute.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
