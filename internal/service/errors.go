package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrBannerNotFound  = errors.New("banner not found")
	ErrReviewNotFound  = errors.New("review not found")
)

// ValidationError reports a malformed or incomplete request. Details maps a
// field name to what is wrong with it.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Details))
	for f := range e.Details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return e.Message + ": " + strings.Join(fields, ", ")
}

// NewValidationError returns a ValidationError without field details
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// fieldErrors collects per-field problems
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f fieldErrors) err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Message: message, Details: f}
}
