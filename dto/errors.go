package dto

import "fmt"

// ValidationError reports a field that failed a normalization or coercion
// rule. Index points at the offending element when the field is a
// collection, and is -1 otherwise.
type ValidationError struct {
	Field   string
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("validation failed for field %s[%d]: %s", e.Field, e.Index, e.Message)
	}
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

func newValidationError(field string, index int, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Index:   index,
		Message: fmt.Sprintf(format, args...),
	}
}
