package validators

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidUUID checks for the canonical hyphenated form (xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx)
// uuid.Parse alone also accepts urn: and braced forms, which we don't want echoed back in headers
func IsValidUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// ValidateUUID validates and returns an error if invalid
func ValidateUUID(value string, fieldName string) error {
	if value == "" {
		return NewValidationError(fieldName, "UUID is required")
	}
	if !IsValidUUID(value) {
		return NewValidationError(fieldName, "invalid UUID format (expected: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx)")
	}
	return nil
}
