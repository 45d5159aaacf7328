package formstate

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for field validation failures.
const (
	ErrCodeRequired     = "required"
	ErrCodeMismatch     = "mismatch"
	ErrCodeInvalid      = "invalid"
	ErrCodeValidator    = "validator_error"
	ErrCodePanic        = "validator_panic"
	ErrCodeUnknownField = "unknown_field"
	ErrCodeDuplicate    = "duplicate"
	ErrCodeOneOf        = "oneof"
)

// Construction and event errors.
var (
	// ErrNoFields is returned when the engine is constructed without fields.
	ErrNoFields = errors.New("formstate: no fields declared")

	// ErrEmptyFieldName is returned when a declared field name is empty.
	ErrEmptyFieldName = errors.New("formstate: empty field name")

	// ErrDuplicateField is returned when a field name is declared twice.
	ErrDuplicateField = errors.New("formstate: duplicate field")

	// ErrUnknownField is returned for names outside the declared field list.
	ErrUnknownField = errors.New("formstate: unknown field")

	// ErrNilValues is returned when the engine is constructed without a Values source.
	ErrNilValues = errors.New("formstate: values source is nil")

	// ErrInvalidMode is returned for modes other than sign-in and sign-up.
	ErrInvalidMode = errors.New("formstate: invalid mode")

	// ErrInvalidConfirm is returned when a confirm relation is malformed.
	ErrInvalidConfirm = errors.New("formstate: invalid confirm relation")
)

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	FieldErrors []FieldError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "form validation failed: no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		b.WriteString("form validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "form validation failed: %d errors\n", len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.Field, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// For returns the first failure recorded for field.
func (e *ValidationError) For(field string) (FieldError, bool) {
	for _, fe := range e.FieldErrors {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// FieldError represents a single field validation failure.
type FieldError struct {
	Field   string `json:"field"`   // Field name (e.g., "email")
	Code    string `json:"code"`    // Error code (e.g., "required", "email")
	Message string `json:"message"` // Human-readable description
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

func unknownField(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, name)
}
