package formstate

import (
	"context"
	"sync"
)

// Mode selects the label style table. It has no other behavioral effect,
// except that confirm relations only apply in ModeSignUp.
type Mode string

const (
	ModeSignIn Mode = "sign-in"
	ModeSignUp Mode = "sign-up"
)

// Valid reports whether m is a known form mode.
func (m Mode) Valid() bool {
	return m == ModeSignIn || m == ModeSignUp
}

// FieldState holds the four independent UI flags of one field.
// Values are immutable records: the store replaces them, never flips them in place.
type FieldState struct {
	Focused     bool `json:"focused"`
	Touched     bool `json:"touched"`     // Lost focus at least once, or marked by a failed submission
	Valid       bool `json:"valid"`       // Result of the most recent validation
	SubmitError bool `json:"submitError"` // Whole-form submission failure is displayed
}

// ConfirmRelation declares a field that must equal a reference field's current value.
type ConfirmRelation struct {
	Field     string // e.g. "confirmPassword"
	Reference string // e.g. "password"
}

// Values exposes the externally owned input values. The engine only reads them,
// possibly from validation goroutines, so implementations must be safe for concurrent reads.
type Values interface {
	Value(field string) string
}

// MapValues is a concurrency-safe Values backed by a map.
type MapValues struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMapValues returns a MapValues seeded with initial (which is copied).
func NewMapValues(initial map[string]string) *MapValues {
	m := make(map[string]string, len(initial))
	for k, v := range initial {
		m[k] = v
	}
	return &MapValues{m: m}
}

// Value returns the current value of field ("" if unset).
func (v *MapValues) Value(field string) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.m[field]
}

// Set stores value for field.
func (v *MapValues) Set(field, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.m == nil {
		v.m = make(map[string]string)
	}
	v.m[field] = value
}

// SchemaValidator validates the entire field set at once.
// Return *ValidationError for field-level failures; any other error fails every field.
type SchemaValidator interface {
	Validate(ctx context.Context, values map[string]string) error
}

// SchemaValidatorFunc is a function adapter for SchemaValidator.
type SchemaValidatorFunc func(ctx context.Context, values map[string]string) error

func (f SchemaValidatorFunc) Validate(ctx context.Context, values map[string]string) error {
	return f(ctx, values)
}

// FieldValidator validates a single field's value against only that field's rule.
type FieldValidator interface {
	ValidateField(ctx context.Context, value string) error
}

// FieldValidatorFunc is a function adapter for FieldValidator.
type FieldValidatorFunc func(ctx context.Context, value string) error

func (f FieldValidatorFunc) ValidateField(ctx context.Context, value string) error {
	return f(ctx, value)
}

// Fallback controls keystroke validation for fields without a FieldValidator.
type Fallback int

const (
	// FallbackSchema runs the full-schema validator and keeps the field's result.
	FallbackSchema Fallback = iota
	// FallbackSkip leaves the field's valid flag untouched.
	FallbackSkip
)

func (f Fallback) String() string {
	switch f {
	case FallbackSchema:
		return "schema"
	case FallbackSkip:
		return "skip"
	default:
		return "unknown"
	}
}
