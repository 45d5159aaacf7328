package formstate

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

var errNoAt = errors.New("must contain @")

// emailRule accepts any value containing "@".
var emailRule = FieldValidatorFunc(func(ctx context.Context, value string) error {
	if !strings.Contains(value, "@") {
		return FieldError{Code: "email", Message: "must be a valid email address"}
	}
	return nil
})

// requiredRule accepts any non-empty value.
var requiredRule = FieldValidatorFunc(func(ctx context.Context, value string) error {
	if value == "" {
		return FieldError{Code: ErrCodeRequired, Message: "is required"}
	}
	return nil
})

// countingSchema checks email and password and counts its invocations.
type countingSchema struct {
	calls atomic.Int32
}

func (s *countingSchema) Validate(ctx context.Context, values map[string]string) error {
	s.calls.Add(1)
	var fieldErrors []FieldError
	if !strings.Contains(values["email"], "@") {
		fieldErrors = append(fieldErrors, FieldError{Field: "email", Code: "email", Message: "must be a valid email address"})
	}
	if values["password"] == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "password", Code: ErrCodeRequired, Message: "is required"})
	}
	if len(fieldErrors) > 0 {
		return &ValidationError{FieldErrors: fieldErrors}
	}
	return nil
}

func newSignInEngine(t *testing.T, opts ...Option) (*Engine, *MapValues, *countingSchema) {
	t.Helper()
	values := NewMapValues(nil)
	schema := &countingSchema{}
	base := []Option{
		WithMode(ModeSignIn),
		WithSchema(schema),
		WithFieldValidators(map[string]FieldValidator{
			"email":    emailRule,
			"password": requiredRule,
		}),
	}
	e, err := New([]string{"email", "password"}, values, append(base, opts...)...)
	require.NoError(t, err)
	return e, values, schema
}

func mustState(t *testing.T, e *Engine, name string) FieldState {
	t.Helper()
	st, ok := e.State(name)
	require.True(t, ok, "field %q should exist", name)
	return st
}

func change(t *testing.T, e *Engine, values *MapValues, name, value string) {
	t.Helper()
	values.Set(name, value)
	p, err := e.OnChange(context.Background(), name, value)
	require.NoError(t, err)
	require.NoError(t, p.Wait(context.Background()))
}

func blur(t *testing.T, e *Engine, name string) {
	t.Helper()
	p, err := e.OnBlur(context.Background(), name)
	require.NoError(t, err)
	require.NoError(t, p.Wait(context.Background()))
}
