package formstate

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error_SingleError(t *testing.T) {
	ve := &ValidationError{
		FieldErrors: []FieldError{
			{
				Field:   "email",
				Code:    ErrCodeRequired,
				Message: "is required",
			},
		},
	}

	got := ve.Error()
	want := "form validation failed: 1 error\n  - email: required (is required)"

	if got != want {
		t.Errorf("ValidationError.Error() with single error\ngot:  %q\nwant: %q", got, want)
	}
}

func TestValidationError_Error_MultipleErrors(t *testing.T) {
	ve := &ValidationError{
		FieldErrors: []FieldError{
			{Field: "email", Code: "email", Message: "must be a valid email address"},
			{Field: "password", Code: "min", Message: "must be at least 8 characters"},
			{Field: "confirmPassword", Code: ErrCodeMismatch, Message: "must match password"},
		},
	}

	got := ve.Error()

	if !strings.HasPrefix(got, "form validation failed: 3 errors\n") {
		t.Errorf("ValidationError.Error() header incorrect\ngot: %q", got)
	}

	expectedErrors := []string{
		"  - email: email (must be a valid email address)",
		"  - password: min (must be at least 8 characters)",
		"  - confirmPassword: mismatch (must match password)",
	}

	for _, expected := range expectedErrors {
		if !strings.Contains(got, expected) {
			t.Errorf("ValidationError.Error() missing expected error\ngot:  %q\nwant to contain: %q", got, expected)
		}
	}
}

func TestValidationError_Error_NoErrors(t *testing.T) {
	ve := &ValidationError{}

	got := ve.Error()
	want := "form validation failed: no errors"

	if got != want {
		t.Errorf("ValidationError.Error() with no errors\ngot:  %q\nwant: %q", got, want)
	}
}

func TestValidationError_For(t *testing.T) {
	ve := &ValidationError{
		FieldErrors: []FieldError{
			{Field: "email", Code: "email"},
			{Field: "email", Code: ErrCodeRequired},
		},
	}

	fe, ok := ve.For("email")
	if !ok || fe.Code != "email" {
		t.Errorf("For(email) = %+v, %t; want first entry", fe, ok)
	}
	if _, ok := ve.For("password"); ok {
		t.Errorf("For(password) found an entry that does not exist")
	}
}

func TestValidationError_ErrorsAs(t *testing.T) {
	var err error = fmt.Errorf("wrapped: %w", &ValidationError{FieldErrors: []FieldError{{Field: "email"}}})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As should find *ValidationError")
	}
	if len(ve.FieldErrors) != 1 {
		t.Errorf("expected 1 field error, got %d", len(ve.FieldErrors))
	}
}

func TestFieldError_Error(t *testing.T) {
	fe := FieldError{Field: "email", Code: "email", Message: "must be a valid email address"}
	if got, want := fe.Error(), "email: must be a valid email address"; got != want {
		t.Errorf("FieldError.Error() = %q, want %q", got, want)
	}
}

func TestUnknownFieldWrapsSentinel(t *testing.T) {
	err := unknownField("nope")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknownField should wrap ErrUnknownField, got %v", err)
	}
	if !strings.Contains(err.Error(), `"nope"`) {
		t.Errorf("error should name the field, got %q", err.Error())
	}
}
