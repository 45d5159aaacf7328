package formstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDisplay(t *testing.T) {
	tests := []struct {
		name      string
		state     FieldState
		hasValue  bool
		schemaErr bool
		want      Display
	}{
		{"initial", FieldState{}, false, false, DisplayNormal},
		{"focused valid with value", FieldState{Focused: true, Valid: true}, true, false, DisplaySuccess},
		{"focused valid without value", FieldState{Focused: true, Valid: true}, false, false, DisplayNormal},
		{"focused invalid", FieldState{Focused: true}, true, false, DisplayNormal},
		{"focused ignores schema error", FieldState{Focused: true, Touched: true}, true, true, DisplayNormal},
		{"focused with submit error", FieldState{Focused: true, Valid: true, SubmitError: true}, true, false, DisplayError},
		{"blurred valid", FieldState{Touched: true, Valid: true}, true, false, DisplaySuccess},
		{"blurred valid but schema error", FieldState{Touched: true, Valid: true}, true, true, DisplayError},
		{"blurred schema error untouched", FieldState{Valid: true}, true, true, DisplayNormal},
		{"blurred schema error touched", FieldState{Touched: true}, true, true, DisplayError},
		{"blurred invalid no schema error", FieldState{Touched: true}, true, false, DisplayNormal},
		{"submit error beats success", FieldState{Touched: true, Valid: true, SubmitError: true}, true, false, DisplayError},
		{"submit error without touch", FieldState{SubmitError: true}, false, false, DisplayError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDisplay(tt.state, tt.hasValue, tt.schemaErr))
		})
	}
}

func TestShowErrorMessage(t *testing.T) {
	tests := []struct {
		name      string
		state     FieldState
		schemaErr bool
		want      bool
	}{
		{"touched blurred with error", FieldState{Touched: true}, true, true},
		{"touched focused with error", FieldState{Touched: true, Focused: true}, true, false},
		{"untouched with error", FieldState{}, true, false},
		{"touched without error", FieldState{Touched: true}, false, false},
		{"submit error alone", FieldState{Touched: true, SubmitError: true}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShowErrorMessage(tt.state, tt.schemaErr))
		})
	}
}

func TestResolveDisplay_Deterministic(t *testing.T) {
	st := FieldState{Touched: true, Valid: true}
	first := ResolveDisplay(st, true, false)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ResolveDisplay(st, true, false))
	}
}

func TestLabelStyle_ByMode(t *testing.T) {
	for _, tt := range []struct {
		mode    Mode
		normal  LabelVariant
		success LabelVariant
		failure LabelVariant
	}{
		{ModeSignIn, "signin-label", "signin-label-success", "signin-label-error"},
		{ModeSignUp, "signup-label", "signup-label-success", "signup-label-error"},
	} {
		t.Run(string(tt.mode), func(t *testing.T) {
			values := NewMapValues(nil)
			e, err := New([]string{"email"}, values,
				WithMode(tt.mode),
				WithFieldValidators(map[string]FieldValidator{"email": emailRule}))
			require.NoError(t, err)

			assert.Equal(t, tt.normal, e.LabelStyle("email"))

			change(t, e, values, "email", "a@b.com")
			assert.Equal(t, tt.success, e.LabelStyle("email"))

			e.SetSubmitError()
			assert.Equal(t, tt.failure, e.LabelStyle("email"))
		})
	}
}

func TestWithLabelVariants_OverridesEntries(t *testing.T) {
	e, err := New([]string{"email"}, NewMapValues(nil),
		WithLabelVariants(LabelTable{
			ModeSignIn: {DisplayNormal: "plain"},
		}))
	require.NoError(t, err)

	assert.Equal(t, LabelVariant("plain"), e.LabelStyle("email"))

	e.SetSubmitError()
	assert.Equal(t, LabelVariant("signin-label-error"), e.LabelStyle("email"), "untouched entries keep defaults")
}

func TestDefaultLabelTable_ReturnsCopy(t *testing.T) {
	table := DefaultLabelTable()
	table[ModeSignIn][DisplayNormal] = "changed"

	assert.Equal(t, LabelVariant("signin-label"), DefaultLabelTable()[ModeSignIn][DisplayNormal])
}

func TestHasValue(t *testing.T) {
	values := NewMapValues(nil)
	e, err := New([]string{"email"}, values)
	require.NoError(t, err)

	assert.False(t, e.HasValue("email"))
	values.Set("email", "x")
	assert.True(t, e.HasValue("email"))
}
