package formstate

// Display is the 3-way visual style category of a field.
type Display string

const (
	DisplayNormal  Display = "normal"
	DisplaySuccess Display = "success"
	DisplayError   Display = "error"
)

// LabelVariant names a mode-specific label style.
type LabelVariant string

// LabelTable maps a mode and display category to a label variant.
type LabelTable map[Mode]map[Display]LabelVariant

// DefaultLabelTable returns a fresh copy of the built-in label variants.
func DefaultLabelTable() LabelTable {
	return LabelTable{
		ModeSignIn: {
			DisplaySuccess: "signin-label-success",
			DisplayError:   "signin-label-error",
			DisplayNormal:  "signin-label",
		},
		ModeSignUp: {
			DisplaySuccess: "signup-label-success",
			DisplayError:   "signup-label-error",
			DisplayNormal:  "signup-label",
		},
	}
}

// ResolveDisplay derives the display category from a field's flags, whether it
// has a value, and whether the schema currently reports an error for it.
// Priority: submitError > success > schema error while touched > normal.
func ResolveDisplay(st FieldState, hasValue, schemaErr bool) Display {
	if st.SubmitError {
		return DisplayError
	}
	if st.Focused {
		// Touched is not required while typing.
		if hasValue && st.Valid {
			return DisplaySuccess
		}
		return DisplayNormal
	}
	if hasValue && st.Valid && !schemaErr {
		return DisplaySuccess
	}
	if schemaErr && st.Touched {
		return DisplayError
	}
	return DisplayNormal
}

// ShowErrorMessage reports whether error text should be rendered. It is
// suppressed while the field is focused, even when already touched.
func ShowErrorMessage(st FieldState, schemaErr bool) bool {
	return !st.Focused && schemaErr && st.Touched
}

// HasValue reports whether name currently holds a non-empty value.
func (e *Engine) HasValue(name string) bool {
	return e.values.Value(name) != ""
}

// HasSchemaError reports whether the schema validator rejected name at its last blur.
func (e *Engine) HasSchemaError(name string) bool {
	_, ok := e.store.schemaError(name)
	return ok
}

// ErrorMessage returns the schema error message for name, or "".
func (e *Engine) ErrorMessage(name string) string {
	fe, _ := e.store.schemaError(name)
	return fe.Message
}

// ComputeValidationDisplay returns the display category of name.
// Unknown fields resolve to DisplayNormal.
func (e *Engine) ComputeValidationDisplay(name string) Display {
	st, ok := e.store.get(name)
	if !ok {
		return DisplayNormal
	}
	return ResolveDisplay(st, e.HasValue(name), e.HasSchemaError(name))
}

// ShouldShowErrorMessage reports whether name's error text should be rendered.
func (e *Engine) ShouldShowErrorMessage(name string) bool {
	st, ok := e.store.get(name)
	if !ok {
		return false
	}
	return ShowErrorMessage(st, e.HasSchemaError(name))
}

// LabelStyle returns the label variant for name in the engine's mode.
func (e *Engine) LabelStyle(name string) LabelVariant {
	return e.labels[e.mode][e.ComputeValidationDisplay(name)]
}
