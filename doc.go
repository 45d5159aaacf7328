// Package formstate provides an interactive field-validation engine for forms.
//
// Per field it tracks four independent flags (focused, touched, valid, submitError),
// validates partially on every keystroke, refreshes validity from the full schema
// on blur, and derives display and error-visibility decisions from a fixed priority.
//
// Quick Start:
//
//	values := formstate.NewMapValues(nil)
//	rules, _ := ruleset.New(map[string]string{
//	    "email":    "required,email",
//	    "password": "required,min=8",
//	})
//
//	engine, err := formstate.New([]string{"email", "password"}, values,
//	    formstate.WithSchema(rules),
//	    formstate.WithFieldValidators(rules.FieldValidators()))
//
//	engine.OnFocus("email")
//	values.Set("email", "a@b.com")
//	engine.OnChange(ctx, "email", "a@b.com")
//	engine.OnBlur(ctx, "email")
//	engine.Wait()
//
//	engine.ComputeValidationDisplay("email") // formstate.DisplaySuccess
//
// The engine never stores values; the caller owns them through Values.
// Validator errors and panics never escape: they degrade to valid=false.
//
// See example_test.go and the formconfig package for file-driven setup.
package formstate
