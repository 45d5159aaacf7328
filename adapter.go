package formstate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// fieldResult is one field's outcome from a validation pass.
type fieldResult struct {
	valid bool
	err   *FieldError // Schema-level error, nil when valid
}

// panicError carries a recovered validator panic.
type panicError struct {
	value any
}

func (p *panicError) Error() string {
	return fmt.Sprintf("validator panicked: %v", p.value)
}

// adapter wraps the supplied validators. Nothing it calls may escape as a panic
// or error: every failure degrades to valid=false for the affected fields.
type adapter struct {
	fields   []string
	mode     Mode
	confirm  *ConfirmRelation
	schema   SchemaValidator
	rules    map[string]FieldValidator
	fallback Fallback
	values   Values
	logger   *zap.Logger
}

// validateField is the per-keystroke check. ok is false when the field has no
// per-field rule and the fallback is FallbackSkip.
func (a *adapter) validateField(ctx context.Context, name, value string) (valid, ok bool) {
	if a.confirm != nil && a.mode == ModeSignUp && name == a.confirm.Field {
		return value == a.values.Value(a.confirm.Reference), true
	}

	if rule, found := a.rules[name]; found {
		if err := a.callField(ctx, rule, value); err != nil {
			a.logFailure(name, err)
			return false, true
		}
		return true, true
	}

	if a.fallback == FallbackSkip {
		return false, false
	}

	results := a.validateAll(ctx, name, value)
	return results[name].valid, true
}

// validateAll runs the full-schema validator over the current values. When
// name is non-empty its value is replaced by value before validating.
func (a *adapter) validateAll(ctx context.Context, name, value string) map[string]fieldResult {
	values := a.collect(name, value)

	var err error
	if a.schema != nil {
		err = a.callSchema(ctx, values)
	} else {
		err = a.composeRules(ctx, values)
	}

	results := make(map[string]fieldResult, len(a.fields))
	if err == nil {
		for _, f := range a.fields {
			results[f] = fieldResult{valid: true}
		}
		return results
	}

	var ve *ValidationError
	if errors.As(err, &ve) && len(ve.FieldErrors) > 0 {
		for _, f := range a.fields {
			if fe, failed := ve.For(f); failed {
				fe := fe
				results[f] = fieldResult{err: &fe}
				continue
			}
			results[f] = fieldResult{valid: true}
		}
		return results
	}

	// Unattributable failure: fail every field closed.
	a.logFailure("", err)
	code := ErrCodeValidator
	var pe *panicError
	if errors.As(err, &pe) {
		code = ErrCodePanic
	}
	for _, f := range a.fields {
		results[f] = fieldResult{err: &FieldError{Field: f, Code: code, Message: err.Error()}}
	}
	return results
}

// composeRules validates every field that has a per-field rule; it stands in
// for the full schema when none was supplied.
func (a *adapter) composeRules(ctx context.Context, values map[string]string) error {
	var fieldErrors []FieldError
	for _, f := range a.fields {
		rule, ok := a.rules[f]
		if !ok {
			continue
		}
		if err := a.callField(ctx, rule, values[f]); err != nil {
			fieldErrors = append(fieldErrors, toFieldError(f, err))
		}
	}
	if len(fieldErrors) > 0 {
		return &ValidationError{FieldErrors: fieldErrors}
	}
	return nil
}

func (a *adapter) collect(name, value string) map[string]string {
	values := make(map[string]string, len(a.fields))
	for _, f := range a.fields {
		values[f] = a.values.Value(f)
	}
	if name != "" {
		values[name] = value
	}
	return values
}

func (a *adapter) callSchema(ctx context.Context, values map[string]string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return a.schema.Validate(ctx, values)
}

func (a *adapter) callField(ctx context.Context, rule FieldValidator, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return rule.ValidateField(ctx, value)
}

func (a *adapter) logFailure(field string, err error) {
	var pe *panicError
	var ve *ValidationError
	var fe FieldError
	switch {
	case errors.As(err, &pe):
		a.logger.Warn("validator panicked", zap.String("field", field), zap.Any("panic", pe.value))
	case errors.As(err, &ve), errors.As(err, &fe):
		a.logger.Debug("field rejected", zap.String("field", field), zap.Error(err))
	default:
		a.logger.Warn("validator failed", zap.String("field", field), zap.Error(err))
	}
}

// toFieldError attributes err to field, keeping the code of a FieldError or
// the first entry of a ValidationError when available.
func toFieldError(field string, err error) FieldError {
	var fe FieldError
	if errors.As(err, &fe) {
		fe.Field = field
		return fe
	}
	var ve *ValidationError
	if errors.As(err, &ve) && len(ve.FieldErrors) > 0 {
		out := ve.FieldErrors[0]
		out.Field = field
		return out
	}
	var pe *panicError
	if errors.As(err, &pe) {
		return FieldError{Field: field, Code: ErrCodePanic, Message: err.Error()}
	}
	return FieldError{Field: field, Code: ErrCodeInvalid, Message: err.Error()}
}
