package ruleset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"unicode"

	"github.com/Azhovan/formstate"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidRule is returned when a rule string cannot be compiled.
var ErrInvalidRule = errors.New("ruleset: invalid rule")

// Ruleset validates form values against per-field validator tag rules.
// It implements formstate.SchemaValidator and hands out per-field validators.
type Ruleset struct {
	validate *validator.Validate
	rules    map[string]string
	order    []string
	confirm  *formstate.ConfirmRelation
	messages map[string]string
	custom   map[string]func(string) bool
}

// Option configures a Ruleset.
type Option func(*Ruleset)

// WithConfirm adds a cross-field check to the full schema: field must equal reference.
func WithConfirm(field, reference string) Option {
	return func(r *Ruleset) {
		r.confirm = &formstate.ConfirmRelation{Field: field, Reference: reference}
	}
}

// WithMessage overrides the message reported for a validator tag.
func WithMessage(tag, message string) Option {
	return func(r *Ruleset) {
		r.messages[tag] = message
	}
}

// WithRule registers a custom string rule under tag before rules are compiled.
func WithRule(tag string, fn func(string) bool) Option {
	return func(r *Ruleset) {
		r.custom[tag] = fn
	}
}

// WithValidate uses an existing validator instance instead of validator.New().
func WithValidate(v *validator.Validate) Option {
	return func(r *Ruleset) {
		if v != nil {
			r.validate = v
		}
	}
}

// New compiles rules (field name -> validator tag string). Fields with an
// empty rule are declared but always pass.
func New(rules map[string]string, opts ...Option) (*Ruleset, error) {
	r := &Ruleset{
		validate: validator.New(),
		rules:    make(map[string]string, len(rules)),
		messages: make(map[string]string),
		custom: map[string]func(string) bool{
			"letters_digits": hasLetterAndDigit,
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	for tag, fn := range r.custom {
		fn := fn
		err := r.validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
		if err != nil {
			return nil, fmt.Errorf("register rule %s: %w", tag, err)
		}
	}

	for name, rule := range rules {
		if err := r.compile(rule); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidRule, name, err)
		}
		r.rules[name] = rule
		r.order = append(r.order, name)
	}
	sort.Strings(r.order)

	if c := r.confirm; c != nil {
		if _, ok := r.rules[c.Field]; !ok {
			return nil, fmt.Errorf("%w: confirm field %q has no rule entry", ErrInvalidRule, c.Field)
		}
		if _, ok := r.rules[c.Reference]; !ok {
			return nil, fmt.Errorf("%w: reference field %q has no rule entry", ErrInvalidRule, c.Reference)
		}
	}

	return r, nil
}

// compile runs rule once so undefined tags surface here rather than as a
// panic on the first keystroke.
func (r *Ruleset) compile(rule string) (err error) {
	if rule == "" {
		return nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	_ = r.validate.Var("", rule)
	return nil
}

// Fields returns the field names carrying a rule, sorted.
func (r *Ruleset) Fields() []string {
	return append([]string(nil), r.order...)
}

// Rule returns the rule string of field.
func (r *Ruleset) Rule(field string) (string, bool) {
	rule, ok := r.rules[field]
	return rule, ok
}

// Validate checks every field at once. It returns *formstate.ValidationError
// listing each failing field; values missing from the map are treated as "".
func (r *Ruleset) Validate(ctx context.Context, values map[string]string) error {
	data := make(map[string]interface{}, len(r.rules))
	rules := make(map[string]interface{}, len(r.rules))
	for name, rule := range r.rules {
		if rule == "" {
			continue
		}
		data[name] = values[name]
		rules[name] = rule
	}

	var fieldErrors []formstate.FieldError
	failed := make(map[string]bool)
	for name, raw := range r.validate.ValidateMapCtx(ctx, data, rules) {
		err, ok := raw.(error)
		if !ok {
			continue
		}
		fieldErrors = append(fieldErrors, r.toFieldError(name, err))
		failed[name] = true
	}

	if c := r.confirm; c != nil && !failed[c.Field] && values[c.Field] != values[c.Reference] {
		fieldErrors = append(fieldErrors, formstate.FieldError{
			Field:   c.Field,
			Code:    formstate.ErrCodeMismatch,
			Message: r.message(formstate.ErrCodeMismatch, "", fmt.Sprintf("must match %s", c.Reference)),
		})
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	sort.Slice(fieldErrors, func(i, j int) bool {
		return fieldErrors[i].Field < fieldErrors[j].Field
	})
	return &formstate.ValidationError{FieldErrors: fieldErrors}
}

// Field returns the per-field validator of name.
func (r *Ruleset) Field(name string) (formstate.FieldValidator, bool) {
	rule, ok := r.rules[name]
	if !ok {
		return nil, false
	}
	return formstate.FieldValidatorFunc(func(ctx context.Context, value string) error {
		if rule == "" {
			return nil
		}
		if err := r.validate.VarCtx(ctx, value, rule); err != nil {
			return r.toFieldError(name, err)
		}
		return nil
	}), true
}

// FieldValidators returns a per-field validator for every field with a rule.
func (r *Ruleset) FieldValidators() map[string]formstate.FieldValidator {
	out := make(map[string]formstate.FieldValidator, len(r.rules))
	for _, name := range r.order {
		fv, _ := r.Field(name)
		out[name] = fv
	}
	return out
}

// toFieldError converts the first validator failure into a formstate.FieldError.
func (r *Ruleset) toFieldError(field string, err error) formstate.FieldError {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return formstate.FieldError{Field: field, Code: formstate.ErrCodeInvalid, Message: err.Error()}
	}
	fe := ves[0]
	return formstate.FieldError{
		Field:   field,
		Code:    fe.Tag(),
		Message: r.message(fe.Tag(), fe.Param(), ""),
	}
}

func (r *Ruleset) message(tag, param, fallback string) string {
	if msg, ok := r.messages[tag]; ok {
		return msg
	}
	if fallback != "" {
		return fallback
	}
	return defaultMessage(tag, param)
}

func defaultMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", param)
	case "max":
		return fmt.Sprintf("must be at most %s characters", param)
	case "len":
		return fmt.Sprintf("must be exactly %s characters", param)
	case "oneof":
		return fmt.Sprintf("must be one of: %s", param)
	case "letters_digits":
		return "must contain a letter and a digit"
	default:
		return fmt.Sprintf("failed %s validation", tag)
	}
}

func hasLetterAndDigit(s string) bool {
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
