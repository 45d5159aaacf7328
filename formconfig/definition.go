package formconfig

import (
	"fmt"

	"github.com/Azhovan/formstate"
)

// Definition describes one form: its mode, fields, rules, and engine behavior.
type Definition struct {
	Mode       string                       `yaml:"mode" json:"mode" toml:"mode"`
	Fields     []FieldDefinition            `yaml:"fields" json:"fields" toml:"fields"`
	Confirm    *ConfirmDefinition           `yaml:"confirm,omitempty" json:"confirm,omitempty" toml:"confirm,omitempty"`
	Sequencing bool                         `yaml:"sequencing" json:"sequencing" toml:"sequencing"`
	Fallback   string                       `yaml:"fallback" json:"fallback" toml:"fallback"` // "schema" (default) or "skip"
	Labels     map[string]map[string]string `yaml:"labels,omitempty" json:"labels,omitempty" toml:"labels,omitempty"`
	Messages   map[string]string            `yaml:"messages,omitempty" json:"messages,omitempty" toml:"messages,omitempty"`
}

// FieldDefinition declares one field and its validator rule string.
type FieldDefinition struct {
	Name string `yaml:"name" json:"name" toml:"name"`
	Rule string `yaml:"rule" json:"rule" toml:"rule"`
}

// ConfirmDefinition declares a confirm/reference field pair.
type ConfirmDefinition struct {
	Field     string `yaml:"field" json:"field" toml:"field"`
	Reference string `yaml:"reference" json:"reference" toml:"reference"`
}

// FieldNames returns the declared field names in order.
func (d *Definition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}

// FormMode returns the definition's mode, defaulting to sign-in.
func (d *Definition) FormMode() formstate.Mode {
	if d.Mode == "" {
		return formstate.ModeSignIn
	}
	return formstate.Mode(d.Mode)
}

// KeystrokeFallback returns the parsed fallback, defaulting to FallbackSchema.
func (d *Definition) KeystrokeFallback() formstate.Fallback {
	if d.Fallback == formstate.FallbackSkip.String() {
		return formstate.FallbackSkip
	}
	return formstate.FallbackSchema
}

// Validate checks the definition and returns *formstate.ValidationError with every problem found.
func (d *Definition) Validate() error {
	var errs []formstate.FieldError

	if !d.FormMode().Valid() {
		errs = append(errs, formstate.FieldError{
			Field:   "mode",
			Code:    formstate.ErrCodeOneOf,
			Message: fmt.Sprintf("value %q must be one of: %s, %s", d.Mode, formstate.ModeSignIn, formstate.ModeSignUp),
		})
	}

	switch d.Fallback {
	case "", formstate.FallbackSchema.String(), formstate.FallbackSkip.String():
	default:
		errs = append(errs, formstate.FieldError{
			Field:   "fallback",
			Code:    formstate.ErrCodeOneOf,
			Message: fmt.Sprintf("value %q must be one of: schema, skip", d.Fallback),
		})
	}

	if len(d.Fields) == 0 {
		errs = append(errs, formstate.FieldError{
			Field:   "fields",
			Code:    formstate.ErrCodeRequired,
			Message: "at least one field is required",
		})
	}

	declared := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		path := fmt.Sprintf("fields[%d].name", i)
		if f.Name == "" {
			errs = append(errs, formstate.FieldError{Field: path, Code: formstate.ErrCodeRequired, Message: "field name is required"})
			continue
		}
		if declared[f.Name] {
			errs = append(errs, formstate.FieldError{Field: path, Code: formstate.ErrCodeDuplicate, Message: fmt.Sprintf("field %q declared twice", f.Name)})
			continue
		}
		declared[f.Name] = true
	}

	if c := d.Confirm; c != nil {
		if !declared[c.Field] {
			errs = append(errs, formstate.FieldError{Field: "confirm.field", Code: formstate.ErrCodeUnknownField, Message: fmt.Sprintf("field %q is not declared", c.Field)})
		}
		if !declared[c.Reference] {
			errs = append(errs, formstate.FieldError{Field: "confirm.reference", Code: formstate.ErrCodeUnknownField, Message: fmt.Sprintf("field %q is not declared", c.Reference)})
		}
		if c.Field != "" && c.Field == c.Reference {
			errs = append(errs, formstate.FieldError{Field: "confirm", Code: formstate.ErrCodeInvalid, Message: "field cannot confirm itself"})
		}
	}

	for mode, variants := range d.Labels {
		if !formstate.Mode(mode).Valid() {
			errs = append(errs, formstate.FieldError{Field: "labels." + mode, Code: formstate.ErrCodeOneOf, Message: "unknown mode"})
			continue
		}
		for display := range variants {
			switch formstate.Display(display) {
			case formstate.DisplayNormal, formstate.DisplaySuccess, formstate.DisplayError:
			default:
				errs = append(errs, formstate.FieldError{Field: "labels." + mode + "." + display, Code: formstate.ErrCodeOneOf, Message: "display must be one of: normal, success, error"})
			}
		}
	}

	if len(errs) > 0 {
		return &formstate.ValidationError{FieldErrors: errs}
	}
	return nil
}

// LabelTable converts label overrides to a formstate.LabelTable.
func (d *Definition) LabelTable() formstate.LabelTable {
	table := make(formstate.LabelTable, len(d.Labels))
	for mode, variants := range d.Labels {
		m := make(map[formstate.Display]formstate.LabelVariant, len(variants))
		for display, variant := range variants {
			m[formstate.Display(display)] = formstate.LabelVariant(variant)
		}
		table[formstate.Mode(mode)] = m
	}
	return table
}
