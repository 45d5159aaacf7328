package formconfig

import (
	"fmt"

	"github.com/Azhovan/formstate"
	"github.com/Azhovan/formstate/ruleset"
)

// Build validates def and constructs an engine wired to a ruleset built from
// its field rules. Caller options are applied after the definition's own.
func Build(def *Definition, values formstate.Values, opts ...formstate.Option) (*formstate.Engine, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is nil")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	rs, err := Ruleset(def)
	if err != nil {
		return nil, err
	}

	engineOpts := []formstate.Option{
		formstate.WithMode(def.FormMode()),
		formstate.WithSchema(rs),
		formstate.WithFieldValidators(rs.FieldValidators()),
		formstate.WithSequencing(def.Sequencing),
		formstate.WithKeystrokeFallback(def.KeystrokeFallback()),
		formstate.WithLabelVariants(def.LabelTable()),
	}
	if c := def.Confirm; c != nil {
		engineOpts = append(engineOpts, formstate.WithConfirm(formstate.ConfirmRelation{
			Field:     c.Field,
			Reference: c.Reference,
		}))
	}
	engineOpts = append(engineOpts, opts...)

	engine, err := formstate.New(def.FieldNames(), values, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return engine, nil
}

// Ruleset compiles the definition's field rules. The confirm check joins the
// full schema only in sign-up mode, matching the engine's keystroke check.
func Ruleset(def *Definition) (*ruleset.Ruleset, error) {
	rules := make(map[string]string, len(def.Fields))
	for _, f := range def.Fields {
		rules[f.Name] = f.Rule
	}

	var opts []ruleset.Option
	for tag, msg := range def.Messages {
		opts = append(opts, ruleset.WithMessage(tag, msg))
	}
	if c := def.Confirm; c != nil && def.FormMode() == formstate.ModeSignUp {
		opts = append(opts, ruleset.WithConfirm(c.Field, c.Reference))
	}

	rs, err := ruleset.New(rules, opts...)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}
	return rs, nil
}
