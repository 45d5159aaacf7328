package formconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Azhovan/formstate"
	"github.com/Azhovan/formstate/internal/normalize"
)

const rulesPrefix = "rules."

// applyEnv overrides definition settings from prefixed environment variables.
// Unknown keys under the prefix are reported, not ignored.
func applyEnv(def *Definition, prefix string, environ []string) error {
	var errs []formstate.FieldError

	for _, env := range environ {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key, ok := normalize.TrimPrefixFold(parts[0], prefix)
		if !ok || key == "" {
			continue
		}
		value := parts[1]

		// Normalize: RULES__EMAIL → rules.email
		path := normalize.ToLowerDotPath(key)
		switch {
		case path == "mode":
			def.Mode = value
		case path == "fallback":
			def.Fallback = value
		case path == "sequencing":
			b, err := strconv.ParseBool(value)
			if err != nil {
				errs = append(errs, formstate.FieldError{
					Field:   parts[0],
					Code:    formstate.ErrCodeInvalid,
					Message: fmt.Sprintf("cannot parse %q as bool", value),
				})
				continue
			}
			def.Sequencing = b
		case strings.HasPrefix(path, rulesPrefix):
			if !setRule(def, strings.TrimPrefix(path, rulesPrefix), value) {
				errs = append(errs, formstate.FieldError{
					Field:   parts[0],
					Code:    formstate.ErrCodeUnknownField,
					Message: "no declared field matches this rule override",
				})
			}
		default:
			errs = append(errs, formstate.FieldError{
				Field:   parts[0],
				Code:    formstate.ErrCodeUnknownField,
				Message: "unknown environment override",
			})
		}
	}

	if len(errs) > 0 {
		return &formstate.ValidationError{FieldErrors: errs}
	}
	return nil
}

// setRule sets the rule of the field whose folded name matches key.
func setRule(def *Definition, key, rule string) bool {
	want := normalize.FoldFieldName(key)
	for i := range def.Fields {
		if normalize.FoldFieldName(def.Fields[i].Name) == want {
			def.Fields[i].Rule = rule
			return true
		}
	}
	return false
}
