// Package ruleset builds formstate validators from validator tag rules.
//
// Each field carries a go-playground/validator rule string ("required,email").
// A Ruleset validates one field on every keystroke and the whole form on blur.
//
// Example:
//
//	rules, err := ruleset.New(map[string]string{
//	    "password":        "required,min=8",
//	    "confirmPassword": "required",
//	}, ruleset.WithConfirm("confirmPassword", "password"))
package ruleset
