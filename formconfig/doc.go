// Package formconfig loads form definitions from YAML, JSON, JSONC, or TOML files,
// applies environment overrides, and builds a configured formstate.Engine.
//
// Format is auto-detected from extension (.yaml, .yml, .json, .jsonc, .toml).
//
// Example:
//
//	def, err := formconfig.Load(ctx, "signup.yaml", formconfig.Options{EnvPrefix: "FORMSTATE_"})
//	engine, err := formconfig.Build(def, values, formstate.WithLogger(logger))
//
// Environment keys (with the prefix stripped): MODE, SEQUENCING, FALLBACK,
// RULES__<FIELD>. Field names match ignoring case, underscores, and dashes.
package formconfig
