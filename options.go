package formstate

import "go.uber.org/zap"

// Option configures an Engine using the functional options pattern.
type Option func(*engineConfig)

// engineConfig holds options for New.
type engineConfig struct {
	mode      Mode
	confirm   *ConfirmRelation
	schema    SchemaValidator
	rules     map[string]FieldValidator
	labels    LabelTable
	logger    *zap.Logger
	sequenced bool
	fallback  Fallback
}

// WithMode sets the form mode. Default: ModeSignIn.
func WithMode(mode Mode) Option {
	return func(cfg *engineConfig) {
		cfg.mode = mode
	}
}

// WithConfirm declares a confirm/reference pair. Only consulted in ModeSignUp.
func WithConfirm(rel ConfirmRelation) Option {
	return func(cfg *engineConfig) {
		cfg.confirm = &rel
	}
}

// WithSchema sets the full-schema validator used at blur time.
// Without one, blur-time validation composes the per-field validators.
func WithSchema(v SchemaValidator) Option {
	return func(cfg *engineConfig) {
		cfg.schema = v
	}
}

// WithFieldValidators sets the per-field validators used on every keystroke.
// The map is copied and resolved once; every key must be a declared field.
func WithFieldValidators(rules map[string]FieldValidator) Option {
	return func(cfg *engineConfig) {
		if cfg.rules == nil {
			cfg.rules = make(map[string]FieldValidator, len(rules))
		}
		for name, rule := range rules {
			cfg.rules[name] = rule
		}
	}
}

// WithLabelVariants overrides entries of the label style table.
func WithLabelVariants(table LabelTable) Option {
	return func(cfg *engineConfig) {
		for mode, variants := range table {
			if cfg.labels[mode] == nil {
				cfg.labels[mode] = make(map[Display]LabelVariant, len(variants))
			}
			for display, variant := range variants {
				cfg.labels[mode][display] = variant
			}
		}
	}
}

// WithLogger sets the logger. Default: zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *engineConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSequencing discards validation results superseded by a newer validation
// of the same field. Default: false (the last validation to resolve wins).
func WithSequencing(enabled bool) Option {
	return func(cfg *engineConfig) {
		cfg.sequenced = enabled
	}
}

// WithKeystrokeFallback controls keystroke validation of fields without a
// per-field validator. Default: FallbackSchema.
func WithKeystrokeFallback(f Fallback) Option {
	return func(cfg *engineConfig) {
		cfg.fallback = f
	}
}
