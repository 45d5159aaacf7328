package formstate

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Engine is the interactive field-validation controller of one form instance.
// Event handlers may be called from any goroutine; accessors are synchronous
// and reflect whatever validation results have been applied so far.
type Engine struct {
	store     *store
	adapter   *adapter
	values    Values
	mode      Mode
	labels    LabelTable
	sequenced bool
	logger    *zap.Logger
	inflight  sync.WaitGroup
}

// New creates an Engine for the declared fields, all flags false.
func New(fields []string, values Values, opts ...Option) (*Engine, error) {
	cfg := engineConfig{
		mode:     ModeSignIn,
		labels:   DefaultLabelTable(),
		logger:   zap.NewNop(),
		fallback: FallbackSchema,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	if values == nil {
		return nil, ErrNilValues
	}
	if !cfg.mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, cfg.mode)
	}

	declared := make(map[string]bool, len(fields))
	for _, name := range fields {
		if name == "" {
			return nil, ErrEmptyFieldName
		}
		if declared[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		declared[name] = true
	}

	if c := cfg.confirm; c != nil {
		if c.Field == c.Reference {
			return nil, fmt.Errorf("%w: %q confirms itself", ErrInvalidConfirm, c.Field)
		}
		for _, name := range []string{c.Field, c.Reference} {
			if !declared[name] {
				return nil, fmt.Errorf("confirm relation: %w", unknownField(name))
			}
		}
	}
	for name := range cfg.rules {
		if !declared[name] {
			return nil, fmt.Errorf("field validator: %w", unknownField(name))
		}
	}

	e := &Engine{
		store:     newStore(fields),
		values:    values,
		mode:      cfg.mode,
		labels:    cfg.labels,
		sequenced: cfg.sequenced,
		logger:    cfg.logger,
	}
	e.adapter = &adapter{
		fields:   e.store.fields(),
		mode:     cfg.mode,
		confirm:  cfg.confirm,
		schema:   cfg.schema,
		rules:    cfg.rules,
		fallback: cfg.fallback,
		values:   values,
		logger:   cfg.logger,
	}
	return e, nil
}

// Fields returns the declared field names in declaration order.
func (e *Engine) Fields() []string {
	return e.store.fields()
}

// Mode returns the form mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// State returns the current flags of name.
func (e *Engine) State(name string) (FieldState, bool) {
	return e.store.get(name)
}

// OnFocus marks name focused, clears its submit error and its schema-level error.
// Touched and valid are left unchanged.
func (e *Engine) OnFocus(name string) error {
	st, ok := e.store.patch(name, func(s FieldState) FieldState {
		s.Focused = true
		s.SubmitError = false
		return s
	})
	if !ok {
		return unknownField(name)
	}
	e.store.clearSchemaError(name)
	e.logEvent("focus", name, st)
	return nil
}

// OnBlur marks name blurred and touched, then refreshes its valid flag and
// schema-level error from the full-schema validator asynchronously.
func (e *Engine) OnBlur(ctx context.Context, name string) (*Pending, error) {
	st, ok := e.store.patch(name, func(s FieldState) FieldState {
		s.Focused = false
		s.Touched = true
		return s
	})
	if !ok {
		return nil, unknownField(name)
	}
	e.logEvent("blur", name, st)

	t := e.store.begin(name)
	return e.run(name, func(p *Pending) {
		res := e.adapter.validateAll(ctx, "", "")[name]
		p.valid = res.valid
		p.applied = e.store.apply(name, t, e.sequenced, setValid(res.valid), true, res.err)
	}), nil
}

// OnChange re-validates name against value asynchronously. The value itself
// is owned by the caller; touched is not altered.
func (e *Engine) OnChange(ctx context.Context, name, value string) (*Pending, error) {
	if !e.store.has(name) {
		return nil, unknownField(name)
	}

	t := e.store.begin(name)
	return e.run(name, func(p *Pending) {
		valid, ok := e.adapter.validateField(ctx, name, value)
		if !ok {
			return
		}
		p.valid = valid
		p.applied = e.store.apply(name, t, e.sequenced, setValid(valid), false, nil)
	}), nil
}

// SetSubmitError marks every field as failed by a rejected submission:
// submitError and touched set, valid cleared.
func (e *Engine) SetSubmitError() {
	e.store.patchAll(func(s FieldState) FieldState {
		s.SubmitError = true
		s.Touched = true
		s.Valid = false
		return s
	})
	e.logger.Debug("submit error set", zap.Int("fields", len(e.store.order)))
}

// ClearSubmitError clears submitError on every field; nothing else changes.
func (e *Engine) ClearSubmitError() {
	e.store.patchAll(func(s FieldState) FieldState {
		s.SubmitError = false
		return s
	})
	e.logger.Debug("submit error cleared")
}

// Reset returns every field to its initial state. Validations still in flight
// are discarded when they resolve.
func (e *Engine) Reset() {
	e.store.reset()
	e.logger.Debug("form reset")
}

// Wait blocks until every validation started so far has resolved.
func (e *Engine) Wait() {
	e.inflight.Wait()
}

// AreAllFieldsValid reports whether every declared field is currently valid.
// It is recomputed on every call.
func (e *Engine) AreAllFieldsValid() bool {
	for _, name := range e.store.order {
		st, _ := e.store.get(name)
		if !st.Valid {
			return false
		}
	}
	return true
}

func (e *Engine) run(name string, validate func(p *Pending)) *Pending {
	p := &Pending{field: name, done: make(chan struct{})}
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		defer close(p.done)
		validate(p)
		if !p.applied {
			e.logger.Debug("validation result discarded", zap.String("field", name))
			return
		}
		if st, ok := e.store.get(name); ok {
			e.logEvent("validated", name, st)
		}
	}()
	return p
}

func (e *Engine) logEvent(event, name string, st FieldState) {
	e.logger.Debug(event,
		zap.String("field", name),
		zap.Bool("focused", st.Focused),
		zap.Bool("touched", st.Touched),
		zap.Bool("valid", st.Valid),
		zap.Bool("submitError", st.SubmitError))
}

func setValid(valid bool) func(FieldState) FieldState {
	return func(s FieldState) FieldState {
		s.Valid = valid
		return s
	}
}

// Pending tracks one asynchronous validation started by OnBlur or OnChange.
type Pending struct {
	field   string
	done    chan struct{}
	valid   bool
	applied bool
}

// Field returns the validated field's name.
func (p *Pending) Field() string {
	return p.field
}

// Done is closed once the validation has resolved.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the validation resolves or ctx is done.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Valid returns the validation result. Only meaningful after Done is closed.
func (p *Pending) Valid() bool {
	<-p.done
	return p.valid
}

// Applied reports whether the result was written to the field's state. It is
// false when the result was superseded, discarded by Reset, or skipped.
func (p *Pending) Applied() bool {
	<-p.done
	return p.applied
}
