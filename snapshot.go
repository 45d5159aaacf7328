package formstate

import "time"

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = "1.0"

// Snapshot is a point-in-time capture of every field's flags and derived display.
type Snapshot struct {
	// Version is the snapshot format version (currently "1.0")
	Version string `json:"version"`

	// Timestamp is when the snapshot was taken
	Timestamp time.Time `json:"timestamp"`

	Mode     Mode            `json:"mode"`
	AllValid bool            `json:"allValid"`
	Fields   []FieldSnapshot `json:"fields"`
}

// FieldSnapshot captures one field. Fields appear in declaration order.
type FieldSnapshot struct {
	Name        string       `json:"name"`
	State       FieldState   `json:"state"`
	HasValue    bool         `json:"hasValue"`
	SchemaError *FieldError  `json:"schemaError,omitempty"`
	Display     Display      `json:"display"`
	Label       LabelVariant `json:"label"`
	ShowError   bool         `json:"showError"`
}

// SnapshotOption configures snapshot capture.
type SnapshotOption func(*snapshotConfig)

type snapshotConfig struct {
	exclude map[string]bool
}

// WithExcludeFields leaves the named fields out of the snapshot.
// AllValid still covers every declared field.
func WithExcludeFields(names ...string) SnapshotOption {
	return func(cfg *snapshotConfig) {
		for _, n := range names {
			cfg.exclude[n] = true
		}
	}
}

// Snapshot captures the engine's current state.
func (e *Engine) Snapshot(opts ...SnapshotOption) Snapshot {
	cfg := snapshotConfig{exclude: make(map[string]bool)}
	for _, opt := range opts {
		opt(&cfg)
	}

	snap := Snapshot{
		Version:   SnapshotVersion,
		Timestamp: time.Now(),
		Mode:      e.mode,
		AllValid:  e.AreAllFieldsValid(),
		Fields:    make([]FieldSnapshot, 0, len(e.store.order)),
	}

	for _, name := range e.store.order {
		if cfg.exclude[name] {
			continue
		}
		st, _ := e.store.get(name)
		fs := FieldSnapshot{
			Name:     name,
			State:    st,
			HasValue: e.HasValue(name),
		}
		if fe, ok := e.store.schemaError(name); ok {
			fs.SchemaError = &fe
		}
		fs.Display = ResolveDisplay(st, fs.HasValue, fs.SchemaError != nil)
		fs.Label = e.labels[e.mode][fs.Display]
		fs.ShowError = ShowErrorMessage(st, fs.SchemaError != nil)
		snap.Fields = append(snap.Fields, fs)
	}

	return snap
}
