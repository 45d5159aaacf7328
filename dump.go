package formstate

import (
	"encoding/json"
	"fmt"
	"io"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for Dump.
type dumpConfig struct {
	asJSON       bool   // Output as JSON instead of text format
	indent       string // Indentation for JSON output (default: "  ")
	withMessages bool   // Include visible error messages in text output
}

// AsJSON outputs the snapshot as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// WithMessages adds the error message under each field whose error is currently shown.
func WithMessages() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withMessages = true
	}
}

// Dump writes every field's flags and derived display to w.
func Dump(w io.Writer, e *Engine, opts ...DumpOption) error {
	if e == nil {
		return fmt.Errorf("engine is nil")
	}

	config := dumpConfig{
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&config)
	}

	snap := e.Snapshot()
	if config.asJSON {
		return dumpAsJSON(w, snap, config)
	}
	return dumpAsText(w, snap, config)
}

func dumpAsText(w io.Writer, snap Snapshot, config dumpConfig) error {
	for _, f := range snap.Fields {
		_, err := fmt.Fprintf(w, "%s: display=%s label=%s focused=%t touched=%t valid=%t submitError=%t\n",
			f.Name, f.Display, f.Label, f.State.Focused, f.State.Touched, f.State.Valid, f.State.SubmitError)
		if err != nil {
			return err
		}
		if config.withMessages && f.ShowError && f.SchemaError != nil {
			if _, err := fmt.Fprintf(w, "  error: %s\n", f.SchemaError.Message); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "all valid: %t\n", snap.AllValid)
	return err
}

func dumpAsJSON(w io.Writer, snap Snapshot, config dumpConfig) error {
	data, err := json.MarshalIndent(snap, "", config.indent)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
