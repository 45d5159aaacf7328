package formconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Options configures definition loading.
type Options struct {
	// Format: "yaml", "json", "jsonc", or "toml". Auto-detected from extension if empty.
	Format string

	// EnvPrefix enables environment overrides for variables starting with it
	// (matched case-insensitively). Empty = no environment overrides.
	EnvPrefix string

	// Environ supplies the environment as KEY=VALUE pairs. Default: os.Environ.
	Environ func() []string
}

// Load reads and parses a form definition, applies environment overrides,
// and validates the result.
func Load(ctx context.Context, path string, opts Options) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}

	format := opts.Format
	if format == "" {
		format = inferFormat(path)
	}

	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("form file %s: %w", path, err)
	}

	if opts.EnvPrefix != "" {
		environ := opts.Environ
		if environ == nil {
			environ = os.Environ
		}
		if err := applyEnv(def, opts.EnvPrefix, environ()); err != nil {
			return nil, fmt.Errorf("apply environment overrides: %w", err)
		}
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// Parse decodes a definition in the given format.
func Parse(data []byte, format string) (*Definition, error) {
	var def Definition
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case "jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &def); err != nil {
			return nil, fmt.Errorf("parse JSONC: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %q (supported: yaml, json, jsonc, toml)", format)
	}
	return &def, nil
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".jsonc":
		return "jsonc"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
