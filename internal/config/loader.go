package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file based on its extension and overlays it on
// Default(). Keys absent from the file keep their default values.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Settings, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := Decode(b, formatOf(path), &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Training.ProjectKwargs == nil {
		// an explicit null in the file clears the map
		cfg.Training.ProjectKwargs = map[string]any{}
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns Default() when path is empty.
func LoadOrDefault(path string) (Settings, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path)
}

func formatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Decode unmarshals b in the given format (yaml, yml, json, toml) into cfg.
func Decode(b []byte, format string, cfg *Settings) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Unmarshal(b, cfg)
	case "json":
		return json.Unmarshal(b, cfg)
	case "toml":
		return toml.Unmarshal(b, cfg)
	default:
		return unsupportedFormatError{ext: format}
	}
}

// Encode renders v in the given format (yaml, yml, json, toml).
func Encode(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "toml":
		return toml.Marshal(v)
	default:
		return nil, unsupportedFormatError{ext: format}
	}
}
