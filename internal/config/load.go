package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a config file. A missing file yields an empty config bound to path,
// so that a later Save creates it.
func Load(path string) (*Config, error) {
	cfg := &Config{Values: map[string]any{}, path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg.Values); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Values == nil {
		cfg.Values = map[string]any{}
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return cfg, nil
}

// Save writes the config back to its own path atomically.
func Save(cfg *Config) error {
	if cfg.path == "" {
		return fmt.Errorf("saving config: no path")
	}
	data, err := yaml.Marshal(cfg.Values)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	tmp := cfg.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp config %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, cfg.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp config to %s: %w", cfg.path, err)
	}
	return nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks the keys this program interprets.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	for _, key := range []string{IntervalKey, "general." + IntervalKey} {
		raw, ok := cfg.Get(key)
		if !ok || raw == nil {
			continue
		}
		if _, err := parseIntervalValue(raw); err != nil {
			errs = append(errs, fmt.Sprintf("'%s': %s", key, err))
		}
	}

	return errs
}
