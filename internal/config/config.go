// Package config provides configuration file parsing for camusage.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultOperator is shown in the status bar when no operator is configured.
const DefaultOperator = "Bob Paydar"

// Output formats accepted by [output] format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Config is the contents of config.toml.
type Config struct {
	General GeneralConfig `toml:"general"`
	Output  OutputConfig  `toml:"output"`
}

// GeneralConfig holds settings shared by every command.
type GeneralConfig struct {
	// Operator is the name shown in the "Ready - <operator>" status text.
	Operator string `toml:"operator"`
	// Timezone overrides the process local zone for timestamp display.
	// Empty means use the local zone at render time.
	Timezone string `toml:"timezone"`
	// CurrentOnly is the initial state of the current-only filter.
	CurrentOnly bool `toml:"current_only"`
	// Hive is a default offline hive file (.yaml/.yml or .db) to read
	// instead of the live registry.
	Hive string `toml:"hive"`
}

// OutputConfig holds settings for the list command.
type OutputConfig struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

// Dir returns the camusage config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/camusage if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "camusage"), nil
}

// DefaultPath returns {Dir}/config.toml, or "config.toml" if the home
// directory cannot be determined.
func DefaultPath() string {
	dir, err := Dir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		General: GeneralConfig{
			Operator: DefaultOperator,
		},
		Output: OutputConfig{
			Format: FormatTable,
			Color:  true,
		},
	}
}

// Load reads the config file at path. If the file does not exist, defaults
// are returned without an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed in the TOML types.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if err := ValidateFormat(c.Output.Format); err != nil {
		return err
	}
	return nil
}

// ValidateFormat reports an error for unknown output formats.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatTable, FormatJSON, FormatCSV:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or csv)", format)
	}
}

// Location resolves the configured timezone. It returns nil when no zone
// is configured so callers fall back to time.Local at render time.
func (c Config) Location() (*time.Location, error) {
	if c.General.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.General.Timezone, err)
	}
	return loc, nil
}

// StatusText is the static status bar text.
func (c Config) StatusText() string {
	op := strings.TrimSpace(c.General.Operator)
	if op == "" {
		op = DefaultOperator
	}
	return "Ready - " + op
}
