// Package config handles configuration loading from TOML files and
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Config is the root configuration structure.
type Config struct {
	UI    UIConfig    `toml:"ui"`
	Log   LogConfig   `toml:"log"`
	Climb ClimbConfig `toml:"climb"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma syntax highlighting theme.
	// Defaults to "monokai" if unset.
	SyntaxTheme string `toml:"syntax_theme" envconfig:"CLIMBER_SYNTAX_THEME"`
	// TabWidth is the number of cells a tab renders as. Defaults to 4.
	TabWidth int `toml:"tab_width" envconfig:"CLIMBER_TAB_WIDTH"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or "monokai" if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return "monokai"
	}
	return u.SyntaxTheme
}

// TabWidthOrDefault returns the configured tab width or 4 if unset.
func (u UIConfig) TabWidthOrDefault() int {
	if u.TabWidth <= 0 {
		return 4
	}
	return u.TabWidth
}

// LogConfig holds logging settings. The TUI owns stderr, so logs go to a
// file when one is configured.
type LogConfig struct {
	File  string `toml:"file" envconfig:"CLIMBER_LOG_FILE"`
	Level string `toml:"level" envconfig:"CLIMBER_LOG_LEVEL"`
}

// LevelOrDefault returns the configured level or "info" if unset.
func (l LogConfig) LevelOrDefault() string {
	if l.Level == "" {
		return "info"
	}
	return l.Level
}

// MinMaxSteps is the smallest accepted climb.max_steps. The grow driver
// can pass through ancestors sharing the selection's span before it
// commits, so a ceiling of a step or two fails legitimate grows.
const MinMaxSteps = 10

// ClimbConfig holds engine settings.
type ClimbConfig struct {
	// MaxSteps bounds the grow driver loop. Zero selects the engine's
	// built-in ceiling; nonzero values below MinMaxSteps are invalid.
	MaxSteps int `toml:"max_steps" envconfig:"CLIMBER_MAX_STEPS"`
}

// DefaultPath returns the default config file location, or "" when the
// user config dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "climber", "config.toml")
}

// Load reads configuration from a TOML file and applies environment
// variable overrides. A missing file is only an error when its path was
// given explicitly; otherwise defaults apply.
func Load(path string, explicit bool) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if explicit {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
		} else if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := envconfig.Process("climber", cfg); err != nil {
		return nil, fmt.Errorf("failed to read env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	switch c.Log.LevelOrDefault() {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if s := c.Climb.MaxSteps; s < 0 || (s > 0 && s < MinMaxSteps) {
		return fmt.Errorf("climb.max_steps must be 0 or at least %d", MinMaxSteps)
	}
	return nil
}
