// Package config handles configuration loading and validation for waggle.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/waggle/internal/core/feedback"
)

// Config holds the application configuration.
type Config struct {
	// Layout selects the pane arrangement. Empty means "pick from the
	// terminal size at startup".
	Layout string `yaml:"layout"`
	// Language selects the i18n string table (e.g. "en", "zh-TW").
	Language string `yaml:"language"`
	// StringsFile optionally points at a yaml translation table that
	// overrides the built-in one.
	StringsFile string `yaml:"strings_file"`
	// PreviewHeight is the last-feedback card's height budget in lines
	// before it is marked truncated.
	PreviewHeight int `yaml:"preview_height"`

	DataDir string `yaml:"-"` // set by caller, not from config file
}

// Default returns the configuration used when no file exists.
func Default(dataDir string) Config {
	return Config{
		Language:      "en",
		PreviewHeight: 10,
		DataDir:       dataDir,
	}
}

// Load reads the config file at path. A missing file yields defaults;
// a malformed file is an error.
func Load(path, dataDir string) (Config, error) {
	cfg := Default(dataDir)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("validate config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Layout != "" && feedback.ParseLayoutMode(c.Layout) != feedback.LayoutMode(c.Layout) {
		return fmt.Errorf("unknown layout %q", c.Layout)
	}
	if c.PreviewHeight <= 0 {
		return fmt.Errorf("preview_height must be positive, got %d", c.PreviewHeight)
	}
	return nil
}

// LayoutMode resolves the configured layout, falling back to the given
// default when the config does not pin one.
func (c *Config) LayoutMode(fallback feedback.LayoutMode) feedback.LayoutMode {
	if c.Layout == "" {
		return fallback
	}
	return feedback.ParseLayoutMode(c.Layout)
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "waggle", "config.yml")
	}
	return "config.yml"
}

// DefaultDataDir returns the default data directory location.
func DefaultDataDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".local", "share", "waggle")
	}
	return ".waggle"
}
