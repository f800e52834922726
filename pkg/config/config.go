// Package config provides TOML-based configuration and the XDG
// directory resolution the runtime's host performs before the loop
// starts.
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration tree.
type Config struct {
	General GeneralConfig `toml:"general"`
	Theme   ThemeConfig   `toml:"theme"`
}

// GeneralConfig holds loop-level settings.
type GeneralConfig struct {
	TickRate Duration `toml:"tick_rate"`
	LogLevel string   `toml:"log_level"`
}

// ThemeConfig holds the accent colors the reference component uses.
type ThemeConfig struct {
	Accent string `toml:"accent"`
	Dim    string `toml:"dim"`
	Warn   string `toml:"warn"`
	Crit   string `toml:"crit"`
}

// DefaultConfig returns the defaults applied underneath any loaded
// file.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			TickRate: Duration{250 * time.Millisecond},
			LogLevel: "info",
		},
		Theme: ThemeConfig{
			Accent: "#7C3AED",
			Dim:    "#6B7280",
			Warn:   "#FF9800",
			Crit:   "#F44336",
		},
	}
}

// Load reads configuration from config.toml in ConfigDir. A missing
// file is not an error; defaults apply.
func Load() (*Config, error) {
	return LoadFromFile(filepath.Join(ConfigDir(), "config.toml"))
}

// LoadFromFile reads configuration from a specific path, returning
// defaults when the file does not exist.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from r on top of the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides lets the environment win over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TERMPULSE_LOG"); v != "" {
		cfg.General.LogLevel = v
	}
}
