package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromReader(t *testing.T) {
	t.Setenv("TERMPULSE_LOG", "")
	input := `
[general]
tick_rate = "100ms"
log_level = "debug"

[theme]
accent = "#FF00FF"
`
	cfg, err := LoadFromReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.General.TickRate.Duration != 100*time.Millisecond {
		t.Errorf("TickRate = %v, want 100ms", cfg.General.TickRate.Duration)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.General.LogLevel)
	}
	if cfg.Theme.Accent != "#FF00FF" {
		t.Errorf("Theme.Accent = %q, want override", cfg.Theme.Accent)
	}
	// Unspecified fields keep defaults.
	if cfg.Theme.Warn != "#FF9800" {
		t.Errorf("Theme.Warn = %q, want default", cfg.Theme.Warn)
	}
}

func TestLoadFromFileMissingUsesDefaults(t *testing.T) {
	t.Setenv("TERMPULSE_LOG", "")
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromFile(missing): %v", err)
	}
	if cfg.General.TickRate.Duration != 250*time.Millisecond {
		t.Errorf("TickRate = %v, want default 250ms", cfg.General.TickRate.Duration)
	}
	if cfg.General.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.General.LogLevel)
	}
}

func TestLogLevelEnvOverride(t *testing.T) {
	t.Setenv("TERMPULSE_LOG", "trace")

	cfg, err := LoadFromReader(strings.NewReader(`[general]
log_level = "warn"
`))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.General.LogLevel != "trace" {
		t.Errorf("LogLevel = %q, want env override trace", cfg.General.LogLevel)
	}
}

func TestInvalidDurationRejected(t *testing.T) {
	for _, bad := range []string{"not-a-duration", "-5s"} {
		_, err := LoadFromReader(strings.NewReader(
			"[general]\ntick_rate = \"" + bad + "\"\n"))
		if err == nil {
			t.Errorf("tick_rate %q accepted, want error", bad)
		}
	}
}

func TestDataDirOverride(t *testing.T) {
	t.Setenv("TERMPULSE_DATA", "/tmp/custom-data")
	if got := DataDir(); got != "/tmp/custom-data" {
		t.Errorf("DataDir = %q, want override", got)
	}
}

func TestConfigDirOverride(t *testing.T) {
	t.Setenv("TERMPULSE_CONFIG", "/tmp/custom-config")
	if got := ConfigDir(); got != "/tmp/custom-config" {
		t.Errorf("ConfigDir = %q, want override", got)
	}
}

func TestDirsFallBackToXDG(t *testing.T) {
	t.Setenv("TERMPULSE_DATA", "")
	t.Setenv("TERMPULSE_CONFIG", "")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	if got := DataDir(); got != filepath.Join("/xdg/data", "termpulse") {
		t.Errorf("DataDir = %q", got)
	}
	if got := ConfigDir(); got != filepath.Join("/xdg/config", "termpulse") {
		t.Errorf("ConfigDir = %q", got)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	d := Duration{1500 * time.Millisecond}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var back Duration
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if back.Duration != d.Duration {
		t.Errorf("round trip = %v, want %v", back.Duration, d.Duration)
	}
}
