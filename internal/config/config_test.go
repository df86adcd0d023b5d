package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/montage/internal/timeline/history"
	"github.com/dshills/montage/internal/timeline/keyframe"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "montage.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.History.MaxEntries != history.DefaultMaxEntries {
		t.Errorf("MaxEntries = %d", cfg.History.MaxEntries)
	}
	if cfg.DefaultEasing() != keyframe.Linear {
		t.Errorf("DefaultEasing = %v", cfg.DefaultEasing())
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxEntries != history.DefaultMaxEntries {
		t.Error("missing file did not yield defaults")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[history]
max_entries = 50

[defaults]
video_track_name = "Picture"
easing = "ease-in-out"

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("MaxEntries = %d, want 50", cfg.History.MaxEntries)
	}
	if cfg.Defaults.VideoTrackName != "Picture" {
		t.Errorf("VideoTrackName = %q", cfg.Defaults.VideoTrackName)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Defaults.AudioTrackName != "Audio 1" {
		t.Errorf("AudioTrackName = %q", cfg.Defaults.AudioTrackName)
	}
	if cfg.DefaultEasing() != keyframe.EaseInOut {
		t.Errorf("DefaultEasing = %v", cfg.DefaultEasing())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeConfig(t, `history = max`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("expected *ParseError, got %T", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max entries", func(c *Config) { c.History.MaxEntries = 0 }},
		{"negative max entries", func(c *Config) { c.History.MaxEntries = -1 }},
		{"unknown easing", func(c *Config) { c.Defaults.Easing = "bouncy" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
