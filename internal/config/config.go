package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/montage/internal/timeline/history"
	"github.com/dshills/montage/internal/timeline/keyframe"
)

// Config is the full editor configuration.
type Config struct {
	History  HistoryConfig  `toml:"history"`
	Defaults DefaultsConfig `toml:"defaults"`
	Log      LogConfig      `toml:"log"`
}

// HistoryConfig bounds the undo engine.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// DefaultsConfig names newly created tracks and picks the easing used
// when a keyframe does not specify one.
type DefaultsConfig struct {
	VideoTrackName    string `toml:"video_track_name"`
	AudioTrackName    string `toml:"audio_track_name"`
	SubtitleTrackName string `toml:"subtitle_track_name"`
	Easing            string `toml:"easing"`
}

// LogConfig controls application logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			MaxEntries: history.DefaultMaxEntries,
		},
		Defaults: DefaultsConfig{
			VideoTrackName:    "Video 1",
			AudioTrackName:    "Audio 1",
			SubtitleTrackName: "Subtitle 1",
			Easing:            keyframe.Linear.String(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path, merged over the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the editor cannot use.
func (c *Config) Validate() error {
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive, got %d", c.History.MaxEntries)
	}
	if _, err := keyframe.ParseEasing(c.Defaults.Easing); err != nil {
		return fmt.Errorf("defaults.easing: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	return nil
}

// DefaultEasing returns the configured easing. Validate has already
// ensured it parses.
func (c *Config) DefaultEasing() keyframe.Easing {
	e, err := keyframe.ParseEasing(c.Defaults.Easing)
	if err != nil {
		return keyframe.Linear
	}
	return e
}

// ParseError reports an unreadable configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
