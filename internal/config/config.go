package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that reads and writes as a TOML string ("1s", "250ms").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	if v < 0 {
		return fmt.Errorf("duration %q must not be negative", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config represents the global ~/.wpnew/config.toml.
type Config struct {
	DefaultSession string       `toml:"default_session"`
	Search         SearchConfig `toml:"search"`
	Roster         RosterConfig `toml:"roster"`
	Log            LogConfig    `toml:"log"`
}

// SearchConfig tunes the search-as-you-type controller.
type SearchConfig struct {
	// QuietInterval is how long typing must pause before a search is sent.
	// Zero sends every keystroke.
	QuietInterval Duration `toml:"quiet_interval"`
	Limit         int      `toml:"limit"`
}

// RosterConfig tunes how roster change notifications are coalesced.
type RosterConfig struct {
	RefreshInterval Duration `toml:"refresh_interval"`
}

// LogConfig selects the minimum log level ("debug", "info", "warn", "error").
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			QuietInterval: Duration{time.Second},
			Limit:         50,
		},
		Roster: RosterConfig{
			RefreshInterval: Duration{time.Second},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads config from the given path on top of Default.
// Returns nil and the error if the file is missing or malformed.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	// Keys absent from the file keep their defaults; quiet_interval = "0s" is honored.
	if cfg.Search.Limit <= 0 {
		cfg.Search.Limit = Default().Search.Limit
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = Default().Log.Level
	}
	return cfg, nil
}

// LoadOrDefault is Load but falls back to Default when the file cannot be read.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
