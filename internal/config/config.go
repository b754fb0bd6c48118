// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/logging"
	"github.com/javiermolinar/matchmaker/internal/roster"
)

// Config holds the application configuration.
type Config struct {
	Sessions SessionsConfig `toml:"sessions"`
	Rules    RulesConfig    `toml:"rules"`
	Event    EventConfig    `toml:"event"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
	UI       UIConfig       `toml:"ui"`
}

// SessionsConfig holds the session grid timing.
type SessionsConfig struct {
	Count           int    `toml:"count"`            // sessions per block
	DurationMinutes int    `toml:"duration_minutes"` // e.g., 30
	BreakMinutes    int    `toml:"break_minutes"`    // e.g., 5
	MorningStart    string `toml:"morning_start"`    // e.g., "09:30"
	AfternoonStart  string `toml:"afternoon_start"`  // e.g., "13:30"
}

// RulesConfig holds the roster limits.
type RulesConfig struct {
	MaxBuyersPerBlock    int `toml:"max_buyers_per_block"`
	MaxCountriesPerBlock int `toml:"max_countries_per_block"`
}

// EventConfig points at the event file opened when none is given on the command line.
type EventConfig struct {
	File string `toml:"file"`
}

// StorageConfig holds the schedule archive settings.
type StorageConfig struct {
	ArchivePath string `toml:"archive_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "console" or "json"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	st := event.DefaultSettings()
	rules := roster.DefaultRules()
	return &Config{
		Sessions: SessionsConfig{
			Count:           st.Count,
			DurationMinutes: st.DurationMinutes,
			BreakMinutes:    st.BreakMinutes,
			MorningStart:    st.MorningStart,
			AfternoonStart:  st.AfternoonStart,
		},
		Rules: RulesConfig{
			MaxBuyersPerBlock:    rules.MaxBuyersPerBlock,
			MaxCountriesPerBlock: rules.MaxCountriesPerBlock,
		},
		Storage: StorageConfig{
			ArchivePath: defaultArchivePath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultArchivePath returns the default schedule archive path.
func defaultArchivePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "matchmaker.db"
	}
	return filepath.Join(home, ".local", "share", "matchmaker", "archive.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "matchmaker", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.ArchivePath = expandPath(cfg.Storage.ArchivePath)
	cfg.Event.File = expandPath(cfg.Event.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"MATCHMAKER_SESSION_COUNT", &cfg.Sessions.Count},
		{"MATCHMAKER_SESSION_DURATION", &cfg.Sessions.DurationMinutes},
		{"MATCHMAKER_SESSION_BREAK", &cfg.Sessions.BreakMinutes},
		{"MATCHMAKER_MAX_BUYERS_PER_BLOCK", &cfg.Rules.MaxBuyersPerBlock},
		{"MATCHMAKER_MAX_COUNTRIES_PER_BLOCK", &cfg.Rules.MaxCountriesPerBlock},
	}
	for _, o := range ints {
		v := os.Getenv(o.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", o.key, v)
		}
		*o.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"MATCHMAKER_MORNING_START", &cfg.Sessions.MorningStart},
		{"MATCHMAKER_AFTERNOON_START", &cfg.Sessions.AfternoonStart},
		{"MATCHMAKER_EVENT_FILE", &cfg.Event.File},
		{"MATCHMAKER_EXPORT_DB", &cfg.Storage.ArchivePath},
		{"MATCHMAKER_LOG_LEVEL", &cfg.Log.Level},
		{"MATCHMAKER_LOG_FORMAT", &cfg.Log.Format},
		{"MATCHMAKER_UI_THEME", &cfg.UI.Theme},
	}
	for _, o := range strs {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("sessions: %w", err)
	}
	if c.Rules.MaxBuyersPerBlock < 1 {
		return errors.New("max_buyers_per_block must be at least 1")
	}
	if c.Rules.MaxCountriesPerBlock < 1 {
		return errors.New("max_countries_per_block must be at least 1")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("log format must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, c.Log.Format)
	}
	if c.Storage.ArchivePath == "" {
		return errors.New("archive_path must be set")
	}
	return nil
}

// Settings converts the [sessions] section to engine settings.
func (c *Config) Settings() event.Settings {
	return event.Settings{
		Count:           c.Sessions.Count,
		DurationMinutes: c.Sessions.DurationMinutes,
		BreakMinutes:    c.Sessions.BreakMinutes,
		MorningStart:    c.Sessions.MorningStart,
		AfternoonStart:  c.Sessions.AfternoonStart,
	}
}

// RosterRules converts the [rules] section to roster limits.
func (c *Config) RosterRules() roster.Rules {
	return roster.Rules{
		MaxBuyersPerBlock:    c.Rules.MaxBuyersPerBlock,
		MaxCountriesPerBlock: c.Rules.MaxCountriesPerBlock,
	}
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
