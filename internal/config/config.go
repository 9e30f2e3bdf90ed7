package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds user-tunable settings. All fields have working defaults so
// running without a config file is the normal case.
type Config struct {
	Recording RecordingSettings `toml:"recording"`
	UI        UISettings        `toml:"ui"`
	Log       LogSettings       `toml:"log"`
}

// RecordingSettings controls topic filtering and shutdown behavior.
type RecordingSettings struct {
	ExcludedTopics []string `toml:"excluded_topics"`
	GracePeriod    duration `toml:"grace_period"` // per escalation tier
}

// UISettings controls the selector's spacing.
type UISettings struct {
	Prompt string `toml:"prompt"`
	Align  int    `toml:"align"`  // left padding before each row
	Margin int    `toml:"margin"` // gap between checkbox and label
}

// LogSettings controls the rotating log file.
type LogSettings struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// duration lets TOML carry values like "5s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// GracePeriod returns the configured escalation tier timeout.
func (c *Config) GracePeriod() time.Duration {
	return time.Duration(c.Recording.GracePeriod)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Recording: RecordingSettings{
			ExcludedTopics: []string{"/rosout", "/rosout_agg", "/parameter_events"},
			GracePeriod:    duration(5 * time.Second),
		},
		UI: UISettings{
			Prompt: "Choose topics to record:",
			Align:  4,
			Margin: 2,
		},
		Log: LogSettings{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(base, "bagrec", "config.toml"), nil
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
