package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the default config file location.
const DefaultConfigPath = "~/.config/daybook/config.yaml"

// Config holds all daybook configuration.
type Config struct {
	Firefox   FirefoxConfig   `yaml:"firefox"`
	Journal   JournalConfig   `yaml:"journal"`
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type FirefoxConfig struct {
	ProfilePath    string `yaml:"profile_path"`
	ExcludePrivate bool   `yaml:"exclude_private"`
	Timezone       string `yaml:"timezone"`
}

type JournalConfig struct {
	OutputDirectory string `yaml:"output_directory"`
	TemplatePath    string `yaml:"template_path"`
}

type DatabaseConfig struct {
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

type SchedulerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Time    string `yaml:"time"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// envOverrides are applied on top of the file config. Processed with the
// DAYBOOK_ prefix, e.g. DAYBOOK_DATABASE_PATH.
type envOverrides struct {
	ProfilePath  string `envconfig:"PROFILE_PATH"`
	DatabasePath string `envconfig:"DATABASE_PATH"`
	Timezone     string `envconfig:"TIMEZONE"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
}

// Load reads a YAML config file at path and merges it with defaults and
// environment overrides. Returns an error if the file cannot be read or
// contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process("daybook", &env); err != nil {
		return fmt.Errorf("reading environment overrides: %w", err)
	}

	if env.ProfilePath != "" {
		c.Firefox.ProfilePath = env.ProfilePath
	}
	if env.DatabasePath != "" {
		c.Database.Path = env.DatabasePath
	}
	if env.Timezone != "" {
		c.Firefox.Timezone = env.Timezone
	}
	if env.LogLevel != "" {
		c.Logging.Level = env.LogLevel
	}

	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does not
// exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does not
// exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		if err := cfg.applyEnv(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return Load(path)
}

// ProfilePath returns the configured Firefox profile directory, or "" when
// the profile should be auto-discovered.
func (c *Config) ProfilePath() string {
	if c.Firefox.ProfilePath == "auto" {
		return ""
	}
	return c.Firefox.ProfilePath
}

// Location resolves the configured timezone. "local" (or empty) means the
// process's local time zone; anything else must be an IANA zone name.
func (c *Config) Location() (*time.Location, error) {
	tz := c.Firefox.Timezone
	if tz == "" || tz == "local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// DatabasePath returns the journal database path with ~ expanded.
func (c *Config) DatabasePath() (string, error) {
	return ExpandPath(c.Database.Path)
}
