// Package config loads widget settings from an optional YAML file with
// environment variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/utils"
)

// Config holds widget settings.
type Config struct {
	Timezone      string              `yaml:"timezone"`
	NightRoutine  NightRoutineConfig  `yaml:"night_routine"`
	Todo          TodoConfig          `yaml:"todo"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Quiz          QuizConfig          `yaml:"quiz"`
}

// NightRoutineConfig controls the night-routine checklist.
type NightRoutineConfig struct {
	ResetHour int `yaml:"reset_hour"`
}

// Validate validates the night-routine configuration.
func (c *NightRoutineConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ResetHour, validation.Min(0), validation.Max(23)),
	)
}

// TodoConfig controls the todo list.
type TodoConfig struct {
	RetentionDays int `yaml:"retention_days"`
}

// Validate validates the todo configuration.
func (c *TodoConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RetentionDays, validation.Required, validation.Min(1)),
	)
}

// Retention returns the retention window as a duration.
func (c *TodoConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// NotificationsConfig controls due-today reminders.
type NotificationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// QuizConfig points at an optional YAML question bank.
type QuizConfig struct {
	Bank string `yaml:"bank"`
}

// Validate validates the whole configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Timezone, validation.By(func(v interface{}) error {
			tz, _ := v.(string)
			if tz != "" && !utils.ValidateTimezone(tz) {
				return fmt.Errorf("unknown timezone %q", tz)
			}
			return nil
		})),
	); err != nil {
		return err
	}
	if err := c.NightRoutine.Validate(); err != nil {
		return fmt.Errorf("night_routine: %w", err)
	}
	if err := c.Todo.Validate(); err != nil {
		return fmt.Errorf("todo: %w", err)
	}
	return nil
}

// Location resolves the configured timezone, defaulting to the system zone.
func (c *Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Now returns the current time in the configured timezone.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Location())
}

// NewDefaultConfig returns a Config with the built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Timezone:      "Local",
		NightRoutine:  NightRoutineConfig{ResetHour: constants.DefaultResetHour},
		Todo:          TodoConfig{RetentionDays: constants.DefaultRetentionDays},
		Notifications: NotificationsConfig{Enabled: true},
	}
}

// Parse overlays YAML data (after ${ENV} expansion) onto the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
