// Package config handles the XDG configuration directory, the optional
// config.yml inside it and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// AppName is the application directory name.
	AppName = "evtask"

	// SettingsFile is the optional settings filename inside the config directory.
	SettingsFile = "config.yml"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"
)

// Settings are the values read from config.yml and EVTASK_* environment variables.
// Environment variables win over the file.
type Settings struct {
	// BaseURL is the server root. Absolute endpoint paths resolve against it.
	BaseURL string `yaml:"base_url" env:"EVTASK_BASE_URL" env-default:"http://localhost:8000" validate:"required,url"`

	// PageURL is the page the relative endpoints (publish, home/register)
	// resolve against. Empty means BaseURL.
	PageURL string `yaml:"page_url" env:"EVTASK_PAGE_URL" validate:"omitempty,url"`

	// UserID is the default user for the register command.
	UserID string `yaml:"user_id" env:"EVTASK_USER_ID"`

	// Timeout bounds every request.
	Timeout time.Duration `yaml:"timeout" env:"EVTASK_TIMEOUT" env-default:"5s" validate:"gt=0"`

	LogLevel string `yaml:"log_level" env:"EVTASK_LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`
}

// Config holds configuration paths and settings.
type Config struct {
	Settings

	// Dir is the configuration directory path.
	Dir string

	// PagePath is the HTML page snapshot patched in place. Empty means
	// patches are printed to the terminal.
	PagePath string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory
// and loads settings from it.
// If configDir is empty, uses XDG_CONFIG_HOME/evtask or $HOME/.config/evtask.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads config.yml (if present) and the environment into c.Settings,
// then validates the result.
func (c *Config) Load() error {
	path := c.SettingsPath()
	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, &c.Settings)
	} else if errors.Is(statErr, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(&c.Settings)
	} else {
		err = statErr
	}
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.Settings.Validate()
}

// Validate checks the settings against their struct tags.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// PageBase returns the URL relative endpoints resolve against.
func (s *Settings) PageBase() string {
	if s.PageURL != "" {
		return s.PageURL
	}
	return s.BaseURL
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// TokenPath returns the path to the stored bearer token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
