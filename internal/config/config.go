// Package config loads Guild client configuration from
// ~/.guild/config.yaml with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences for the guild client.
type Config struct {
	// APIURL is the backend base URL.
	APIURL string `yaml:"api_url"`

	// Theme selects "light" or "dark"; empty means auto-detect.
	Theme string `yaml:"theme"`

	// NotificationPollSeconds is the background notification refresh
	// interval. Zero disables polling.
	NotificationPollSeconds int `yaml:"notification_poll"`

	// RequestTimeoutSeconds bounds each API call.
	RequestTimeoutSeconds int `yaml:"request_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:                  "http://localhost:8000",
		NotificationPollSeconds: 60,
		RequestTimeoutSeconds:   30,
	}
}

// Dir returns the guild config directory, honoring GUILD_CONFIG_DIR so
// tests and multi-profile setups can relocate it.
func Dir() (string, error) {
	if dir := os.Getenv("GUILD_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".guild"), nil
}

// File returns the full path of the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path, layering file values over defaults
// and environment variables over both. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers environment overrides onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GUILD_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("GUILD_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("GUILD_NOTIFICATION_POLL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.NotificationPollSeconds = n
		}
	}
	if v := os.Getenv("GUILD_REQUEST_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeoutSeconds = n
		}
	}
}

// RequestTimeout returns the configured per-request timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// NotificationPoll returns the poll interval, or zero when disabled.
func (c Config) NotificationPoll() time.Duration {
	if c.NotificationPollSeconds <= 0 {
		return 0
	}
	return time.Duration(c.NotificationPollSeconds) * time.Second
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
