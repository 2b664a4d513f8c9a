// Package config reads and writes the costmn CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level costmn.yaml configuration.
type Config struct {
	BaseURL     string `yaml:"base_url,omitempty"`
	SessionFile string `yaml:"session_file,omitempty"`
	TimeoutSecs int    `yaml:"timeout_seconds,omitempty"`
	SentryDSN   string `yaml:"sentry_dsn,omitempty"`
}

// DefaultPath returns the default config file location under the user's
// home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".costmn.yaml"
	}
	return filepath.Join(home, ".costmn.yaml")
}

// Load reads a costmn.yaml file from disk. A missing file yields the
// zero config, not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default() *Config {
	home, err := os.UserHomeDir()
	sessionFile := ".costmn-session.json"
	if err == nil {
		sessionFile = filepath.Join(home, ".costmn-session.json")
	}
	return &Config{
		SessionFile: sessionFile,
		TimeoutSecs: 30,
	}
}
