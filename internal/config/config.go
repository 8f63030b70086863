// Package config loads agentdesk settings from a YAML file with environment
// overrides, and owns the diagnostics logger the TUI writes to disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the backend endpoints and local paths.
type Config struct {
	APIBaseURL string `yaml:"apiBaseUrl"`
	PushURL    string `yaml:"pushUrl"`
	APIKey     string `yaml:"apiKey"`
	DataDir    string `yaml:"dataDir"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "agentdesk", "config.yaml")
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist. Environment variables override file values.
func Load(path string) (Config, error) {
	home, _ := os.UserHomeDir()
	cfg := Config{
		APIBaseURL: "http://localhost:8080",
		PushURL:    "ws://localhost:8080",
		DataDir:    filepath.Join(home, ".local", "share", "agentdesk"),
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if v := os.Getenv("AGENTDESK_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("AGENTDESK_PUSH_URL"); v != "" {
		cfg.PushURL = v
	}
	if v := os.Getenv("AGENTDESK_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("AGENTDESK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	return cfg, nil
}

// DBPath returns the local store location under the data dir.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "agentdesk.sqlite")
}

// LogPath returns the diagnostics log location under the data dir.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "agentdesk.log")
}
