package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL == "" || cfg.PushURL == "" || cfg.DataDir == "" {
		t.Errorf("defaults incomplete: %+v", cfg)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "apiBaseUrl: https://assist.example.com\npushUrl: wss://assist.example.com\napiKey: k-123\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://assist.example.com" {
		t.Errorf("apiBaseUrl = %q", cfg.APIBaseURL)
	}
	if cfg.APIKey != "k-123" {
		t.Errorf("apiKey = %q", cfg.APIKey)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("apiBaseUrl: https://file.example.com\n"), 0o600)

	t.Setenv("AGENTDESK_API_URL", "https://env.example.com")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://env.example.com" {
		t.Errorf("apiBaseUrl = %q, want env value", cfg.APIBaseURL)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte(":\n\t- nope"), 0o600)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
