package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/texforge/texforge/pkg/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeConfig(t, "texforge.config.json", `{
		"version": "1.0",
		"arguments": {"-interaction": "batchmode"},
		"notifications": {"enabled": true, "sound": true},
		"watch": {"settlingDelayMs": 250},
		"logging": {"level": "debug"}
	}`)

	cfg, err := config.NewManager().LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Arguments["-interaction"] != "batchmode" {
		t.Errorf("arguments = %v", cfg.Arguments)
	}
	if !cfg.Notifications.Sound {
		t.Error("expected sound enabled")
	}
	if cfg.Watch.SettlingDelayMs != 250 {
		t.Errorf("settling = %d, want 250", cfg.Watch.SettlingDelayMs)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %s, want debug", cfg.Logging.Level)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "texforge.config.yaml", `
version: "1.0"
arguments:
  "-halt-on-error": ""
notifications:
  enabled: false
logging:
  level: warn
`)

	cfg, err := config.NewManager().LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if _, ok := cfg.Arguments["-halt-on-error"]; !ok {
		t.Errorf("arguments = %v, want -halt-on-error", cfg.Arguments)
	}
	if cfg.Notifications.Enabled {
		t.Error("expected notifications disabled")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad version", content: `{"version": "2.0"}`},
		{name: "argument without dash", content: `{"version": "1.0", "arguments": {"interaction": "x"}}`},
		{name: "negative settling", content: `{"version": "1.0", "watch": {"settlingDelayMs": -5}}`},
		{name: "bad level", content: `{"version": "1.0", "logging": {"level": "loud"}}`},
		{name: "not a config", content: `: not : valid : anything {{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "bad.config.json", tt.content)
			if _, err := config.NewManager().LoadConfig(path); err == nil {
				t.Error("expected load to fail")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := config.NewManager().LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()

	if err := config.NewManager().ValidateConfig(cfg); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
	if cfg.Arguments["-interaction"] != "nonstopmode" {
		t.Errorf("default interaction mode = %s", cfg.Arguments["-interaction"])
	}
}
