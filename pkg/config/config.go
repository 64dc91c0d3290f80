// Package config handles configuration loading and management
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the texforge.config.json|yaml schema
type Config struct {
	Version       string            `json:"version" yaml:"version"`
	Arguments     map[string]string `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Notifications Notifications     `json:"notifications" yaml:"notifications"`
	Watch         Watch             `json:"watch" yaml:"watch"`
	Logging       Logging           `json:"logging" yaml:"logging"`
}

// Notifications configures desktop notifications
type Notifications struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Sound   bool `json:"sound" yaml:"sound"`
}

// Watch configures watch mode
type Watch struct {
	SettlingDelayMs int `json:"settlingDelayMs" yaml:"settlingDelayMs"`
}

// Logging configures log output
type Logging struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Manager handles configuration operations
type Manager struct{}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{}
}

// GetDefaultConfig returns the configuration used when no file exists
func GetDefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Arguments: map[string]string{
			"-interaction": "nonstopmode",
		},
		Notifications: Notifications{Enabled: true},
		Watch:         Watch{SettlingDelayMs: 100},
		Logging:       Logging{Level: "info"},
	}
}

// LoadConfig loads configuration from a file
func (m *Manager) LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config

	// Try JSON first
	if err := json.Unmarshal(data, &cfg); err == nil {
		return m.validated(&cfg)
	}

	// Try YAML
	if err := yaml.Unmarshal(data, &cfg); err == nil {
		return m.validated(&cfg)
	}

	return nil, fmt.Errorf("failed to parse config as JSON or YAML")
}

// ValidateConfig validates a configuration
func (m *Manager) ValidateConfig(cfg *Config) error {
	if cfg.Version != "1.0" {
		return fmt.Errorf("unsupported config version: %s", cfg.Version)
	}

	for name := range cfg.Arguments {
		if !strings.HasPrefix(name, "-") {
			return fmt.Errorf("argument %q must use engine CLI nomenclature (leading dash)", name)
		}
	}

	if cfg.Watch.SettlingDelayMs < 0 {
		return fmt.Errorf("settling delay must not be negative")
	}

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.Logging.Level)
	}

	return nil
}

func (m *Manager) validated(cfg *Config) (*Config, error) {
	if err := m.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
