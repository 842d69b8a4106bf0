package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Provider     string  `yaml:"provider"`      // "openai" or "azure"
	Model        string  `yaml:"model"`         // model name for OpenAI-compatible providers
	Temperature  float64 `yaml:"temperature"`   // sampling temperature for the assistant
	HistoryLimit int     `yaml:"history_limit"` // transcript messages sent to the gateway per turn
	DatabasePath string  `yaml:"database_path"` // SQLite file backing the menu catalog

	MetricsConfig struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Load reads a YAML configuration file and applies defaults for
// anything left unset.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing config file is fine, defaults plus env vars cover it.
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 40
	}
	if cfg.Temperature < 0 {
		cfg.Temperature = 0
	}

	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		Provider:     "openai",
		Model:        "gpt-4o",
		Temperature:  0.3,
		HistoryLimit: 40,
		DatabasePath: "mozo.db",
	}
	cfg.MetricsConfig.Enabled = true
	cfg.MetricsConfig.Port = 9090
	cfg.MetricsConfig.Path = "/metrics"
	return cfg
}
