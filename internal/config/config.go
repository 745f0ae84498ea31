// Package config loads lyra's configuration: a YAML file merged with
// environment overrides and defaults, in that order of precedence
// (env beats file, file beats defaults).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// ModelConfig configures the generative upstream.
type ModelConfig struct {
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	BaseURL         string  `yaml:"base_url"`
	Timeout         string  `yaml:"timeout"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"`
	TopP            float64 `yaml:"top_p"`
}

// ClientConfig configures the TUI / one-shot client.
type ClientConfig struct {
	ServerURL string `yaml:"server_url"`
	Timeout   string `yaml:"timeout"`
}

// Config is the root configuration document.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Model  ModelConfig  `yaml:"model"`
	Client ClientConfig `yaml:"client"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "10s",
		},
		Model: ModelConfig{
			Model:           "gemini-2.5-flash",
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			Timeout:         "90s",
			MaxOutputTokens: 4096,
			Temperature:     0.4,
			TopP:            0.9,
		},
		Client: ClientConfig{
			ServerURL: "http://localhost:8080",
			Timeout:   "120s",
		},
	}
}

// Load reads path (when it exists), applies env overrides, and fills
// defaults. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LYRA_API_KEY"); v != "" {
		c.Model.APIKey = v
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.Model.APIKey == "" {
		c.Model.APIKey = v
	}
	if v := os.Getenv("LYRA_MODEL"); v != "" {
		c.Model.Model = v
	}
	if v := os.Getenv("LYRA_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LYRA_SERVER_URL"); v != "" {
		c.Client.ServerURL = v
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Model.Model == "" {
		c.Model.Model = def.Model.Model
	}
	if c.Model.BaseURL == "" {
		c.Model.BaseURL = def.Model.BaseURL
	}
	if c.Model.Timeout == "" {
		c.Model.Timeout = def.Model.Timeout
	}
	if c.Model.MaxOutputTokens <= 0 {
		c.Model.MaxOutputTokens = def.Model.MaxOutputTokens
	}
	if c.Model.Temperature <= 0 {
		c.Model.Temperature = def.Model.Temperature
	}
	if c.Model.TopP <= 0 {
		c.Model.TopP = def.Model.TopP
	}
	if c.Client.ServerURL == "" {
		c.Client.ServerURL = def.Client.ServerURL
	}
	if c.Client.Timeout == "" {
		c.Client.Timeout = def.Client.Timeout
	}
}

// ModelTimeout parses the model call timeout, falling back to the default
// on a malformed duration.
func (c *Config) ModelTimeout() time.Duration {
	return parseDuration(c.Model.Timeout, 90*time.Second)
}

// ClientTimeout parses the client transport timeout.
func (c *Config) ClientTimeout() time.Duration {
	return parseDuration(c.Client.Timeout, 120*time.Second)
}

// ShutdownTimeout parses the graceful shutdown budget.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
