// Package config provides hierarchical configuration loading for Eagle Chat.
// Precedence: defaults < YAML file < environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all runtime configuration for the proxy and the CLI client.
type Config struct {
	Server  Server  `yaml:"server"`
	Gateway Gateway `yaml:"gateway"`
	Store   Store   `yaml:"store"`
	Client  Client  `yaml:"client"`
	Logging Logging `yaml:"logging"`
}

// Server holds HTTP server configuration for the proxy.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
	StaticDir  string `yaml:"static_dir"` // optional web UI directory; empty disables
}

// Gateway holds inference gateway configuration. Token is required by the
// proxy process; it refuses to start without one.
type Gateway struct {
	BaseURL      string        `yaml:"base_url"`
	Token        string        `yaml:"token"`
	DefaultModel string        `yaml:"default_model"`
	Timeout      time.Duration `yaml:"timeout"`
}

// Store holds the durable client-state location.
type Store struct {
	Path string `yaml:"path"`
}

// Client holds CLI client configuration.
type Client struct {
	ServerURL string `yaml:"server_url"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Defaults returns a Config with sensible default values for local use.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8000",
			CORSOrigin: "*",
		},
		Gateway: Gateway{
			BaseURL:      "https://space.ai-builders.com/backend",
			DefaultModel: "supermind-agent-v1",
			Timeout:      2 * time.Minute,
		},
		Store: Store{
			Path: defaultStorePath(),
		},
		Client: Client{
			ServerURL: "http://localhost:8000",
		},
		Logging: Logging{
			Level:   "info",
			Service: "eaglechat",
		},
	}
}

// defaultStorePath places the client state under the user's home directory,
// falling back to the working directory when no home is resolvable.
func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".eaglechat"
	}
	return filepath.Join(home, ".eaglechat", "state")
}
