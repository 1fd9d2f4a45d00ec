package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "eaglechat.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "EAGLECHAT_PORT")
	setString(&cfg.Server.CORSOrigin, "EAGLECHAT_CORS_ORIGIN")
	setString(&cfg.Server.StaticDir, "EAGLECHAT_STATIC_DIR")
	setString(&cfg.Gateway.BaseURL, "EAGLECHAT_GATEWAY_URL")
	setString(&cfg.Gateway.Token, "AI_BUILDER_TOKEN")
	setString(&cfg.Gateway.DefaultModel, "EAGLECHAT_DEFAULT_MODEL")
	setDuration(&cfg.Gateway.Timeout, "EAGLECHAT_GATEWAY_TIMEOUT")
	setString(&cfg.Store.Path, "EAGLECHAT_STORE_PATH")
	setString(&cfg.Client.ServerURL, "EAGLECHAT_SERVER_URL")
	setString(&cfg.Logging.Level, "EAGLECHAT_LOG_LEVEL")
	setString(&cfg.Logging.Service, "EAGLECHAT_LOG_SERVICE")
}

// validate checks that required fields are set. The gateway token is checked
// by the proxy entrypoint, not here, so the CLI can share this loader.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Gateway.BaseURL == "" {
		return errors.New("gateway.base_url is required")
	}
	if cfg.Gateway.DefaultModel == "" {
		return errors.New("gateway.default_model is required")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
