// Package config loads runtime configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	pkgerrors "designcanvas/pkg/errors"
)

// Config holds the runtime settings for the server and its adapters
type Config struct {
	ServerAddress string        `yaml:"server_address"`
	Environment   string        `yaml:"environment"`
	LogLevel      string        `yaml:"log_level"`
	SQLitePath    string        `yaml:"sqlite_path"`
	BlobKey       string        `yaml:"blob_key"`
	ShareSecret   string        `yaml:"share_secret"`
	ShareTTL      time.Duration `yaml:"share_ttl"`
	EnableCORS    bool          `yaml:"enable_cors"`
}

// DefaultConfig returns the local-development defaults
func DefaultConfig() *Config {
	return &Config{
		ServerAddress: ":8080",
		Environment:   "development",
		LogLevel:      "info",
		SQLitePath:    "designcanvas.db",
		BlobKey:       "scene/current",
		ShareSecret:   "local-development-secret",
		ShareTTL:      24 * time.Hour,
		EnableCORS:    true,
	}
}

// Load builds the configuration. When CONFIG_FILE is set, that YAML file is
// layered over the defaults before environment variables are applied.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, pkgerrors.NewInternalError("failed to read config file").WithCause(err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, pkgerrors.NewValidationError("malformed config file").WithCause(err)
		}
	}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.BlobKey = getEnv("BLOB_KEY", cfg.BlobKey)
	cfg.ShareSecret = getEnv("SHARE_SECRET", cfg.ShareSecret)
	cfg.ShareTTL = getEnvDuration("SHARE_TTL", cfg.ShareTTL)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)

	if cfg.Environment == "production" && cfg.ShareSecret == DefaultConfig().ShareSecret {
		return nil, pkgerrors.NewValidationError("SHARE_SECRET must be set in production")
	}
	return cfg, nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
