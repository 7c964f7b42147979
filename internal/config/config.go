// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Catalog   CatalogConfig
	Verify    VerifyConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"8080"`
}

// StoreConfig holds result store configuration.
type StoreConfig struct {
	Path string `envconfig:"STORE_PATH" default:"data/results.db"`
	// Memory switches to the in-memory store; nothing survives restarts.
	Memory bool `envconfig:"STORE_MEMORY" default:"false"`
}

// CatalogConfig holds catalog source configuration.
type CatalogConfig struct {
	Path string `envconfig:"CATALOG_PATH" default:"catalog.yaml"`
}

// VerifyConfig tunes the verification pipeline.
type VerifyConfig struct {
	MaxRetries  int           `envconfig:"VERIFY_MAX_RETRIES" default:"3"`
	BaseDelay   time.Duration `envconfig:"VERIFY_BASE_DELAY" default:"1s"`
	PacingDelay time.Duration `envconfig:"VERIFY_PACING_DELAY" default:"100ms"`
	HTTPTimeout time.Duration `envconfig:"VERIFY_HTTP_TIMEOUT" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds inbound API rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"100"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from the environment, reading a .env file first
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
