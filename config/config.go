// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	GeminiModel     string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"60s"`

	StoreType  string        `env:"STORE_TYPE" envDefault:"memory"`
	StoreDSN   string        `env:"STORE_DSN"`
	RedisAddr  string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	SupabaseURL     string `env:"SUPABASE_URL"`
	SupabaseAnonKey string `env:"SUPABASE_ANON_KEY"`

	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"10485760"`
}

// Load reads configuration from the environment. A .env file is applied
// first when present; missing is fine.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	return cfg, nil
}

// StoreConnection picks the connection string for the configured store type.
func (c *Config) StoreConnection() string {
	if c.StoreType == "redis" {
		return c.RedisAddr
	}
	return c.StoreDSN
}
