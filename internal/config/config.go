package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment-driven setting for the service.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:""`
	JWTSecret   string `envconfig:"JWT_SECRET" default:""`
	CORSOrigin  string `envconfig:"CORS_ORIGIN" default:"*"`

	// Write-endpoint rate limiting, per client IP.
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"0.5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"3"`
}

// Load populates a Config from the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
