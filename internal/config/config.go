package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime configuration, read from environment variables.
type Config struct {
	Port        string `env:"PORT,         default=3000"`
	Env         string `env:"ENV,          default=development"`
	DatabaseDSN string `env:"DATABASE_URL, default=host=localhost user=postgres password=postgres dbname=backoffice port=5432 sslmode=disable"`
	JWTSecret   string `env:"JWT_SECRET"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	CORSOrigins string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5173"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
