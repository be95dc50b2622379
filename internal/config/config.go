package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	HTTPAddr     string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel     slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir       string        `env:"SPA_DIR" envDefault:"../web/dist"`
	StoreBackend string        `env:"STORE_BACKEND" envDefault:"sqlite"`
	DBPath       string        `env:"DB_PATH" envDefault:"data/atlas.db"`
	RedisURL     string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	switch cfg.StoreBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return &cfg, nil
}
