package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Spy Cats"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		// Store selects the persistence backend: postgres or memory.
		Store string `envconfig:"STORE" default:"postgres"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"spycats"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`
	}

	Breed struct {
		URL      string        `envconfig:"BREED_API_URL" default:"https://api.thecatapi.com/v1/breeds"`
		Timeout  time.Duration `envconfig:"BREED_TIMEOUT" default:"10s"`
		CacheTTL time.Duration `envconfig:"BREED_CACHE_TTL" default:"1h"`
	}

	Redis struct {
		URL string `envconfig:"REDIS_URL"`
	}

	Auth struct {
		// JWTSecret enables bearer authentication on mutating routes when set.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// LogLevel parses App.LogLevel, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	cfg.App.Store = strings.ToLower(strings.TrimSpace(cfg.App.Store))

	switch cfg.App.Store {
	case StorePostgres, StoreMemory:
	default:
		return nil, fmt.Errorf("invalid STORE %q: want %s or %s", cfg.App.Store, StorePostgres, StoreMemory)
	}

	return &cfg, nil
}
