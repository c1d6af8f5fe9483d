// Package config builds the process-wide configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const devSecret = "dev-secret-key-change-in-production"

// Config is created by Load and never mutated afterwards.
type Config struct {
	Addr         string        `env:"ADDR,default=:8080"`
	DatabaseURL  string        `env:"DATABASE_URL,default=archive.db"`
	SecretKey    string        `env:"SECRET_KEY,default=dev-secret-key-change-in-production"`
	RedisURL     string        `env:"REDIS_URL"`
	SessionTTL   time.Duration `env:"SESSION_TTL,default=720h"`
	LogLevel     string        `env:"LOG_LEVEL,default=info"`
	LogFormat    string        `env:"LOG_FORMAT,default=text"`
	LoginRate    float64       `env:"LOGIN_RATE,default=5"`
	LoginBurst   int           `env:"LOGIN_BURST,default=10"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=60s"`

	AdminUsername string `env:"ADMIN_USERNAME,default=admin"`
	AdminPassword string `env:"ADMIN_PASSWORD,default=changeme"`
}

// Load reads envFile (if it exists) into the environment and decodes the
// environment into a Config. An empty envFile skips the file step.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	cfg.DatabaseURL = normalizeDatabaseURL(cfg.DatabaseURL)
	return cfg, nil
}

// WithDatabaseURL returns a copy of c pointing at another database.
func (c Config) WithDatabaseURL(u string) Config {
	c.DatabaseURL = normalizeDatabaseURL(u)
	return c
}

// Dialect reports which SQL driver the database URL selects.
func (c Config) Dialect() string {
	if strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

// InsecureSecret reports whether the built-in development secret is in use.
func (c Config) InsecureSecret() bool {
	return c.SecretKey == devSecret
}

// normalizeDatabaseURL rewrites the legacy postgres:// scheme that some
// hosting providers still hand out.
func normalizeDatabaseURL(u string) string {
	if strings.HasPrefix(u, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(u, "postgres://")
	}
	return u
}
