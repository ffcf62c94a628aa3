// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	platformdb "message_backend/internal/platform/db"
	jwtmw "message_backend/internal/platform/jwt"
)

// Directory backends.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMongo    = "mongo"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// SignInPath is where unauthenticated callers are pointed.
	SignInPath string `env:"SIGN_IN_PATH" envDefault:"/signin"`

	JWT jwtmw.Config `envPrefix:"JWT_"`

	DirectoryBackend string        `env:"DIRECTORY_BACKEND" envDefault:"postgres"`
	DirectoryTimeout time.Duration `env:"DIRECTORY_TIMEOUT" envDefault:"3s"`

	DB    platformdb.Config
	Mongo MongoConfig `envPrefix:"MONGO_"`

	// RedisURL is optional; login attempt limiting is disabled without it.
	RedisURL               string        `env:"REDIS_URL"`
	LoginAttemptsPerWindow int           `env:"LOGIN_ATTEMPTS_PER_WINDOW" envDefault:"5"`
	LoginAttemptWindow     time.Duration `env:"LOGIN_ATTEMPT_WINDOW" envDefault:"1m"`
}

// MongoConfig selects the deployment and database holding the users collection.
type MongoConfig struct {
	URI      string `env:"URI"`
	Database string `env:"DATABASE" envDefault:"message_backend"`
}

// Load reads configuration values from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DirectoryBackend = strings.ToLower(strings.TrimSpace(cfg.DirectoryBackend))
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c Config) Validate() error {
	switch c.DirectoryBackend {
	case BackendPostgres:
		if c.DB.URL == "" && c.DB.Host == "" {
			return fmt.Errorf("DATABASE_URL or DB_HOST must be set for the %s backend", BackendPostgres)
		}
	case BackendSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set for the %s backend", BackendSQLite)
		}
	case BackendMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI must be set for the %s backend", BackendMongo)
		}
	default:
		return fmt.Errorf("unknown DIRECTORY_BACKEND %q", c.DirectoryBackend)
	}

	if c.DirectoryTimeout <= 0 {
		return fmt.Errorf("DIRECTORY_TIMEOUT must be positive")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive")
	}
	if c.LoginAttemptsPerWindow <= 0 {
		return fmt.Errorf("LOGIN_ATTEMPTS_PER_WINDOW must be positive")
	}
	if !strings.HasPrefix(c.SignInPath, "/") {
		return fmt.Errorf("SIGN_IN_PATH must start with /")
	}
	return nil
}
