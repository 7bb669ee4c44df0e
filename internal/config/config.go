// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// one exists), loads them into structured Go types, and validates that
// required values are present so the app fails fast on bad or missing
// config.
//
// Keys are read with the BOOKS_ prefix and "__" marks nesting:
//
//	BOOKS_SERVER__PORT=4000            -> server.port
//	BOOKS_DATABASE__NAME=biblioteca    -> database.name
//
// The store connection string is also accepted as MONGO_URL.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix   = "BOOKS_"
	mongoPrefix = "MONGO_"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If it ends up nil,
// defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"required"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"required"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
}

// DatabaseConfig contains the MongoDB connection string and pool tuning.
type DatabaseConfig struct {
	URL            string        `koanf:"url" validate:"required"`
	Name           string        `koanf:"name" validate:"required"`
	Collection     string        `koanf:"collection" validate:"required"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"required"`
	MaxPoolSize    uint64        `koanf:"max_pool_size"`
}

// Default returns a Config holding every default. Only Database.URL is left
// empty: there is no usable default for it.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "4000",
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        60 * time.Second,
			ShutdownTimeout:    30 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Name:           "biblioteca",
			Collection:     "libros",
			ConnectTimeout: 10 * time.Second,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables on top of
// Default(), validates it, and fills in observability defaults.
//
// A missing connection string is reported as an error; callers are expected
// to exit.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load %s env variables: %w", envPrefix, err)
	}

	// MONGO_URL is the name deployments already use for the connection string.
	err = k.Load(env.Provider(mongoPrefix, ".", func(s string) string {
		return "database." + strings.ToLower(strings.TrimPrefix(s, mongoPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load %s env variables: %w", mongoPrefix, err)
	}

	return load(k)
}

func load(k *koanf.Koanf) (*Config, error) {
	mainConfig := Default()

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()

	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = "books-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
