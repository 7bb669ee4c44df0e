package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups all configuration related to telemetry and
// runtime visibility: logging, New Relic APM and the health endpoint.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs and APM dashboards.
	// It is forced by LoadConfig.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment is copied from Primary.Env by LoadConfig.
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format is "json" or "console".
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold is the duration beyond which a store command is
	// logged as slow. Zero disables slow-command logging.
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey disables New Relic entirely.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls the /status endpoint.
type HealthChecksConfig struct {
	Enabled bool `koanf:"enabled"`

	// Timeout bounds each dependency check.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// DefaultObservabilityConfig provides the defaults used when nothing is
// configured.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: "books-api",
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false, // mixes agent output into app logs
		},
		HealthChecks: HealthChecksConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
		},
	}
}

// Validate applies rules that go beyond struct tags.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be json or console)", c.Logging.Format)
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	return nil
}

// GetLogLevel returns the effective log level: "info" in production and
// "debug" in development when no level is set.
func (c *ObservabilityConfig) GetLogLevel() string {
	switch c.Environment {
	case "production":
		if c.Logging.Level == "" {
			return "info"
		}
	case "development":
		if c.Logging.Level == "" {
			return "debug"
		}
	}

	return c.Logging.Level
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// NewRelicEnabled reports whether a license key is configured.
func (c *ObservabilityConfig) NewRelicEnabled() bool {
	return c.NewRelic.LicenseKey != ""
}
