// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses *ZeroLog* for logging and integrates with
// *New Relic* to instrument the codebase, forwarding logs,
// metrics, and traces for debugging.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/deppfellow/books-api/internal/config"
)

// LoggerService owns the New Relic application, if one is configured.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService starts the New Relic agent when a license key is set.
// Without a key, or when the agent fails to start, the returned service has
// no application and everything downstream degrades to plain logging.
func NewLoggerService(cfg *config.ObservabilityConfig) *LoggerService {
	service := &LoggerService{}

	if !cfg.NewRelicEnabled() {
		fmt.Println("New Relic license key not provided, skipping initialization")
		return service
	}

	configOptions := []newrelic.ConfigOption{
		newrelic.ConfigAppName(cfg.ServiceName),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(cfg.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(cfg.NewRelic.DistributedTracingEnabled),
	}

	if cfg.NewRelic.DebugLogging {
		configOptions = append(configOptions, newrelic.ConfigDebugLogger(os.Stdout))
	}

	app, err := newrelic.NewApplication(configOptions...)
	if err != nil {
		fmt.Printf("Failed to initialize New Relic: %v\n", err)
		return service
	}

	service.nrApp = app
	fmt.Printf("New Relic initialized for app: %s\n", cfg.ServiceName)

	return service
}

// Shutdown flushes and stops the New Relic agent.
func (ls *LoggerService) Shutdown() {
	if ls.nrApp != nil {
		ls.nrApp.Shutdown(10 * time.Second)
	}
}

// GetApplication returns the New Relic application, or nil.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// NewLogger builds a logger writing to stdout without New Relic forwarding.
func NewLogger(cfg *config.ObservabilityConfig) zerolog.Logger {
	return NewLoggerWithService(cfg, nil)
}

// NewLoggerWithService builds the application logger.
//
// JSON goes to stdout (through the New Relic writer when forwarding is
// available); the console format is used outside production when asked for.
func NewLoggerWithService(cfg *config.ObservabilityConfig, loggerService *LoggerService) zerolog.Logger {
	return newLogger(os.Stdout, cfg, loggerService)
}

func newLogger(out io.Writer, cfg *config.ObservabilityConfig, loggerService *LoggerService) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var writer io.Writer = out

	if app := loggerService.GetApplication(); app != nil && cfg.NewRelic.AppLogForwardingEnabled {
		writer = zerologWriter.New(out, app)
	} else if !cfg.IsProduction() && cfg.Logging.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
	}

	logger := zerolog.New(writer).
		Level(ParseLevel(cfg.GetLogLevel())).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()

	if !cfg.IsProduction() {
		logger = logger.With().Stack().Logger()
	}

	return logger
}

// ParseLevel maps a configured level name to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithTraceContext adds the New Relic trace and span ids of txn to logger.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	metadata := txn.GetTraceMetadata()

	return logger.With().
		Str("trace.id", metadata.TraceID).
		Str("span.id", metadata.SpanID).
		Logger()
}

// NewStoreLogger returns the logger used for store command logs, tagged so
// the lines can be filtered apart from request logs.
func NewStoreLogger(base zerolog.Logger) zerolog.Logger {
	return base.With().Str("component", "mongo").Logger()
}
