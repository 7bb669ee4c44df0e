package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// NewCommandMonitor builds a driver command monitor that logs store traffic.
//
// verbose logs every started and succeeded command at debug level.
// slowThreshold > 0 logs succeeded commands that took at least that long at
// warn level. Failed commands are always logged at error level.
func NewCommandMonitor(logger *zerolog.Logger, verbose bool, slowThreshold time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, e *event.CommandStartedEvent) {
			if !verbose {
				return
			}
			logger.Debug().
				Str("command", e.CommandName).
				Str("database", e.DatabaseName).
				Int64("request_id", e.RequestID).
				Str("body", e.Command.String()).
				Msg("mongo command started")
		},
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			if slowThreshold > 0 && e.Duration >= slowThreshold {
				logger.Warn().
					Str("command", e.CommandName).
					Str("database", e.DatabaseName).
					Int64("request_id", e.RequestID).
					Dur("duration", e.Duration).
					Dur("threshold", slowThreshold).
					Msg("slow mongo command")
				return
			}
			if verbose {
				logger.Debug().
					Str("command", e.CommandName).
					Int64("request_id", e.RequestID).
					Dur("duration", e.Duration).
					Msg("mongo command succeeded")
			}
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			logger.Error().
				Str("command", e.CommandName).
				Str("database", e.DatabaseName).
				Int64("request_id", e.RequestID).
				Dur("duration", e.Duration).
				Str("failure", e.Failure).
				Msg("mongo command failed")
		},
	}
}
