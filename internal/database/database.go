// Package database contains the logic for establishing
// connections to the MongoDB document store.
//
// It handles:
//   - building client options from config
//   - wiring command monitoring (local command logs, slow-command warnings)
//   - optional New Relic instrumentation (nrmongo)
package database

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/deppfellow/books-api/internal/config"
	loggerConfig "github.com/deppfellow/books-api/internal/logger"
)

// Database wraps the MongoDB client and the configured database handle.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// New connects to MongoDB and pings it.
//
// Monitoring:
//   - New Relic datastore segments when loggerService has an application
//   - every command at debug level in the "local" env
//   - commands slower than the slow query threshold at warn level
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.Database.URL).
		SetConnectTimeout(cfg.Database.ConnectTimeout)

	if cfg.Database.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(cfg.Database.MaxPoolSize)
	}

	storeLogger := loggerConfig.NewStoreLogger(*logger)
	monitor := NewCommandMonitor(&storeLogger, cfg.Primary.Env == "local", cfg.Observability.Logging.SlowQueryThreshold)

	if loggerService.GetApplication() != nil {
		// nrmongo wraps the monitor it is given and keeps calling it.
		monitor = nrmongo.NewCommandMonitor(monitor)
	}

	clientOptions.SetMonitor(monitor)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("database", cfg.Database.Name).
		Msg("connected to the database")

	return &Database{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}, nil
}

// Collection returns a handle to the named collection.
func (db *Database) Collection(name string) *mongo.Collection {
	return db.DB.Collection(name)
}

// Ping checks that the primary is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting for in-use connections up to ctx.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}
