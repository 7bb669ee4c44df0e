package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookUniqueIndex is the name of the unique index over the content fields.
const BookUniqueIndex = "title_author_year_unique"

// BookIndexes are the indexes the books collection must carry.
//
// The unique compound index makes the store reject a second book with the
// same title, author and year even when two inserts race past the
// existence check.
func BookIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "title", Value: 1},
				{Key: "author", Value: 1},
				{Key: "year", Value: 1},
			},
			Options: options.Index().SetName(BookUniqueIndex).SetUnique(true),
		},
	}
}

// Migrate creates the collection indexes. Creating an index that already
// exists with the same definition is a no-op.
func Migrate(ctx context.Context, logger *zerolog.Logger, collection *mongo.Collection) error {
	names, err := collection.Indexes().CreateMany(ctx, BookIndexes())
	if err != nil {
		return fmt.Errorf("creating indexes on %s: %w", collection.Name(), err)
	}

	logger.Info().
		Str("collection", collection.Name()).
		Strs("indexes", names).
		Msg("collection indexes up to date")

	return nil
}
