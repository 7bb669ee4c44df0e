package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/deppfellow/books-api/internal/model"
)

// MongoBookRepository stores books in a MongoDB collection.
type MongoBookRepository struct {
	collection *mongo.Collection
}

func NewMongoBookRepository(collection *mongo.Collection) *MongoBookRepository {
	return &MongoBookRepository{collection: collection}
}

func (r *MongoBookRepository) FindAll(ctx context.Context) ([]model.StoredBook, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("finding books: %w", err)
	}

	books := []model.StoredBook{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decoding books: %w", err)
	}

	return books, nil
}

func (r *MongoBookRepository) FindByID(ctx context.Context, id primitive.ObjectID) (model.StoredBook, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoBookRepository) FindOne(ctx context.Context, filter model.BookFields) (model.StoredBook, error) {
	return r.findOne(ctx, filter)
}

func (r *MongoBookRepository) findOne(ctx context.Context, filter any) (model.StoredBook, error) {
	var book model.StoredBook

	err := r.collection.FindOne(ctx, filter).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.StoredBook{}, ErrNotFound
	}
	if err != nil {
		return model.StoredBook{}, fmt.Errorf("finding book: %w", err)
	}

	return book, nil
}

func (r *MongoBookRepository) Insert(ctx context.Context, fields model.BookFields) (model.StoredBook, error) {
	res, err := r.collection.InsertOne(ctx, fields)
	if err != nil {
		return model.StoredBook{}, translateWriteError("inserting book", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return model.StoredBook{}, fmt.Errorf("inserting book: unexpected id type %T", res.InsertedID)
	}

	return model.StoredBook{
		ID:     id,
		Title:  fields.Title,
		Author: fields.Author,
		Year:   fields.Year,
	}, nil
}

func (r *MongoBookRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update model.BookUpdate) (UpdateResult, error) {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": update})
	if err != nil {
		return UpdateResult{}, translateWriteError("updating book", err)
	}

	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (r *MongoBookRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("deleting book: %w", err)
	}

	return res.DeletedCount, nil
}

func translateWriteError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrDuplicateKey, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
