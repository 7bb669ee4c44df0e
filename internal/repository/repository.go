// Package repository handles all interactions with the document store.
//
// It contains the store queries and methods to fetch, persist,
// or update data, abstracting driver details away from the service layer.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/books-api/internal/model"
)

var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when a write would break the unique
	// (title, author, year) index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// UpdateResult reports how many records an update matched and changed.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// BookRepository describes the store operations the books API needs.
type BookRepository interface {
	// FindAll returns every book in natural order.
	FindAll(ctx context.Context) ([]model.StoredBook, error)

	// FindByID returns ErrNotFound when no book has id.
	FindByID(ctx context.Context, id primitive.ObjectID) (model.StoredBook, error)

	// FindOne returns the book whose fields match exactly, or ErrNotFound.
	FindOne(ctx context.Context, filter model.BookFields) (model.StoredBook, error)

	// Insert stores a new book and returns it with its assigned id.
	Insert(ctx context.Context, fields model.BookFields) (model.StoredBook, error)

	// UpdateByID replaces the content fields of the book with id.
	UpdateByID(ctx context.Context, id primitive.ObjectID, update model.BookUpdate) (UpdateResult, error)

	// DeleteByID removes the book with id and returns how many were deleted.
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}
