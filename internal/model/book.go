// Package model holds the book records in their stored and external shapes
// and the mapping between them.
package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoredBook is a book document as persisted in the store.
type StoredBook struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	Year   int                `bson:"year"`
}

// Book is the externally visible book record.
type Book struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// BookFields are the content fields of a book, used to insert a new record
// and to look one up by exact match.
type BookFields struct {
	Title  string `bson:"title"`
	Author string `bson:"author"`
	Year   int    `bson:"year"`
}

// BookUpdate replaces every content field of a stored book. A nil field is
// written as null.
type BookUpdate struct {
	Title  *string `bson:"title"`
	Author *string `bson:"author"`
	Year   *int    `bson:"year"`
}

// ToBook converts a stored record into its external shape. The record is
// expected to come from the store and therefore to carry an id.
func ToBook(stored StoredBook) Book {
	return Book{
		ID:     stored.ID.Hex(),
		Title:  stored.Title,
		Author: stored.Author,
		Year:   stored.Year,
	}
}

// ToBooks maps every stored record. The result is never nil.
func ToBooks(stored []StoredBook) []Book {
	books := make([]Book, 0, len(stored))
	for _, s := range stored {
		books = append(books, ToBook(s))
	}
	return books
}
