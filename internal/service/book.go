package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/books-api/internal/errs"
	"github.com/deppfellow/books-api/internal/model"
	"github.com/deppfellow/books-api/internal/repository"
	"github.com/deppfellow/books-api/internal/server"
	"github.com/deppfellow/books-api/internal/storeerr"
)

// BookService implements the five book operations over a BookRepository.
type BookService struct {
	server *server.Server
	repo   repository.BookRepository
}

func NewBookService(s *server.Server, repo repository.BookRepository) *BookService {
	return &BookService{
		server: s,
		repo:   repo,
	}
}

// List returns every book in its external shape.
func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	stored, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return model.ToBooks(stored), nil
}

// Get returns the book with id. A missing book is a 400.
func (s *BookService) Get(ctx context.Context, id primitive.ObjectID) (model.Book, error) {
	stored, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		code := "BOOK_NOT_FOUND"
		return model.Book{}, errs.NewBadRequestError(model.MsgBookNotFound, &code)
	}
	if err != nil {
		return model.Book{}, err
	}

	return model.ToBook(stored), nil
}

// Create inserts a new book unless one with the same fields exists.
//
// The existence check gives the usual 403; the unique index catches
// inserts that race past it, and those get the same 403.
func (s *BookService) Create(ctx context.Context, fields model.BookFields) (model.Book, error) {
	_, err := s.repo.FindOne(ctx, fields)
	switch {
	case err == nil:
		return model.Book{}, bookExists()
	case !errors.Is(err, repository.ErrNotFound):
		return model.Book{}, err
	}

	stored, err := s.repo.Insert(ctx, fields)
	if storeerr.IsDuplicateKey(err) {
		return model.Book{}, bookExists()
	}
	if err != nil {
		return model.Book{}, err
	}

	return model.ToBook(stored), nil
}

// Update replaces the content fields of the book with id. An update that
// changes nothing, whether the id is unknown or the values are already
// stored, is reported as 404.
func (s *BookService) Update(ctx context.Context, id primitive.ObjectID, update model.BookUpdate) error {
	res, err := s.repo.UpdateByID(ctx, id, update)
	if storeerr.IsDuplicateKey(err) {
		return bookExists()
	}
	if err != nil {
		return err
	}

	if res.Modified == 0 {
		code := "BOOK_NOT_FOUND"
		zerolog.Ctx(ctx).Debug().
			Str("book_id", id.Hex()).
			Int64("matched", res.Matched).
			Msg("update modified no book")
		return errs.NewNotFoundError(model.MsgBookIDNotExists, &code).WithFormat(errs.FormatJSONString)
	}

	return nil
}

// Delete removes the book with id.
func (s *BookService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting book %s: %w", id.Hex(), err)
	}

	if deleted == 0 {
		code := "BOOK_NOT_FOUND"
		return errs.NewNotFoundError(model.MsgBookNotFound, &code)
	}

	return nil
}

func bookExists() error {
	code := "BOOK_ALREADY_EXISTS"
	return errs.NewForbiddenError(model.MsgBookExists, &code)
}
