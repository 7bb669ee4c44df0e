package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/books-api/internal/config"
	"github.com/deppfellow/books-api/internal/errs"
	"github.com/deppfellow/books-api/internal/model"
	"github.com/deppfellow/books-api/internal/repository"
	"github.com/deppfellow/books-api/internal/server"
)

func ptr[T any](v T) *T { return &v }

func newTestService(repo repository.BookRepository) *BookService {
	logger := zerolog.Nop()
	s := &server.Server{Config: config.Default(), Logger: &logger}
	return NewBookService(s, repo)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %v", err)
	}
	return httpErr.Status
}

// racyRepository hides existing books from FindOne, the way a concurrent
// insert would, so only the unique index is left to reject duplicates.
type racyRepository struct {
	*repository.MemoryBookRepository
}

func (r racyRepository) FindOne(context.Context, model.BookFields) (model.StoredBook, error) {
	return model.StoredBook{}, repository.ErrNotFound
}

// failingRepository fails every call.
type failingRepository struct {
	err error
}

func (r failingRepository) FindAll(context.Context) ([]model.StoredBook, error) { return nil, r.err }
func (r failingRepository) FindByID(context.Context, primitive.ObjectID) (model.StoredBook, error) {
	return model.StoredBook{}, r.err
}
func (r failingRepository) FindOne(context.Context, model.BookFields) (model.StoredBook, error) {
	return model.StoredBook{}, r.err
}
func (r failingRepository) Insert(context.Context, model.BookFields) (model.StoredBook, error) {
	return model.StoredBook{}, r.err
}
func (r failingRepository) UpdateByID(context.Context, primitive.ObjectID, model.BookUpdate) (repository.UpdateResult, error) {
	return repository.UpdateResult{}, r.err
}
func (r failingRepository) DeleteByID(context.Context, primitive.ObjectID) (int64, error) {
	return 0, r.err
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(repository.NewMemoryBookRepository())

	created, err := svc.Create(ctx, model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id, err := primitive.ObjectIDFromHex(created.ID)
	if err != nil {
		t.Fatalf("expected a hex id, got %q", created.ID)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != created {
		t.Fatalf("expected %+v, got %+v", created, got)
	}
}

func TestCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(repository.NewMemoryBookRepository())
	fields := model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965}

	if _, err := svc.Create(ctx, fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status := statusOf(t, func() error { _, err := svc.Create(ctx, fields); return err }()); status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
}

func TestCreateDuplicateCaughtByIndex(t *testing.T) {
	ctx := context.Background()
	repo := racyRepository{repository.NewMemoryBookRepository()}
	svc := newTestService(repo)
	fields := model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965}

	if _, err := svc.Create(ctx, fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Create(ctx, fields)
	if status := statusOf(t, err); status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}

	all, _ := repo.FindAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected one stored book, got %d", len(all))
	}
}

func TestGetMissingIsBadRequest(t *testing.T) {
	svc := newTestService(repository.NewMemoryBookRepository())

	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	if status := statusOf(t, err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(repository.NewMemoryBookRepository())
	created, _ := svc.Create(ctx, model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965})
	id, _ := primitive.ObjectIDFromHex(created.ID)

	if err := svc.Update(ctx, id, model.BookUpdate{Title: ptr("Dune"), Author: ptr("Frank Herbert"), Year: ptr(1965)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same values again: nothing modified.
	err := svc.Update(ctx, id, model.BookUpdate{Title: ptr("Dune"), Author: ptr("Frank Herbert"), Year: ptr(1965)})
	if status := statusOf(t, err); status != http.StatusNotFound {
		t.Fatalf("expected 404 for an update that changes nothing, got %d", status)
	}

	err = svc.Update(ctx, primitive.NewObjectID(), model.BookUpdate{Title: ptr("x")})
	if status := statusOf(t, err); status != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown id, got %d", status)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(repository.NewMemoryBookRepository())
	created, _ := svc.Create(ctx, model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965})
	id, _ := primitive.ObjectIDFromHex(created.ID)

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status := statusOf(t, svc.Delete(ctx, id)); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestStoreFaultsPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	svc := newTestService(failingRepository{err: boom})

	if _, err := svc.List(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected list to return store error, got %v", err)
	}
	if _, err := svc.Get(ctx, primitive.NewObjectID()); !errors.Is(err, boom) {
		t.Fatalf("expected get to return store error, got %v", err)
	}
	if _, err := svc.Create(ctx, model.BookFields{Title: "x"}); !errors.Is(err, boom) {
		t.Fatalf("expected create to return store error, got %v", err)
	}
	if err := svc.Update(ctx, primitive.NewObjectID(), model.BookUpdate{}); !errors.Is(err, boom) {
		t.Fatalf("expected update to return store error, got %v", err)
	}
	if err := svc.Delete(ctx, primitive.NewObjectID()); !errors.Is(err, boom) {
		t.Fatalf("expected delete to return store error, got %v", err)
	}
}
