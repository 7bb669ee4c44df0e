package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/books-api/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestMemoryInsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookRepository()

	created, err := repo.Insert(ctx, model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatalf("expected an assigned id")
	}

	got, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != created {
		t.Fatalf("expected %+v, got %+v", created, got)
	}

	byFilter, err := repo.FindOne(ctx, model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965})
	if err != nil || byFilter.ID != created.ID {
		t.Fatalf("expected filter lookup to find %s, got %+v (%v)", created.ID.Hex(), byFilter, err)
	}
}

func TestMemoryFindMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookRepository()

	if _, err := repo.FindByID(ctx, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.FindOne(ctx, model.BookFields{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryInsertDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookRepository()
	fields := model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965}

	if _, err := repo.Insert(ctx, fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Insert(ctx, fields); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestMemoryConcurrentInsertKeepsUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookRepository()
	fields := model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Insert(ctx, fields)
		}()
	}
	wg.Wait()

	all, _ := repo.FindAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(all))
	}
}

func TestMemoryUpdateReplacesFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookRepository()
	created, _ := repo.Insert(ctx, model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965})

	res, err := repo.UpdateByID(ctx, created.ID, model.BookUpdate{Title: ptr("Dune Messiah")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Matched != 1 || res.Modified != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	got, _ := repo.FindByID(ctx, created.ID)
	want := model.StoredBook{ID: created.ID, Title: "Dune Messiah"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMemoryUpdateUnchangedAndMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookRepository()
	created, _ := repo.Insert(ctx, model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965})

	res, err := repo.UpdateByID(ctx, created.ID, model.BookUpdate{Title: ptr("Dune"), Author: ptr("Herbert"), Year: ptr(1965)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Matched != 1 || res.Modified != 0 {
		t.Fatalf("expected matched but unmodified, got %+v", res)
	}

	res, err = repo.UpdateByID(ctx, primitive.NewObjectID(), model.BookUpdate{Title: ptr("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Matched != 0 || res.Modified != 0 {
		t.Fatalf("expected no match, got %+v", res)
	}
}

func TestMemoryUpdateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookRepository()
	_, _ = repo.Insert(ctx, model.BookFields{Title: "Dune"})
	second, _ := repo.Insert(ctx, model.BookFields{Title: "Emma", Author: "Austen", Year: 1815})

	update := model.BookUpdate{Title: ptr("Dune"), Author: ptr(""), Year: ptr(0)}
	if _, err := repo.UpdateByID(ctx, second.ID, update); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	first := model.StoredBook{ID: primitive.NewObjectID(), Title: "A"}
	second := model.StoredBook{ID: primitive.NewObjectID(), Title: "B"}
	repo := NewMemoryBookRepository(first, second)

	deleted, err := repo.DeleteByID(ctx, first.ID)
	if err != nil || deleted != 1 {
		t.Fatalf("expected one deletion, got %d (%v)", deleted, err)
	}

	deleted, err = repo.DeleteByID(ctx, first.ID)
	if err != nil || deleted != 0 {
		t.Fatalf("expected no deletion, got %d (%v)", deleted, err)
	}

	all, _ := repo.FindAll(ctx)
	if len(all) != 1 || all[0].ID != second.ID {
		t.Fatalf("unexpected remaining books: %+v", all)
	}
}

func TestMemoryUpdateNullDiffersFromZeroValue(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookRepository()
	created, _ := repo.Insert(ctx, model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965})

	// Author set to "" explicitly, year left null.
	res, err := repo.UpdateByID(ctx, created.ID, model.BookUpdate{Title: ptr("Dune"), Author: ptr("")})
	if err != nil || res.Modified != 1 {
		t.Fatalf("expected one modification, got %+v (%v)", res, err)
	}

	// Same request again changes nothing.
	res, err = repo.UpdateByID(ctx, created.ID, model.BookUpdate{Title: ptr("Dune"), Author: ptr("")})
	if err != nil || res.Matched != 1 || res.Modified != 0 {
		t.Fatalf("expected matched but unmodified, got %+v (%v)", res, err)
	}

	// Author "" becomes null, which reads the same but is a different value.
	res, err = repo.UpdateByID(ctx, created.ID, model.BookUpdate{Title: ptr("Dune")})
	if err != nil || res.Modified != 1 {
		t.Fatalf("expected \"\" to null to modify the book, got %+v (%v)", res, err)
	}

	got, _ := repo.FindByID(ctx, created.ID)
	if want := (model.StoredBook{ID: created.ID, Title: "Dune"}); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMemoryUniqueIndexSeparatesNullFromZeroValue(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookRepository()
	first, _ := repo.Insert(ctx, model.BookFields{Title: "Dune", Author: "Herbert", Year: 1965})
	second, _ := repo.Insert(ctx, model.BookFields{Title: "Emma", Author: "Austen", Year: 1815})

	if _, err := repo.UpdateByID(ctx, first.ID, model.BookUpdate{Title: ptr("Dune")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// {Dune, "", 0} is not the same key as {Dune, null, null}.
	_, err := repo.UpdateByID(ctx, second.ID, model.BookUpdate{Title: ptr("Dune"), Author: ptr(""), Year: ptr(0)})
	if err != nil {
		t.Fatalf("expected no duplicate, got %v", err)
	}

	// {Dune, null, null} is.
	if _, err := repo.UpdateByID(ctx, second.ID, model.BookUpdate{Title: ptr("Dune")}); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}
