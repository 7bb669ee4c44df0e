package repository

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/books-api/internal/model"
)

// MemoryBookRepository is an in-memory BookRepository with the same
// semantics as the MongoDB one, including the unique (title, author, year)
// index. It is safe for concurrent use.
type MemoryBookRepository struct {
	mu    sync.RWMutex
	books map[primitive.ObjectID]memoryBook
	order []primitive.ObjectID
}

// memoryBook is a stored book plus which of its fields hold null. Null and
// the zero value read back the same but are different stored values: an
// update from one to the other modifies the record, and the unique index
// tells them apart.
type memoryBook struct {
	book  model.StoredBook
	nulls nullFields
}

type nullFields struct {
	title, author, year bool
}

// NewMemoryBookRepository constructs a MemoryBookRepository seeded with the
// provided books. Seed records without an id get one assigned.
func NewMemoryBookRepository(seed ...model.StoredBook) *MemoryBookRepository {
	repo := &MemoryBookRepository{
		books: make(map[primitive.ObjectID]memoryBook, len(seed)),
	}

	for _, book := range seed {
		if book.ID.IsZero() {
			book.ID = primitive.NewObjectID()
		}
		repo.books[book.ID] = memoryBook{book: book}
		repo.order = append(repo.order, book.ID)
	}

	return repo
}

// FindAll returns all books in insertion order.
func (r *MemoryBookRepository) FindAll(_ context.Context) ([]model.StoredBook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.StoredBook, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.books[id].book)
	}

	return result, nil
}

func (r *MemoryBookRepository) FindByID(_ context.Context, id primitive.ObjectID) (model.StoredBook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.books[id]
	if !ok {
		return model.StoredBook{}, ErrNotFound
	}
	return stored.book, nil
}

// FindOne matches fields exactly; a null field never matches a zero value.
func (r *MemoryBookRepository) FindOne(_ context.Context, filter model.BookFields) (model.StoredBook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if stored, ok := r.match(fieldsRecord(filter), primitive.NilObjectID); ok {
		return stored.book, nil
	}
	return model.StoredBook{}, ErrNotFound
}

// Insert adds a new book, assigning it a fresh ObjectID.
func (r *MemoryBookRepository) Insert(_ context.Context, fields model.BookFields) (model.StoredBook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.match(fieldsRecord(fields), primitive.NilObjectID); ok {
		return model.StoredBook{}, ErrDuplicateKey
	}

	stored := fieldsRecord(fields)
	stored.book.ID = primitive.NewObjectID()

	r.books[stored.book.ID] = stored
	r.order = append(r.order, stored.book.ID)

	return stored.book, nil
}

// UpdateByID overwrites all three content fields; nil fields are stored as
// null and read back as zero values.
func (r *MemoryBookRepository) UpdateByID(_ context.Context, id primitive.ObjectID, update model.BookUpdate) (UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.books[id]
	if !ok {
		return UpdateResult{}, nil
	}

	next := memoryBook{book: model.StoredBook{ID: id}}
	if update.Title != nil {
		next.book.Title = *update.Title
	} else {
		next.nulls.title = true
	}
	if update.Author != nil {
		next.book.Author = *update.Author
	} else {
		next.nulls.author = true
	}
	if update.Year != nil {
		next.book.Year = *update.Year
	} else {
		next.nulls.year = true
	}

	if next == current {
		return UpdateResult{Matched: 1}, nil
	}

	if _, ok := r.match(next, id); ok {
		return UpdateResult{}, ErrDuplicateKey
	}

	r.books[id] = next

	return UpdateResult{Matched: 1, Modified: 1}, nil
}

func (r *MemoryBookRepository) DeleteByID(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return 0, nil
	}

	delete(r.books, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return 1, nil
}

// match finds a book other than except whose stored values, nulls
// included, equal want's. Callers hold the lock.
func (r *MemoryBookRepository) match(want memoryBook, except primitive.ObjectID) (memoryBook, bool) {
	for _, id := range r.order {
		if id == except {
			continue
		}
		if stored := r.books[id]; sameValues(stored, want) {
			return stored, true
		}
	}
	return memoryBook{}, false
}

func sameValues(a, b memoryBook) bool {
	a.book.ID, b.book.ID = primitive.NilObjectID, primitive.NilObjectID
	return a == b
}

func fieldsRecord(fields model.BookFields) memoryBook {
	return memoryBook{book: model.StoredBook{Title: fields.Title, Author: fields.Author, Year: fields.Year}}
}
