package model

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToBook(t *testing.T) {
	id := primitive.NewObjectID()
	stored := StoredBook{ID: id, Title: "Dune", Author: "Herbert", Year: 1965}

	got := ToBook(stored)
	want := Book{ID: id.Hex(), Title: "Dune", Author: "Herbert", Year: 1965}

	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestToBook_JSONShape(t *testing.T) {
	id, err := primitive.ObjectIDFromHex("65a1b2c3d4e5f60718293a4b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(ToBook(StoredBook{ID: id, Title: "Dune", Author: "Herbert", Year: 1965}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"id":"65a1b2c3d4e5f60718293a4b","title":"Dune","author":"Herbert","year":1965}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestToBooks_Empty(t *testing.T) {
	books := ToBooks(nil)
	if books == nil {
		t.Fatalf("expected empty slice, got nil")
	}

	data, _ := json.Marshal(books)
	if string(data) != "[]" {
		t.Fatalf("expected [], got %s", data)
	}
}

func TestToBooks_PreservesOrder(t *testing.T) {
	stored := []StoredBook{
		{ID: primitive.NewObjectID(), Title: "A"},
		{ID: primitive.NewObjectID(), Title: "B"},
	}

	books := ToBooks(stored)
	if len(books) != 2 || books[0].Title != "A" || books[1].Title != "B" {
		t.Fatalf("unexpected mapping: %+v", books)
	}
	if books[0].ID != stored[0].ID.Hex() {
		t.Fatalf("expected id %s, got %s", stored[0].ID.Hex(), books[0].ID)
	}
}

func TestBookUpdate_AbsentFieldsAreWrittenAsNull(t *testing.T) {
	title := "Children of Dune"

	data, err := bson.Marshal(bson.M{"$set": BookUpdate{Title: &title}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Set bson.M `bson:"$set"`
	}
	if err := bson.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Set["title"] != title {
		t.Fatalf("expected title %q, got %v", title, doc.Set["title"])
	}
	for _, field := range []string{"author", "year"} {
		value, ok := doc.Set[field]
		if !ok || value != nil {
			t.Fatalf("expected %s to be set to null, got %v (present %t)", field, value, ok)
		}
	}
}

func TestStoredBook_NullFieldsReadAsZeroValues(t *testing.T) {
	id := primitive.NewObjectID()
	title := "Children of Dune"

	data, err := bson.Marshal(bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "author", Value: nil},
		{Key: "year", Value: nil},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stored StoredBook
	if err := bson.Unmarshal(data, &stored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := StoredBook{ID: id, Title: title}
	if stored != want {
		t.Fatalf("expected %+v, got %+v", want, stored)
	}
}
