package model

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/deppfellow/books-api/internal/errs"
	"github.com/deppfellow/books-api/internal/validation"
)

// Client-facing messages. They are part of the API contract.
const (
	MsgIDMissing       = "Bad request, ID missing in path"
	MsgIDInvalid       = "Bad request, invalid ID in path"
	MsgFieldMissing    = "Bad request, some field missing in request body"
	MsgNoUpdateFields  = "Debe enviar al menos un campo para actualizar (title, author, year)"
	MsgBookExists      = "Book already exists in DB"
	MsgBookNotFound    = "Libro no encontrado"
	MsgBookIDNotExists = "error : El ID del libro no existe."
	MsgBookUpdated     = "Libro actualizado exitosamente"
	MsgBookDeleted     = "Libro eliminado exitosamente"
)

const (
	codeIDMissing      = "ID_MISSING"
	codeIDInvalid      = "INVALID_ID"
	codeFieldMissing   = "FIELD_MISSING"
	codeNoUpdateFields = "NO_UPDATE_FIELDS"
)

// ListBooksRequest carries nothing; listing takes no input.
type ListBooksRequest struct{}

func (r *ListBooksRequest) Validate() error { return nil }

// BookIDRequest is the input of every /books/_id/{id} operation.
type BookIDRequest struct {
	ID string `param:"id" json:"-" validate:"required,objectid"`
}

func (r *BookIDRequest) Validate() error {
	return validateID(r.ID, r)
}

// CreateBookRequest is the body of POST /books. All three fields must be
// present and non-zero.
type CreateBookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Year   Year   `json:"year" validate:"required"`
}

func (r *CreateBookRequest) Validate() error {
	if fieldErrors := validation.Struct(r); fieldErrors != nil {
		code := codeFieldMissing
		return errs.NewBadRequestError(MsgFieldMissing, &code).
			WithFormat(errs.FormatJSONString).
			WithErrors(fieldErrors)
	}
	return nil
}

// Fields returns the content fields of the request.
func (r *CreateBookRequest) Fields() BookFields {
	return BookFields{Title: r.Title, Author: r.Author, Year: int(r.Year)}
}

// UpdateBookRequest is the input of PUT /books/_id/{id}. At least one of the
// body fields must be present and non-zero.
type UpdateBookRequest struct {
	ID     string  `param:"id" json:"-" validate:"required,objectid"`
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Year   *Year   `json:"year"`
}

func (r *UpdateBookRequest) Validate() error {
	if err := validateID(r.ID, r); err != nil {
		return err
	}

	if isZero(r.Title) && isZero(r.Author) && isZero(r.Year) {
		code := codeNoUpdateFields
		return errs.NewBadRequestError(MsgNoUpdateFields, &code)
	}

	return nil
}

// Update returns the field replacement to apply. Fields absent from the
// request are written as null.
func (r *UpdateBookRequest) Update() BookUpdate {
	update := BookUpdate{Title: r.Title, Author: r.Author}
	if r.Year != nil {
		year := int(*r.Year)
		update.Year = &year
	}
	return update
}

// UpdatedBook echoes an update. Absent fields are omitted.
type UpdatedBook struct {
	ID     string  `json:"id"`
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
	Year   *Year   `json:"year,omitempty"`
}

// UpdateBookResponse is the body of a successful update.
type UpdateBookResponse struct {
	Message string      `json:"message"`
	Libro   UpdatedBook `json:"libro"`
}

// DeleteBookResponse is the body of a successful delete. Error holds the
// success message too; existing clients read that key.
type DeleteBookResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Year is a publication year as sent by clients. Any JSON number with an
// integral value is accepted, whatever its notation (1965, 1965.0, 1.965e3).
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return fmt.Errorf("year %s is not an integer", data)
	}

	*y = Year(n)
	return nil
}

// validateID runs the struct tags of v and reports a failure as a missing
// or a malformed id.
func validateID(id string, v any) error {
	fieldErrors := validation.Struct(v)
	if fieldErrors == nil {
		return nil
	}

	if id == "" {
		code := codeIDMissing
		return errs.NewBadRequestError(MsgIDMissing, &code)
	}

	code := codeIDInvalid
	return errs.NewBadRequestError(MsgIDInvalid, &code).WithErrors(fieldErrors)
}

func isZero[T comparable](v *T) bool {
	var zero T
	return v == nil || *v == zero
}
