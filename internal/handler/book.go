package handler

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/books-api/internal/model"
	"github.com/deppfellow/books-api/internal/server"
	"github.com/deppfellow/books-api/internal/service"
)

// BookHandler serves the /books endpoints.
type BookHandler struct {
	Handler
	books *service.BookService
}

func NewBookHandler(s *server.Server, books *service.BookService) *BookHandler {
	return &BookHandler{
		Handler: NewHandler(s),
		books:   books,
	}
}

func NewListBooksRequest() *model.ListBooksRequest { return &model.ListBooksRequest{} }
func NewBookIDRequest() *model.BookIDRequest { return &model.BookIDRequest{} }
func NewCreateBookRequest() *model.CreateBookRequest { return &model.CreateBookRequest{} }
func NewUpdateBookRequest() *model.UpdateBookRequest { return &model.UpdateBookRequest{} }

func (h *BookHandler) ListBooks(c echo.Context, _ *model.ListBooksRequest) ([]model.Book, error) {
	return h.books.List(c.Request().Context())
}

func (h *BookHandler) GetBook(c echo.Context, req *model.BookIDRequest) (model.Book, error) {
	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return model.Book{}, err
	}

	return h.books.Get(c.Request().Context(), id)
}

func (h *BookHandler) CreateBook(c echo.Context, req *model.CreateBookRequest) (model.Book, error) {
	return h.books.Create(c.Request().Context(), req.Fields())
}

// UpdateBook replaces the book's fields and echoes what was sent, with the
// path id.
func (h *BookHandler) UpdateBook(c echo.Context, req *model.UpdateBookRequest) (model.UpdateBookResponse, error) {
	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return model.UpdateBookResponse{}, err
	}

	if err := h.books.Update(c.Request().Context(), id, req.Update()); err != nil {
		return model.UpdateBookResponse{}, err
	}

	return model.UpdateBookResponse{
		Message: model.MsgBookUpdated,
		Libro: model.UpdatedBook{
			ID:     req.ID,
			Title:  req.Title,
			Author: req.Author,
			Year:   req.Year,
		},
	}, nil
}

func (h *BookHandler) DeleteBook(c echo.Context, req *model.BookIDRequest) (model.DeleteBookResponse, error) {
	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return model.DeleteBookResponse{}, err
	}

	if err := h.books.Delete(c.Request().Context(), id); err != nil {
		return model.DeleteBookResponse{}, err
	}

	return model.DeleteBookResponse{
		Error:   model.MsgBookDeleted,
		Message: model.MsgBookDeleted,
	}, nil
}
