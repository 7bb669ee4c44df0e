package router

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/books-api/internal/errs"
	"github.com/deppfellow/books-api/internal/handler"
)

// registerBookRoutes registers the /books endpoints.
//
// The id-less "/books/_id" routes share the id handlers, which answer them
// with a missing-id 400.
func registerBookRoutes(r *echo.Echo, h *handler.Handlers) {
	books := h.Books
	base := books.Handler

	r.GET("/books", handler.Handle(base, books.ListBooks, http.StatusOK, handler.NewListBooksRequest))
	r.POST("/books", handler.Handle(base, books.CreateBook, http.StatusOK, handler.NewCreateBookRequest))

	getBook := handler.Handle(base, books.GetBook, http.StatusOK, handler.NewBookIDRequest)
	updateBook := handler.Handle(base, books.UpdateBook, http.StatusOK, handler.NewUpdateBookRequest)
	deleteBook := handler.Handle(base, books.DeleteBook, http.StatusOK, handler.NewBookIDRequest)

	for _, path := range []string{"/books/_id/:id", "/books/_id"} {
		r.GET(path, getBook, singleSegmentID)
		r.PUT(path, updateBook, singleSegmentID)
		r.DELETE(path, deleteBook, singleSegmentID)
	}
}

// singleSegmentID rejects paths with segments after the id. Echo hands the
// rest of the path to a trailing param, so "/books/_id/<id>/x" would
// otherwise reach the handler with id "<id>/x".
func singleSegmentID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.Contains(c.Param("id"), "/") {
			return errs.NewRouteNotFoundError()
		}
		return next(c)
	}
}
