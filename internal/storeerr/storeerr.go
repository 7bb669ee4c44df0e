// Package storeerr translates document store errors into
// application HTTP errors.
//
// Handlers let unexpected errors bubble up; the global error handler
// passes them through HandleError so clients get a stable status code and
// body instead of a raw driver message.
package storeerr

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/books-api/internal/errs"
	"github.com/deppfellow/books-api/internal/repository"
)

// dupKeyPattern pulls the offending key document out of an E11000 message,
// e.g. `dup key: { title: "Dune", author: "Herbert", year: 1965 }`.
var dupKeyPattern = regexp.MustCompile(`dup key: \{\s*(.*?)\s*\}`)

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, repository.ErrDuplicateKey) || mongo.IsDuplicateKeyError(err)
}

// HandleError converts err into an *errs.HTTPError.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, mongo.ErrNoDocuments):
		return errs.NewNotFoundError("Resource not found", nil)

	case IsDuplicateKey(err):
		code := "BOOK_ALREADY_EXISTS"
		return errs.NewConflictError(duplicateMessage(err), &code)

	case errors.Is(err, primitive.ErrInvalidHex):
		code := "INVALID_ID"
		return errs.NewBadRequestError("Bad request, invalid ID in path", &code)

	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return errs.NewGatewayTimeoutError()

	case mongo.IsNetworkError(err), errors.Is(err, mongo.ErrClientDisconnected):
		return errs.NewServiceUnavailableError()
	}

	return errs.NewInternalServerError()
}

// duplicateMessage names the conflicting fields when the driver reports them.
func duplicateMessage(err error) string {
	fields := duplicateFields(err.Error())
	if len(fields) == 0 {
		return "A book with these fields already exists"
	}

	return fmt.Sprintf("A book with this %s already exists", joinFields(fields))
}

func duplicateFields(message string) []string {
	matches := dupKeyPattern.FindStringSubmatch(message)
	if len(matches) < 2 || matches[1] == "" {
		return nil
	}

	var fields []string
	for _, pair := range strings.Split(matches[1], ", ") {
		name, _, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		fields = append(fields, humanizeText(strings.TrimSpace(name)))
	}
	return fields
}

func joinFields(fields []string) string {
	if len(fields) == 1 {
		return fields[0]
	}
	return strings.Join(fields[:len(fields)-1], ", ") + " and " + fields[len(fields)-1]
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
