package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "title", "error": "is required" }
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "title").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// BodyFormat selects how an HTTPError is rendered on the wire.
//
// The books API answers errors in several shapes and clients depend on
// each of them, so the shape travels with the error instead of being
// decided by the error handler.
type BodyFormat int

const (
	// FormatEnvelope renders the full HTTPError as JSON
	// ({"code", "message", "status", "errors"}).
	FormatEnvelope BodyFormat = iota

	// FormatErrorObject renders {"error": "<message>"}.
	FormatErrorObject

	// FormatJSONString renders the message as a bare JSON string.
	FormatJSONString

	// FormatPlainText renders the message as text/plain.
	FormatPlainText
)

// HTTPError is the application error type returned by handlers and services.
//
// It implements error, and the global error handler turns it into the HTTP
// response described by Status and Format.
type HTTPError struct {
	// Code is a stable machine-readable identifier (e.g. "BOOK_NOT_FOUND").
	Code string `json:"code"`

	// Message is the human-readable message sent to the client.
	Message string `json:"message"`

	// Status is the HTTP status code.
	Status int `json:"status"`

	// Errors holds field-level details, when there are any.
	Errors []FieldError `json:"errors,omitempty"`

	// Format is the wire shape; it is never serialized itself.
	Format BodyFormat `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError, regardless of its content.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithFormat returns a copy of the error rendered with the given body format.
func (e *HTTPError) WithFormat(format BodyFormat) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Errors:  e.Errors,
		Format:  format,
	}
}

// WithErrors returns a copy of the error carrying field-level details.
func (e *HTTPError) WithErrors(fieldErrors []FieldError) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Errors:  fieldErrors,
		Format:  e.Format,
	}
}

// MakeUpperCaseWithUnderscores turns "Not Found" into "NOT_FOUND".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
