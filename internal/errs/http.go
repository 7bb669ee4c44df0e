package errs

import (
	"net/http"
)

func newHTTPError(status int, message string, code *string, format BodyFormat) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  status,
		Format:  format,
	}
}

// NewBadRequestError returns a 400 rendered as {"error": message}.
func NewBadRequestError(message string, code *string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message, code, FormatErrorObject)
}

// NewNotFoundError returns a 404 rendered as {"error": message}.
func NewNotFoundError(message string, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, code, FormatErrorObject)
}

// NewForbiddenError returns a 403 rendered as plain text.
func NewForbiddenError(message string, code *string) *HTTPError {
	return newHTTPError(http.StatusForbidden, message, code, FormatPlainText)
}

// NewConflictError returns a 409 rendered as {"error": message}.
func NewConflictError(message string, code *string) *HTTPError {
	return newHTTPError(http.StatusConflict, message, code, FormatErrorObject)
}

// NewRouteNotFoundError is the answer to any method/path pair that has no route.
func NewRouteNotFoundError() *HTTPError {
	code := "ROUTE_NOT_FOUND"
	return newHTTPError(http.StatusNotFound, "Path not found", &code, FormatPlainText)
}

func NewServiceUnavailableError() *HTTPError {
	return newHTTPError(http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable), nil, FormatEnvelope)
}

func NewGatewayTimeoutError() *HTTPError {
	return newHTTPError(http.StatusGatewayTimeout, http.StatusText(http.StatusGatewayTimeout), nil, FormatEnvelope)
}

func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil, FormatEnvelope)
}

func NewTooManyRequestsError() *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), nil, FormatEnvelope)
}
