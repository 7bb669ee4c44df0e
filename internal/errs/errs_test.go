package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	custom := "BOOK_NOT_FOUND"

	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
		wantFormat BodyFormat
	}{
		{name: "bad request", err: NewBadRequestError("x", nil), wantStatus: http.StatusBadRequest, wantCode: "BAD_REQUEST", wantFormat: FormatErrorObject},
		{name: "bad request custom code", err: NewBadRequestError("x", &custom), wantStatus: http.StatusBadRequest, wantCode: custom, wantFormat: FormatErrorObject},
		{name: "not found", err: NewNotFoundError("x", nil), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND", wantFormat: FormatErrorObject},
		{name: "forbidden", err: NewForbiddenError("x", nil), wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN", wantFormat: FormatPlainText},
		{name: "conflict", err: NewConflictError("x", nil), wantStatus: http.StatusConflict, wantCode: "CONFLICT", wantFormat: FormatErrorObject},
		{name: "route", err: NewRouteNotFoundError(), wantStatus: http.StatusNotFound, wantCode: "ROUTE_NOT_FOUND", wantFormat: FormatPlainText},
		{name: "internal", err: NewInternalServerError(), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_SERVER_ERROR", wantFormat: FormatEnvelope},
		{name: "timeout", err: NewGatewayTimeoutError(), wantStatus: http.StatusGatewayTimeout, wantCode: "GATEWAY_TIMEOUT", wantFormat: FormatEnvelope},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Status != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, tc.err.Status)
			}
			if tc.err.Code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, tc.err.Code)
			}
			if tc.err.Format != tc.wantFormat {
				t.Fatalf("expected format %d, got %d", tc.wantFormat, tc.err.Format)
			}
		})
	}
}

func TestWithFormatCopies(t *testing.T) {
	original := NewNotFoundError("gone", nil)
	changed := original.WithFormat(FormatJSONString)

	if original.Format != FormatErrorObject {
		t.Fatalf("original error was modified")
	}
	if changed.Format != FormatJSONString || changed.Message != "gone" || changed.Status != http.StatusNotFound {
		t.Fatalf("unexpected copy: %+v", changed)
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("creating book: %w", NewForbiddenError("dup", nil))

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatalf("expected errors.As to find *HTTPError")
	}
	if httpErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", httpErr.Status)
	}
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	if got := MakeUpperCaseWithUnderscores("Not Found"); got != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %q", got)
	}
}
