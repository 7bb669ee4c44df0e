package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/books-api/internal/middleware"
	"github.com/deppfellow/books-api/internal/server"
	"github.com/deppfellow/books-api/internal/validation"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers (BookHandler, HealthHandler, ...) embed it to reach the
// config, logger and store through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// HandlerFunc is a typed endpoint function that receives a bound and
// validated request payload and returns a response or an error.
//
// Req is a pointer type, e.g. *model.CreateBookRequest, so binding can
// populate it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler defines how a successful handler result is written to the
// HTTP response, and which observability attributes go with it.
type ResponseHandler interface {
	// Handle writes the HTTP response for the given result.
	Handle(c echo.Context, result any) error

	// GetOperation returns an operation name used for structured logging.
	GetOperation() string

	// AddAttributes attaches New Relic attributes based on response type and/or result.
	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	// http.status_code is already set by tracing middleware (EnhanceTracing).
}

// handleRequest is the shared execution pipeline for all handlers.
//
// It centralizes binding and validation, structured logging with request
// context, New Relic attributes and error reporting, timing, and response
// writing. Errors are returned untouched for the global error handler.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	// New Relic transaction is set by the nrecho middleware.
	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	// The context-enhanced logger already carries request_id and trace ids.
	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Warn().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with binding, validation, logging and
// tracing, and returns an echo.HandlerFunc for route registration.
//
// newReq is called once per request so concurrent requests never share a
// payload.
//
//	e.POST("/books", handler.Handle(h.Handler, h.CreateBook, http.StatusOK, newCreateBookRequest))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq(), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
