package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/books-api/internal/errs"
	"github.com/deppfellow/books-api/internal/server"
	"github.com/deppfellow/books-api/internal/storeerr"
)

// GlobalMiddlewares groups global middleware and the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger returns Echo's request logger middleware writing one "API"
// line per request through zerolog, with the level chosen by status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The response is written by GlobalErrorHandler after this runs,
			// so the status of a failed request comes from its error.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware. A recovered panic
// reaches GlobalErrorHandler as an error and becomes a 500.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return err
		},
	})
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Unmatched routes and methods become the plain-text "Path not found" 404.
// Any other error that is not an *errs.HTTPError is classified by
// storeerr.HandleError. The response body takes the shape named by the
// error's Format.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err
	httpErr := toHTTPError(err)

	logger := *GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}

	e.
		Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if werr := writeError(c, httpErr); werr != nil {
		logger.Error().Err(werr).Msg("failed to write error response")
	}
}

func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return errs.NewRouteNotFoundError()
		}

		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}

		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
			Format:  errs.FormatEnvelope,
		}
	}

	if errors.As(storeerr.HandleError(err), &httpErr) {
		return httpErr
	}

	return errs.NewInternalServerError()
}

func writeError(c echo.Context, httpErr *errs.HTTPError) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(httpErr.Status)
	}

	switch httpErr.Format {
	case errs.FormatErrorObject:
		return c.JSON(httpErr.Status, map[string]string{"error": httpErr.Message})
	case errs.FormatJSONString:
		return c.JSON(httpErr.Status, httpErr.Message)
	case errs.FormatPlainText:
		return c.String(httpErr.Status, httpErr.Message)
	default:
		return c.JSON(httpErr.Status, httpErr)
	}
}

func statusOf(err error) int {
	return toHTTPError(err).Status
}
