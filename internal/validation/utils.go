package validation

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deppfellow/books-api/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves. Validate should return an *errs.HTTPError so the
// payload decides the response the client sees.
type Validatable interface {
	Validate() error
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
//
// Field names in errors are the JSON (or path param) names, and the
// "objectid" tag checks for a 24-character hex ObjectID.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "param"} {
				name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return strings.ToLower(field.Name)
		})

		_ = validate.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return primitive.IsValidObjectID(fl.Field().String())
		})
	})

	return validate
}

// BindAndValidate binds the request into payload and validates it.
//
// Flow:
//  1. the JSON body, when the method carries one (an empty body is allowed)
//  2. path parameters (`param:"..."` tags), which win over body fields
//  3. payload.Validate()
//
// payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := bindBody(c, payload); err != nil {
		return err
	}

	if err := (&echo.DefaultBinder{}).BindPathParams(c, payload); err != nil {
		code := "INVALID_PATH"
		return errs.NewBadRequestError("Bad request, invalid path parameters", &code)
	}

	return payload.Validate()
}

func bindBody(c echo.Context, payload any) error {
	req := c.Request()

	switch req.Method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		return nil
	}

	if req.Body == nil || req.ContentLength == 0 {
		return nil
	}

	// The body is decoded whatever the Content-Type says; clients of this API
	// do not always send one.
	err := c.Echo().JSONSerializer.Deserialize(c, payload)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	code := "INVALID_BODY"
	return errs.NewBadRequestError("Bad request, invalid JSON body", &code)
}

// Struct runs the shared validator over v and returns the failures as
// field errors, or nil when v is valid.
func Struct(v any) []errs.FieldError {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	return extractFieldErrors(validationErrors)
}

func extractFieldErrors(validationErrors validator.ValidationErrors) []errs.FieldError {
	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))

	for _, err := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: messageFor(err.Tag(), err.Param(), err.Kind()),
		})
	}

	return fieldErrors
}

func messageFor(tag, param string, kind reflect.Kind) string {
	switch tag {
	case "required":
		return "is required"

	case "objectid":
		return "must be a valid ObjectID"

	case "min":
		if kind == reflect.String {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return fmt.Sprintf("must be at least %s", param)

	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", param)
		}
		return fmt.Sprintf("must not exceed %s", param)

	default:
		if param != "" {
			return fmt.Sprintf("%s:%s", tag, param)
		}
		return tag
	}
}
