package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"harvest-keeper/internal/domain"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds every decoded request payload
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields the way clients spell them
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateRequest runs the validate tags of v
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// DecodeAndValidate reads a JSON body into v and validates it. Decode
// failures come back unwrapped so FormatValidationErrors yields nothing.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationErrors flattens validator output, one entry per field
func FormatValidationErrors(err error) []ValidationError {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil
	}

	out := make([]ValidationError, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		out = append(out, ValidationError{Field: e.Field(), Message: messageFor(e)})
	}
	return out
}

// NotAfter rejects a date later than limit, e.g. a harvest dated tomorrow
func NotAfter(field string, date, limit domain.Date) []ValidationError {
	if !date.After(limit) {
		return nil
	}
	return []ValidationError{{
		Field:   field,
		Message: fmt.Sprintf("Date must not be after %s", limit),
	}}
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "notblank":
		return "This field must not be blank"
	case "isodate":
		return "Date must use the YYYY-MM-DD format"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", e.Param())
	default:
		return "Invalid value"
	}
}
