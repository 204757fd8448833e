// Package apierror writes error responses in the {"detail": "..."} envelope
// and decodes validated request bodies.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
)

// ErrBadRequest marks malformed request input rejected before reaching the engine.
var ErrBadRequest = errors.New("bad request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

type response struct {
	Detail string `json:"detail"`
}

// StatusFor maps engine errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, agency.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, agency.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, agency.ErrInvalidBreed), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, agency.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err with its mapped status. Internal errors are logged and
// replaced by a generic detail.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)

		detail = "internal server error"
	}

	Write(w, status, detail)
}

func Write(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, response{Detail: detail})
}

// JSON encodes v as the response body.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON body into dst and runs its validate tags. Malformed
// JSON yields ErrBadRequest; tag failures yield agency.ErrValidation.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %s must be %s", agency.ErrValidation, typeErr.Field, typeErr.Type)
		}

		return fmt.Errorf("%w: invalid JSON body: %w", ErrBadRequest, err)
	}

	return Validate(dst)
}

// Validate runs the validate tags of v.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", agency.ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}

	return fmt.Errorf("%w: %s", agency.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "notblank":
		return field + " must not be blank"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
