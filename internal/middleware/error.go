package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Machine-readable codes carried in the error envelope
const (
	CodeBadRequest  = "bad_request"
	CodeValidation  = "validation_failed"
	CodeNotFound    = "not_found"
	CodeRateLimited = "rate_limited"
	CodeInternal    = "internal_error"
)

// ErrorResponse is the envelope every failed request gets
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ErrorMapping ties a sentinel error to what the client is told about it.
// An empty Message means the error text itself is safe to show.
type ErrorMapping struct {
	Err     error
	Status  int
	Message string
}

var now = time.Now

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusTooManyRequests:
		return CodeRateLimited
	}
	if status >= http.StatusInternalServerError {
		return CodeInternal
	}
	return http.StatusText(status)
}

func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	writeError(w, statusCode, codeFor(statusCode), message, nil)
}

func RespondWithErrorDetails(w http.ResponseWriter, statusCode int, message string, details map[string]interface{}) {
	writeError(w, statusCode, codeFor(statusCode), message, details)
}

// RespondWithValidationErrors reports field problems under details.validation_errors
func RespondWithValidationErrors(w http.ResponseWriter, fieldErrors []ValidationError) {
	writeError(w, http.StatusBadRequest, CodeValidation, "validation failed", map[string]interface{}{
		"validation_errors": fieldErrors,
	})
}

// RespondWithMappedError answers with the first mapping err matches. Anything
// unmapped is logged and reported as a 500 carrying fallback.
func RespondWithMappedError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string, mappings ...ErrorMapping) {
	for _, m := range mappings {
		if !errors.Is(err, m.Err) {
			continue
		}
		message := m.Message
		if message == "" {
			message = err.Error()
		}
		RespondWithError(w, m.Status, message)
		return
	}

	logger.Error(fallback, zap.Error(err))
	RespondWithError(w, http.StatusInternalServerError, fallback)
}

func writeError(w http.ResponseWriter, statusCode int, code, message string, details map[string]interface{}) {
	RespondWithJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			Timestamp: now().UTC().Format(time.RFC3339),
		},
	})
}

// ErrorHandlingMiddleware turns a panicking handler into a 500 envelope
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Panic recovered",
					zap.Any("error", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				)
				RespondWithError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
