package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"eventticketing/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeForbidden       = "forbidden"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodePaymentRequired = "payment_required"
	ErrCodeUnavailable     = "unavailable"
	ErrCodeInternalError   = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// StatusForError maps a service error to an HTTP status and error code.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrInvalidData):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, domain.ErrPaymentRejected):
		return http.StatusPaymentRequired, ErrCodePaymentRequired
	case errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, domain.ErrTerminalState),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrNotRegistered),
		errors.Is(err, domain.ErrAlreadyCheckedIn),
		errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrLockTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrCodeUnavailable
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteServiceError writes the envelope for a service error. Unmapped errors are logged and returned as 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := StatusForError(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	WriteJSONError(w, status, code, err.Error())
}
