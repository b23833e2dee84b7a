package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"scrollforcause/platform/internal/feed"
)

// ErrorDetail is the body of a structured error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps every non-2xx body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	jsonBytes, err := json.Marshal(body)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error marshaling JSON response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonBytes); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error writing JSON response body to client")
	}
}

func writeErrorCode(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	writeJSON(w, r, status, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// writeError maps application errors onto the wire: validation failures are
// 400 with field-level details, store failures are 503 so clients know they
// may retry, anything else is an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *feed.ValidationError
	if errors.As(err, &valErr) {
		writeErrorCode(w, r, http.StatusBadRequest, feed.CodeValidation, "Validation failed.", valErr.Details)
		return
	}

	var depErr *feed.DependencyError
	if errors.As(err, &depErr) {
		hlog.FromRequest(r).Error().Err(err).Msg("Dependency failure")
		writeErrorCode(w, r, http.StatusServiceUnavailable, feed.CodeDependency, "Service temporarily unavailable.", nil)
		return
	}

	hlog.FromRequest(r).Error().Err(err).Msg("Unhandled error")
	writeErrorCode(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred.", nil)
}
