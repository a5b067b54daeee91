// Package shared provides helpers used across all API handlers: JSON
// response writers, error envelopes, and request-scoped context values.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the standard envelope for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already written; all we can do is log.
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a standardized JSON error response. The message
// must already be safe for external consumption.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, status, ErrorResponse{
		Error:   message,
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog logs the internal error with request context and
// writes a safe external message to the client. The internal error never
// reaches the response body.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, logger *slog.Logger, internalErr error, status int, safeMessage string) {
	if logger != nil && internalErr != nil {
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("trace_id", GetTraceID(r.Context())),
			slog.String("error", internalErr.Error()),
		)
	}
	RespondWithError(w, r, status, safeMessage)
}
