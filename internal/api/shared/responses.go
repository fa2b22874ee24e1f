package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse defines the standard error response structure. Every error
// the API returns carries at least the Error field.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Code    int           `json:"-"` // Not serialized, used for logging
	TraceID string        `json:"trace_id,omitempty"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails nests the code/message/details triple that validation and
// conflict responses carry alongside the flat error message.
type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message, echoing the request's trace ID when one is set.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		Code:    status,
		TraceID: traceID,
	})
}

// RespondWithDetailedError writes a JSON error response carrying the nested
// code/message/details structure used by validation and conflict errors.
func RespondWithDetailedError(w http.ResponseWriter, r *http.Request, status int, message, details string) {
	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		Code:    status,
		TraceID: GetTraceID(r.Context()),
		Details: &ErrorDetails{
			Code:    status,
			Message: message,
			Details: details,
		},
	})
}
