// Package server provides a thin chi-based HTTP boundary that a CLI or host
// application mounts handlers onto, per spec.md §6's description of the
// full API server as an external collaborator: this package carries only
// the serving shell (routing, middleware, response envelopes) the teacher
// repo already built, not a complete STAC API implementation.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// APIError is a STAC-compliant error response body.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Standard STAC error codes.
const (
	ErrCodeBadRequest       = "BadRequest"
	ErrCodeNotFound         = "NotFound"
	ErrCodeInvalidParameter = "InvalidParameterValue"
	ErrCodeServerError      = "ServerError"
)

// WriteJSON writes a JSON response with the given status code and value.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("server: failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// WriteGeoJSON writes a response using the application/geo+json media type,
// for ItemCollection search results.
func WriteGeoJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("server: failed to encode GeoJSON response", slog.String("error", err.Error()))
	}
}

// WriteError writes a STAC-compliant error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{Code: code, Description: message}); err != nil {
		slog.Error("server: failed to encode error response", slog.String("error", err.Error()))
	}
}

// WriteBadRequest writes a 400 Bad Request error response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// WriteNotFound writes a 404 Not Found error response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// WriteInvalidParameter writes a 400 Bad Request error for invalid parameters.
func WriteInvalidParameter(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrCodeInvalidParameter, message)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, ErrCodeServerError, message)
}

// WriteInternalErrorWithRequestID writes a 500 response carrying the
// request ID so the recovery middleware can report a correlatable error.
func WriteInternalErrorWithRequestID(w http.ResponseWriter, message, requestID string) {
	w.Header().Set(RequestIDHeader, requestID)
	WriteInternalError(w, message)
}
