// Package apierr maps application errors onto the wire error contract:
// every failure surfaces as {"error": "<message>"} with the matching HTTP
// status. Nothing is retried internally.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arkade-games/adastra-server/internal/model"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpError combines an HTTP status code with a wire message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusBadRequest, "Username already exists"}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Invalid username or password"}
	case errors.Is(err, model.ErrAccountBanned):
		return &httpError{http.StatusForbidden, "Account is banned. Contact administrator."}
	case errors.Is(err, model.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, "Invalid token"}
	case errors.Is(err, model.ErrNotAdmin):
		return &httpError{http.StatusForbidden, "Admin access required"}
	case errors.Is(err, model.ErrAccountNotFound), errors.Is(err, model.ErrProfileNotFound):
		return &httpError{http.StatusNotFound, "Player not found"}
	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewValidationError creates a 400 error for a missing or malformed field
func NewValidationError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewNoTokenError creates the 401 returned when no bearer token is present
func NewNoTokenError() error {
	return &httpError{http.StatusUnauthorized, "No token provided"}
}

// NewForbiddenError creates the 403 returned for a rejected operator token
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, "Admin access required"}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
