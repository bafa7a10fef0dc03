package server

import (
	"errors"
	"net/http"
)

// Error types.
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrRateLimit        = errors.New("rate limit exceeded")
)

// statusCode maps an error to the HTTP status reported to the client.
func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrRateLimit):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError replies with the status for err. Internal errors are not echoed to the client.
func writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	http.Error(w, msg, code)
}
