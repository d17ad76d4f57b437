// internal/errors/mapper.go
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// ErrSwipeStoreUnavailable marks the interaction store as absent or
// unreachable. Feed exclusion treats it as a degradation signal; swipe
// writes surface it to the caller.
var ErrSwipeStoreUnavailable = errors.New("swipe store unavailable")

// Error carries an HTTP status alongside a caller-facing message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Map converts repo/infra errors into HTTP-friendly errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	switch {
	case errors.As(err, &e):
		return e

	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Status: http.StatusNotFound, Message: "record not found"}

	case errors.Is(err, ErrSwipeStoreUnavailable):
		return &Error{Status: http.StatusServiceUnavailable, Message: "store unavailable"}

	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Status: http.StatusGatewayTimeout, Message: "request timed out"}

	case errors.Is(err, context.Canceled):
		return &Error{Status: http.StatusRequestTimeout, Message: "request was canceled"}

	default:
		// fallback → bubble up error message for debugging
		return &Error{Status: http.StatusInternalServerError, Message: err.Error()}
	}
}

// InvalidArgument creates a 400 error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// NotFound creates a 404 error with a specific message.
func NotFound(msg string) error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// IsUnavailable reports whether err is the interaction-store
// degradation signal.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrSwipeStoreUnavailable)
}

// Write renders err as a JSON error response.
func Write(w http.ResponseWriter, err error) {
	e := Map(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": e.Message})
}
