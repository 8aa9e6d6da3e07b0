package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aeschyllus/expensetracker-be/internal/store"
)

// Sentinel errors services raise for failures that are not store failures.
var (
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrBadRequest      = errors.New("invalid input")
)

// Error is the API-visible classification of a failure: a status code plus a
// short, user-safe message. It is what every handler ends up writing.
type Error struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// BadRequest builds a 400 error for input rejected before any store access.
func BadRequest(message string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Message: message, err: ErrBadRequest}
}

// Unauthorized builds a 401 error for credential or token failures.
func Unauthorized(message string) *Error {
	return &Error{StatusCode: http.StatusUnauthorized, Message: message, err: ErrUnauthenticated}
}

// TranslateError converts any error raised below the HTTP boundary into an
// *Error. Classified store errors map through a fixed table; everything
// unmapped degrades to a generic 500 so store internals never leak.
func TranslateError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		message := fmt.Sprintf("[%s]: %s", storeErr.Code, storeErr.Detail)
		switch storeErr.Code {
		case store.UniqueViolation:
			return &Error{StatusCode: http.StatusConflict, Message: message, err: err}
		case store.ForeignKeyViolation:
			return &Error{StatusCode: http.StatusBadRequest, Message: message, err: err}
		case store.NotFound:
			return &Error{StatusCode: http.StatusNotFound, Message: message, err: err}
		}
	}

	if errors.Is(err, ErrUnauthenticated) {
		return &Error{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials", err: err}
	}

	return &Error{StatusCode: http.StatusInternalServerError, Message: "Internal server error", err: err}
}
