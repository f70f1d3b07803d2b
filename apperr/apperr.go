// Package apperr defines the application error taxonomy. Business code
// returns these errors; the server's HTTP error handler is the single place
// that maps them to status codes and the response envelope.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrTooManyRequests  = errors.New("too many requests")
	ErrBadGateway       = errors.New("upstream service failure")
)

// Error carries an HTTP status and a client-safe message. The wrapped cause,
// if any, is logged server side and never serialized.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Err: ErrBadRequest}
}

// Validation is a 400 carrying per-field messages from schema validation.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Fields: fields, Err: ErrBadRequest}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message, Err: ErrUnauthorized}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message, Err: ErrConflict}
}

func UnsupportedMedia(message string) *Error {
	return &Error{Status: http.StatusUnsupportedMediaType, Message: message, Err: ErrUnsupportedMedia}
}

func TooManyRequests(message string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Message: message, Err: ErrTooManyRequests}
}

// BadGateway marks an external collaborator failure (CDN, mail, OAuth).
func BadGateway(message string, cause error) *Error {
	return &Error{Status: http.StatusBadGateway, Message: message, Err: errors.Join(ErrBadGateway, cause)}
}

func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error", Err: cause}
}

// HTTPStatus resolves the status for any error; unclassified errors are 500.
func HTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrBadGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
