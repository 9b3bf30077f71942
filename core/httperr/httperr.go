package httperr

import "net/http"

// Error is a structured error that carries an HTTP status code.
type Error struct {
	Status  int    `json:"-"`       // HTTP status code (not in JSON)
	Code    string `json:"code"`    // Machine-readable error code
	Message string `json:"message"` // Human-readable message
	Cause   error  `json:"-"`       // Optional underlying cause
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
// Error handlers use this to map errors to responses.
func (e Error) StatusCode() int {
	return e.Status
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e Error) Unwrap() error {
	return e.Cause
}

// Is matches two httperr.Error values by status and code so that
// errors.Is(err, httperr.ErrNotAcceptable) works on derived copies.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Code == t.Code
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// WithError returns a copy of the error with an underlying cause attached.
func (e Error) WithError(err error) Error {
	e.Cause = err
	return e
}

// Predefined errors using http.StatusText for default messages.
var (
	ErrBadRequest = Error{
		Status:  http.StatusBadRequest,
		Code:    "bad_request",
		Message: http.StatusText(http.StatusBadRequest),
	}
	ErrNotFound = Error{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: http.StatusText(http.StatusNotFound),
	}
	ErrMethodNotAllowed = Error{
		Status:  http.StatusMethodNotAllowed,
		Code:    "method_not_allowed",
		Message: http.StatusText(http.StatusMethodNotAllowed),
	}
	ErrNotAcceptable = Error{
		Status:  http.StatusNotAcceptable,
		Code:    "not_acceptable",
		Message: http.StatusText(http.StatusNotAcceptable),
	}
	ErrUnsupportedMediaType = Error{
		Status:  http.StatusUnsupportedMediaType,
		Code:    "unsupported_media_type",
		Message: http.StatusText(http.StatusUnsupportedMediaType),
	}
	ErrInternalServerError = Error{
		Status:  http.StatusInternalServerError,
		Code:    "internal_server_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}
)
