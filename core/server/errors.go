package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/forgeworks/conduit/core/handler"
)

// ErrServerAlreadyRunning is returned when Start is called twice.
var ErrServerAlreadyRunning = errors.New("server is already running")

// statusCode is an unexported interface that errors can implement to
// provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// DefaultErrorHandler is the root error handler used unless the server is
// configured with another one. It honors StatusCode() int on the error,
// defaults to 500, renders plain text, and never writes after the response
// has started.
func DefaultErrorHandler(ctx handler.Context, err error) {
	if ctx.ResponseStarted() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	ctx.Type("text/plain", "utf-8").
		StatusCode(status).
		SendText(err.Error())
}

// PanicError allows external error handlers to detect recovered panics and
// access the original panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

// panicError is the private implementation of PanicError.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
