package handler

import (
	"context"

	"github.com/forgeworks/conduit/core/executor"
	"github.com/forgeworks/conduit/core/value"
)

// Context is the backend-agnostic per-request handle. A backend adapter
// constructs one Context per native request; the route pipeline reads the
// request and writes the response exclusively through it.
//
// A Context is owned by a single request and is never shared across
// requests or mutated by two goroutines at once. Dispatch and Detach are
// the only sanctioned ways to move control to another execution context;
// once dispatched, the original goroutine must stop touching the Context.
//
// All lazy accessors (Headers, Query, Form, Multipart) compute at most once
// and cache for the request lifetime. The single-ownership rule makes
// internal locking unnecessary.
type Context interface {
	// Context methods delegate to the native request's context, giving
	// collaborators (session stores, parsers) cancellation for free.
	context.Context

	// Method returns the upper-cased HTTP method.
	Method() string

	// Path returns the request path.
	Path() string

	// PathMap returns the path parameters extracted for the selected
	// route, keyed by the route's path keys. Nil before route selection.
	PathMap() map[string]string

	// SetPathMap installs the path parameters for the selected route.
	SetPathMap(params map[string]string) Context

	// PathValue returns one path parameter, or the missing sentinel.
	PathValue(name string) value.Value

	// Header returns a single request header. It never fails; absent
	// headers yield the missing sentinel.
	Header(name string) value.Value

	// Headers returns the header-map snapshot. The native header
	// collection is read exactly once per Context.
	Headers() value.Object

	// Query returns the parsed query string. An empty raw query
	// short-circuits to the shared empty sentinel without allocating.
	Query() *value.QueryString

	// Body returns the request body stream. The underlying transport must
	// be in blocking mode; adapters over non-blocking transports switch
	// it synchronously before returning (transparent-switch policy).
	Body() (*value.Body, error)

	// Form lazily parses an application/x-www-form-urlencoded body
	// exactly once and caches the result. After a multipart parse it
	// aliases the multipart result instead of re-reading the body.
	Form() (*value.Formdata, error)

	// Multipart lazily parses a multipart/form-data body exactly once,
	// materializing file parts into the adapter's temp directory as
	// Uploads registered with this Context. Requires blocking mode.
	Multipart() (*value.Multipart, error)

	// Worker returns the executor for CPU-bound and blocking work.
	Worker() executor.Executor

	// IO returns the I/O-affine serial executor.
	IO() executor.Executor

	// Dispatch transfers control of the request to the given executor.
	// The native transport must not complete or time out the request
	// while control is transferred.
	Dispatch(ex executor.Executor, action func()) Context

	// Detach runs the action inline on a same-thread executor while
	// signalling the transport that completion is now manual.
	Detach(action func()) Context

	// StatusCode sets the response status code.
	StatusCode(code int) Context

	// SetHeader sets a response header.
	SetHeader(name, val string) Context

	// Type sets the response content type, appending ";charset=<cs>"
	// only when a charset is supplied.
	Type(contentType, charset string) Context

	// Length sets the response content length.
	Length(n int64) Context

	// SendText writes a text response body.
	SendText(s string) Context

	// SendBytes writes a binary response body.
	SendBytes(b []byte) Context

	// SendStatusCode sends a status-only response.
	SendStatusCode(code int) Context

	// SendError delegates to the root error handler. The Context never
	// encodes error-formatting policy itself.
	SendError(err error) Context

	// ResponseStarted reports whether response headers have been flushed
	// to the native transport. Callers use it to decide whether an error
	// can still be reformatted.
	ResponseStarted() bool

	// Destroy releases every Upload registered with this Context. It is
	// idempotent; per-upload release failures are isolated and logged,
	// never returned.
	Destroy()
}
