package route

import (
	"github.com/forgeworks/conduit/core/handler"
)

// Handler is where application logic lives: it reads from the Context and
// returns the route result (or the Context itself when it already sent the
// response directly).
type Handler func(ctx handler.Context) (any, error)

// Decorator wraps a handler, running logic before and after it. This
// pattern is also known as a filter.
type Decorator func(next Handler) Handler

// Before runs logic ahead of the next handler; a non-nil error aborts the
// chain before the handler executes.
type Before func(ctx handler.Context) error

// After transforms the result produced by a route handler.
type After func(ctx handler.Context, result any) (any, error)

// Then chains this decorator with another decorator. Application order is
// associative: a.Then(b).ThenHandler(h) behaves as a(b(h)).
func (d Decorator) Then(next Decorator) Decorator {
	return func(h Handler) Handler {
		return d(next(h))
	}
}

// ThenHandler chains this decorator with a handler, producing the wrapped
// handler: a.ThenHandler(h)(ctx) behaves as a(h)(ctx).
func (d Decorator) ThenHandler(next Handler) Handler {
	return d(next)
}

// Decorator adapts a Before hook to the Decorator shape.
func (b Before) Decorator() Decorator {
	return func(next Handler) Handler {
		return func(ctx handler.Context) (any, error) {
			if err := b(ctx); err != nil {
				return nil, err
			}
			return next(ctx)
		}
	}
}

// Then chains the handler with an After filter: the handler runs first and
// its result feeds the filter. A handler failure propagates and the filter
// is skipped.
func (h Handler) Then(next After) Handler {
	return func(ctx handler.Context) (any, error) {
		result, err := h(ctx)
		if err != nil {
			return nil, err
		}
		return next(ctx, result)
	}
}

// Then chains two After filters; the first filter's result feeds the second.
func (a After) Then(next After) After {
	return func(ctx handler.Context, result any) (any, error) {
		out, err := a(ctx, result)
		if err != nil {
			return nil, err
		}
		return next(ctx, out)
	}
}

// NotFound sends a not-found error through the root error handler.
var NotFound Handler = func(ctx handler.Context) (any, error) {
	ctx.SendError(httpNotFound)
	return ctx, nil
}

// MethodNotAllowed sends a method-not-allowed error through the root error
// handler.
var MethodNotAllowed Handler = func(ctx handler.Context) (any, error) {
	ctx.SendError(httpMethodNotAllowed)
	return ctx, nil
}
