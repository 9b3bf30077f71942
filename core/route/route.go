package route

import (
	"reflect"
	"strings"

	"github.com/forgeworks/conduit/core/media"
)

// Route holds the compiled metadata and executable pipeline for one
// method+pattern combination. The core fields are immutable after
// construction; metadata setters return the route for chaining.
type Route struct {
	method     string
	pattern    string
	pathKeys   []string
	handler    Handler
	before     Decorator
	after      After
	pipeline   Handler
	renderer   Renderer
	returnType reflect.Type
	handle     any
	parsers    map[string]Parser

	produces      []media.Type
	consumes      []media.Type
	producesOwned bool
	consumesOwned bool
}

// sharedEmpty is the immutable empty sentinel shared by every route until
// its first produces/consumes append upgrades the field to a private slice.
var sharedEmpty = make([]media.Type, 0)

// New compiles a route. The pipeline is composed once here (before, then
// handler, then after, each exactly once per invocation) and cached;
// changing before/after later does not rebuild it unless SetPipeline is
// called explicitly.
func New(method, pattern string, returnType reflect.Type, h Handler, before Decorator, after After, renderer Renderer, parsers map[string]Parser) *Route {
	r := &Route{
		method:     strings.ToUpper(method),
		pattern:    pattern,
		pathKeys:   PathKeys(pattern),
		handler:    h,
		before:     before,
		after:      after,
		renderer:   renderer,
		returnType: returnType,
		handle:     h,
		parsers:    parsers,
		produces:   sharedEmpty,
		consumes:   sharedEmpty,
	}

	pipeline := h
	if before != nil {
		pipeline = before.ThenHandler(pipeline)
	}
	if after != nil {
		pipeline = pipeline.Then(after)
	}
	r.pipeline = pipeline

	return r
}

// Method returns the upper-cased HTTP method.
func (r *Route) Method() string { return r.method }

// Pattern returns the path pattern.
func (r *Route) Pattern() string { return r.pattern }

// PathKeys returns the parameter names extracted from the pattern, in
// declaration order.
func (r *Route) PathKeys() []string { return r.pathKeys }

// Handler returns the user handler.
func (r *Route) Handler() Handler { return r.handler }

// Before returns the before decorator, or nil.
func (r *Route) Before() Decorator { return r.before }

// After returns the after filter, or nil.
func (r *Route) After() After { return r.after }

// Pipeline returns the compiled pipeline.
func (r *Route) Pipeline() Handler { return r.pipeline }

// SetPipeline replaces the compiled pipeline. Part of the public API but
// intended for framework wiring, not application code.
func (r *Route) SetPipeline(pipeline Handler) *Route {
	r.pipeline = pipeline
	return r
}

// Renderer returns the route renderer.
func (r *Route) Renderer() Renderer { return r.renderer }

// ReturnType returns the declared handler return type.
func (r *Route) ReturnType() reflect.Type { return r.returnType }

// SetReturnType sets the declared handler return type.
func (r *Route) SetReturnType(t reflect.Type) *Route {
	r.returnType = t
	return r
}

// Handle returns the object supplying route metadata. It defaults to the
// handler and differs only when the handler is a generated adapter.
func (r *Route) Handle() any { return r.handle }

// SetHandle overrides the metadata handle.
func (r *Route) SetHandle(handle any) *Route {
	r.handle = handle
	return r
}

// Produces returns the declared response types. Empty means unconstrained.
func (r *Route) Produces() []media.Type { return r.produces }

// AddProduces appends response types produced by this route. If set, the
// Accept header must match one of them or the route fails negotiation with
// a not-acceptable condition.
func (r *Route) AddProduces(types ...media.Type) *Route {
	if !r.producesOwned {
		r.produces = make([]media.Type, 0, len(types))
		r.producesOwned = true
	}
	r.produces = append(r.produces, types...)
	return r
}

// Consumes returns the declared request types. Empty means unconstrained.
func (r *Route) Consumes() []media.Type { return r.consumes }

// AddConsumes appends request types consumed by this route. If set, the
// Content-Type header is checked against them before the handler runs and
// an unmatched type fails with an unsupported-media-type condition.
func (r *Route) AddConsumes(types ...media.Type) *Route {
	if !r.consumesOwned {
		r.consumes = make([]media.Type, 0, len(types))
		r.consumesOwned = true
	}
	r.consumes = append(r.consumes, types...)
	return r
}

// String returns "METHOD pattern".
func (r *Route) String() string {
	return r.method + " " + r.pattern
}
