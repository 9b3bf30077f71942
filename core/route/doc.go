// Package route models a compiled route: its metadata (method, pattern,
// path keys, produced/consumed media types, parser table) and its
// executable pipeline.
//
// The pipeline is the composition before → handler → after, built exactly
// once at construction time. Decorators compose associatively and After
// filters chain left to right, so wrapping order is always explicit at the
// call site. Handlers return their result; rendering it onto the Context is
// the Renderer's job, which keeps handlers testable without a transport.
package route
