// Package httperr defines status-carrying error values shared by the route
// pipeline and backend adapters.
//
// Negotiation failures (not acceptable, unsupported media type) are raised
// before handler execution and map to fixed statuses. Handler failures are
// forwarded to the root error handler, which is the only place user-visible
// error formatting happens. Any error implementing StatusCode() int is
// honored by the default error handler; everything else renders as 500.
package httperr
