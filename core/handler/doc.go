// Package handler defines the contract between backend adapters and the
// route pipeline: the per-request Context interface and the root
// ErrorHandler type.
//
// Backends implement Context over their native request/response handles
// (see core/server for the net/http reference implementation); everything
// above the adapter (routes, decorators, session stores) consumes only
// this interface.
package handler
