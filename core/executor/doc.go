// Package executor provides the execution contexts a request may move
// between: a bounded worker pool for blocking work, a serial loop for
// I/O-affine work, and an inline same-thread executor for detached
// completion. Context.Dispatch and Context.Detach are the only sanctioned
// ways to move response writing across these contexts.
package executor
