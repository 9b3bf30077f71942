package handler

// ErrorHandler is the root error handler: the single place user-visible
// failure formatting happens. Backend adapters pass every handler failure
// and every SendError call through it.
type ErrorHandler func(ctx Context, err error)
