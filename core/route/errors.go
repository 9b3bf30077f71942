package route

import "github.com/forgeworks/conduit/core/httperr"

// Status errors used by the sentinel handlers.
var (
	httpNotFound         = httperr.ErrNotFound
	httpMethodNotAllowed = httperr.ErrMethodNotAllowed
)
