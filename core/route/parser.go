package route

import (
	"github.com/forgeworks/conduit/core/handler"
	"github.com/forgeworks/conduit/core/httperr"
	"github.com/forgeworks/conduit/core/media"
)

// Parser decodes a request body into dst for one media type.
type Parser func(ctx handler.Context, dst any) error

// UnsupportedMediaTypeParser is the sentinel returned when a route has no
// parser for the request content type. Invoking it fails the request with
// an unsupported-media-type condition; callers must treat it as that
// signal, never as nil.
var UnsupportedMediaTypeParser Parser = func(ctx handler.Context, dst any) error {
	return httperr.ErrUnsupportedMediaType
}

// Parser looks up the parser for a media type by its canonical value.
// Absent entries yield UnsupportedMediaTypeParser.
func (r *Route) Parser(contentType media.Type) Parser {
	if p, ok := r.parsers[contentType.Value()]; ok && p != nil {
		return p
	}
	return UnsupportedMediaTypeParser
}
