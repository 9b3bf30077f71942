package server

import (
	"github.com/forgeworks/conduit/core/httperr"
	"github.com/forgeworks/conduit/core/media"
	"github.com/forgeworks/conduit/core/route"
)

// dispatch runs the full per-request sequence for a selected route:
// consumes check, produces negotiation, pipeline, render. Negotiation
// failures never reach the handler.
func (s *Server) dispatch(ctx *Context, rt *route.Route) {
	contentType := ctx.Request().Header.Get("Content-Type")
	if contentType == "" {
		contentType = media.TextPlain.Value()
	}
	if _, ok := media.MatchContentType(contentType, rt.Consumes()); !ok {
		ctx.SendError(httperr.ErrUnsupportedMediaType)
		return
	}

	accept := ctx.Request().Header.Get("Accept")
	produced, ok := media.Negotiate(accept, rt.Produces())
	if !ok {
		ctx.SendError(httperr.ErrNotAcceptable)
		return
	}
	if len(rt.Produces()) > 0 {
		ctx.Type(produced.Value(), "")
	}

	result, err := rt.Pipeline()(ctx)
	if err != nil {
		ctx.SendError(err)
		return
	}

	renderer := rt.Renderer()
	if renderer == nil {
		renderer = route.DefaultRenderer
	}
	if err := renderer(ctx, result); err != nil {
		ctx.SendError(err)
		return
	}

	// An async handoff keeps the exchange open until a send operation
	// completes it or the client goes away.
	if ctx.async {
		select {
		case <-ctx.completed:
		case <-ctx.Request().Context().Done():
		}
	}
}
