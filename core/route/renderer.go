package route

import (
	"encoding/json"

	"github.com/forgeworks/conduit/core/handler"
	"github.com/forgeworks/conduit/core/media"
)

// Renderer turns a pipeline result into response writes on the Context.
type Renderer func(ctx handler.Context, result any) error

// DefaultRenderer renders strings as text, byte slices as raw bytes and
// anything else as JSON. A nil result or a result that is the Context
// itself (handler sent the response directly) renders nothing.
func DefaultRenderer(ctx handler.Context, result any) error {
	switch v := result.(type) {
	case nil:
		return nil
	case string:
		ctx.SendText(v)
	case []byte:
		ctx.SendBytes(v)
	default:
		if c, ok := result.(handler.Context); ok && c == ctx {
			return nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		ctx.Type(media.ApplicationJSON.Value(), "utf-8").SendBytes(b)
	}
	return nil
}
