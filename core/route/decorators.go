package route

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/forgeworks/conduit/core/handler"
)

// RequestIDHeader is the header carrying the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// RequestID ensures every request carries a correlation id: an inbound id
// is echoed back, otherwise a fresh one is generated. Runs as a Before
// hook so the id is set ahead of the handler.
func RequestID() Before {
	return func(ctx handler.Context) error {
		id := ctx.Header(RequestIDHeader).String()
		if id == "" {
			id = uuid.NewString()
		}
		ctx.SetHeader(RequestIDHeader, id)
		return nil
	}
}

// AccessLog logs one line per completed pipeline invocation with method,
// path and duration. Failures are logged at error level and still
// propagate to the root error handler.
func AccessLog(logger *slog.Logger) Decorator {
	return func(next Handler) Handler {
		return func(ctx handler.Context) (any, error) {
			start := time.Now()
			result, err := next(ctx)
			attrs := []any{
				"method", ctx.Method(),
				"path", ctx.Path(),
				"duration", time.Since(start),
			}
			if err != nil {
				logger.Error("request failed", append(attrs, "error", err)...)
				return nil, err
			}
			logger.Info("request completed", attrs...)
			return result, nil
		}
	}
}
