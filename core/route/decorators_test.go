package route_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/conduit/core/handler"
	"github.com/forgeworks/conduit/core/route"
	"github.com/forgeworks/conduit/core/server"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates an id when absent", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := server.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NoError(t, route.RequestID()(ctx))
		assert.NotEmpty(t, rec.Header().Get(route.RequestIDHeader))
	})

	t.Run("echoes an inbound id", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(route.RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		ctx := server.NewContext(rec, r)

		require.NoError(t, route.RequestID()(ctx))
		assert.Equal(t, "req-123", rec.Header().Get(route.RequestIDHeader))
	})
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	newLogger := func() (*slog.Logger, *strings.Builder) {
		var sb strings.Builder
		return slog.New(slog.NewTextHandler(&sb, nil)), &sb
	}

	t.Run("logs completed requests", func(t *testing.T) {
		t.Parallel()

		logger, sb := newLogger()
		ctx := server.NewContext(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/users/42", nil))

		h := route.AccessLog(logger).ThenHandler(func(ctx handler.Context) (any, error) {
			return "ok", nil
		})
		result, err := h(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Contains(t, sb.String(), "request completed")
		assert.Contains(t, sb.String(), "/users/42")
	})

	t.Run("logs and propagates failures", func(t *testing.T) {
		t.Parallel()

		logger, sb := newLogger()
		ctx := server.NewContext(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/", nil))

		boom := errors.New("boom")
		h := route.AccessLog(logger).ThenHandler(func(ctx handler.Context) (any, error) {
			return nil, boom
		})
		_, err := h(ctx)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, sb.String(), "request failed")
	})
}
