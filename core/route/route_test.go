package route_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/conduit/core/handler"
	"github.com/forgeworks/conduit/core/httperr"
	"github.com/forgeworks/conduit/core/media"
	"github.com/forgeworks/conduit/core/route"
)

func TestNewRoute(t *testing.T) {
	t.Parallel()

	t.Run("normalizes method and derives path keys", func(t *testing.T) {
		t.Parallel()

		rt := route.New("get", "/users/{id}/posts/{post}", nil, okHandler("x"), nil, nil, nil, nil)
		assert.Equal(t, "GET", rt.Method())
		assert.Equal(t, []string{"id", "post"}, rt.PathKeys())
		assert.Equal(t, "GET /users/{id}/posts/{post}", rt.String())
	})

	t.Run("pipeline is before then handler then after", func(t *testing.T) {
		t.Parallel()

		var order []string
		before := route.Before(func(ctx handler.Context) error {
			order = append(order, "before")
			return nil
		}).Decorator()
		h := route.Handler(func(ctx handler.Context) (any, error) {
			order = append(order, "handler")
			return "result", nil
		})
		after := route.After(func(ctx handler.Context, result any) (any, error) {
			order = append(order, "after")
			return result, nil
		})

		rt := route.New("GET", "/", nil, h, before, after, nil, nil)
		result, err := rt.Pipeline()(nil)
		require.NoError(t, err)
		assert.Equal(t, "result", result)
		assert.Equal(t, []string{"before", "handler", "after"}, order)
	})

	t.Run("before failure skips handler and after", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("rejected")
		ran := false
		before := route.Before(func(ctx handler.Context) error { return boom }).Decorator()
		h := route.Handler(func(ctx handler.Context) (any, error) {
			ran = true
			return nil, nil
		})
		after := route.After(func(ctx handler.Context, result any) (any, error) {
			ran = true
			return result, nil
		})

		rt := route.New("GET", "/", nil, h, before, after, nil, nil)
		_, err := rt.Pipeline()(nil)
		assert.ErrorIs(t, err, boom)
		assert.False(t, ran)
	})

	t.Run("handler failure skips after", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("handler failed")
		afterRan := false
		h := route.Handler(func(ctx handler.Context) (any, error) { return nil, boom })
		after := route.After(func(ctx handler.Context, result any) (any, error) {
			afterRan = true
			return result, nil
		})

		rt := route.New("GET", "/", nil, h, nil, after, nil, nil)
		_, err := rt.Pipeline()(nil)
		assert.ErrorIs(t, err, boom)
		assert.False(t, afterRan)
	})

	t.Run("pipeline is compiled once", func(t *testing.T) {
		t.Parallel()

		rt := route.New("GET", "/", nil, okHandler("a"), nil, nil, nil, nil)
		p1 := rt.Pipeline()

		// Calling metadata setters must not recompile the pipeline.
		rt.AddProduces(media.ApplicationJSON)
		result, err := rt.Pipeline()(nil)
		require.NoError(t, err)
		assert.Equal(t, "a", result)

		r2, err := p1(nil)
		require.NoError(t, err)
		assert.Equal(t, "a", r2)
	})
}

func TestDecoratorComposition(t *testing.T) {
	t.Parallel()

	tag := func(name string, order *[]string) route.Decorator {
		return func(next route.Handler) route.Handler {
			return func(ctx handler.Context) (any, error) {
				*order = append(*order, name)
				return next(ctx)
			}
		}
	}

	t.Run("then is associative", func(t *testing.T) {
		t.Parallel()

		var left, right []string
		h := okHandler("h")

		a, b, c := tag("a", &left), tag("b", &left), tag("c", &left)
		_, err := a.Then(b).Then(c).ThenHandler(h)(nil)
		require.NoError(t, err)

		a2, b2, c2 := tag("a", &right), tag("b", &right), tag("c", &right)
		_, err = a2.Then(b2.Then(c2)).ThenHandler(h)(nil)
		require.NoError(t, err)

		assert.Equal(t, left, right)
		assert.Equal(t, []string{"a", "b", "c"}, left)
	})

	t.Run("after chain feeds results forward", func(t *testing.T) {
		t.Parallel()

		inc := route.After(func(ctx handler.Context, result any) (any, error) {
			return result.(int) + 1, nil
		})
		double := route.After(func(ctx handler.Context, result any) (any, error) {
			return result.(int) * 2, nil
		})

		h := route.Handler(func(ctx handler.Context) (any, error) { return 3, nil })
		result, err := h.Then(inc.Then(double))(nil)
		require.NoError(t, err)
		assert.Equal(t, 8, result)
	})
}

func TestProducesConsumes(t *testing.T) {
	t.Parallel()

	t.Run("default is the shared empty list", func(t *testing.T) {
		t.Parallel()

		a := route.New("GET", "/a", nil, okHandler("a"), nil, nil, nil, nil)
		b := route.New("GET", "/b", nil, okHandler("b"), nil, nil, nil, nil)
		assert.Empty(t, a.Produces())
		assert.Empty(t, b.Consumes())
	})

	t.Run("append never leaks into other routes", func(t *testing.T) {
		t.Parallel()

		a := route.New("GET", "/a", nil, okHandler("a"), nil, nil, nil, nil)
		b := route.New("GET", "/b", nil, okHandler("b"), nil, nil, nil, nil)

		a.AddProduces(media.ApplicationJSON)
		a.AddConsumes(media.FormURLEncoded)

		assert.Len(t, a.Produces(), 1)
		assert.Len(t, a.Consumes(), 1)
		assert.Empty(t, b.Produces())
		assert.Empty(t, b.Consumes())
	})

	t.Run("appends accumulate", func(t *testing.T) {
		t.Parallel()

		a := route.New("GET", "/a", nil, okHandler("a"), nil, nil, nil, nil)
		a.AddProduces(media.ApplicationJSON).AddProduces(media.TextHTML)
		assert.Equal(t, []media.Type{media.ApplicationJSON, media.TextHTML}, a.Produces())
	})
}

func TestParserLookup(t *testing.T) {
	t.Parallel()

	t.Run("absent entry yields the failing sentinel", func(t *testing.T) {
		t.Parallel()

		rt := route.New("POST", "/", nil, okHandler("x"), nil, nil, nil, nil)
		p := rt.Parser(media.ApplicationJSON)
		require.NotNil(t, p)

		err := p(nil, nil)
		assert.ErrorIs(t, err, httperr.ErrUnsupportedMediaType)
	})

	t.Run("registered parser is returned", func(t *testing.T) {
		t.Parallel()

		called := false
		parsers := map[string]route.Parser{
			media.ApplicationJSON.Value(): func(ctx handler.Context, dst any) error {
				called = true
				return nil
			},
		}
		rt := route.New("POST", "/", nil, okHandler("x"), nil, nil, nil, parsers)

		require.NoError(t, rt.Parser(media.ApplicationJSON)(nil, nil))
		assert.True(t, called)
	})
}

func TestMatchPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		pattern string
		path    string
		params  map[string]string
		ok      bool
	}{
		{"static", "/health", "/health", nil, true},
		{"single param", "/users/{id}", "/users/42", map[string]string{"id": "42"}, true},
		{"two params", "/users/{id}/posts/{post}", "/users/1/posts/2", map[string]string{"id": "1", "post": "2"}, true},
		{"length mismatch", "/users/{id}", "/users/42/extra", nil, false},
		{"static mismatch", "/users/{id}", "/accounts/42", nil, false},
		{"root", "/", "/", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			params, ok := route.MatchPath(tc.pattern, tc.path)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.params, params)
		})
	}
}

func okHandler(result any) route.Handler {
	return func(ctx handler.Context) (any, error) {
		return result, nil
	}
}
