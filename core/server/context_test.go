package server_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/conduit/core/handler"
	"github.com/forgeworks/conduit/core/server"
	"github.com/forgeworks/conduit/core/value"
)

func TestContextRequestAccessors(t *testing.T) {
	t.Parallel()

	t.Run("method is upper-cased", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("get", "/users", nil)
		ctx := server.NewContext(httptest.NewRecorder(), r)
		assert.Equal(t, "GET", ctx.Method())
	})

	t.Run("headers snapshot and single lookup", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Token", "abc")
		r.Header.Add("Accept", "text/html")
		r.Header.Add("Accept", "application/json")
		ctx := server.NewContext(httptest.NewRecorder(), r)

		assert.Equal(t, "abc", ctx.Header("x-token").String())
		assert.True(t, ctx.Header("X-Absent").IsMissing())

		headers := ctx.Headers()
		assert.Equal(t, []string{"text/html", "application/json"}, headers.Get("accept").Values())
		// The snapshot is computed once and reused.
		assert.Equal(t, headers, ctx.Headers())
	})

	t.Run("empty query returns the shared sentinel", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/users", nil)
		ctx := server.NewContext(httptest.NewRecorder(), r)
		assert.Same(t, value.EmptyQuery, ctx.Query())
	})

	t.Run("query parses parameters", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/users?page=3", nil)
		ctx := server.NewContext(httptest.NewRecorder(), r)
		assert.Equal(t, 3, ctx.Query().Value("page").Int(0))
	})

	t.Run("path parameters", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/users/42", nil)
		ctx := server.NewContext(httptest.NewRecorder(), r)
		ctx.SetPathMap(map[string]string{"id": "42"})

		assert.Equal(t, "42", ctx.PathValue("id").String())
		assert.True(t, ctx.PathValue("other").IsMissing())
	})

	t.Run("body carries the declared length", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hello"))
		ctx := server.NewContext(httptest.NewRecorder(), r)

		body, err := ctx.Body()
		require.NoError(t, err)
		assert.Equal(t, int64(5), body.Length())

		text, err := body.Text()
		require.NoError(t, err)
		assert.Equal(t, "hello", text)
	})
}

func TestContextForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded parses once and caches", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=alice&tag=a&tag=b"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		ctx := server.NewContext(httptest.NewRecorder(), r)

		form, err := ctx.Form()
		require.NoError(t, err)
		assert.Equal(t, "alice", form.Value("name").String())
		assert.Equal(t, []string{"a", "b"}, form.Value("tag").Values())

		again, err := ctx.Form()
		require.NoError(t, err)
		assert.Same(t, form, again)
	})

	t.Run("multipart materializes uploads and aliases form", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		r := newMultipartRequest(t, map[string]string{"name": "alice"}, map[string]string{"doc": "file content"})
		ctx := server.NewContext(httptest.NewRecorder(), r,
			server.WithContextTempDir(tmpDir),
		)

		mp, err := ctx.Multipart()
		require.NoError(t, err)
		assert.Equal(t, "alice", mp.Value("name").String())

		up, ok := mp.File("doc")
		require.True(t, ok)
		assert.Equal(t, "doc.txt", up.Filename())
		assert.Equal(t, int64(len("file content")), up.Size())
		assert.Equal(t, tmpDir, filepath.Dir(up.Path()))

		data, err := up.Bytes()
		require.NoError(t, err)
		assert.Equal(t, "file content", string(data))

		// The generic form accessor aliases the multipart result.
		form, err := ctx.Form()
		require.NoError(t, err)
		assert.Same(t, &mp.Formdata, form)

		// Re-parsing never happens.
		again, err := ctx.Multipart()
		require.NoError(t, err)
		assert.Same(t, mp, again)
	})
}

func TestContextDestroy(t *testing.T) {
	t.Parallel()

	t.Run("releases uploads and is idempotent", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		r := newMultipartRequest(t, nil, map[string]string{"a": "one", "b": "two"})
		ctx := server.NewContext(httptest.NewRecorder(), r,
			server.WithContextTempDir(tmpDir),
		)

		mp, err := ctx.Multipart()
		require.NoError(t, err)

		var paths []string
		for _, name := range []string{"a", "b"} {
			up, ok := mp.File(name)
			require.True(t, ok)
			paths = append(paths, up.Path())
		}

		ctx.Destroy()
		ctx.Destroy()

		for _, p := range paths {
			_, err := os.Stat(p)
			assert.True(t, errors.Is(err, os.ErrNotExist), "upload file %s should be removed", p)
		}
	})

	t.Run("a failing release does not abort cleanup of siblings", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		r := newMultipartRequest(t, nil, map[string]string{"a": "one", "b": "two", "c": "three"})
		ctx := server.NewContext(httptest.NewRecorder(), r,
			server.WithContextTempDir(tmpDir),
		)

		mp, err := ctx.Multipart()
		require.NoError(t, err)

		// Turn the middle upload's backing path into a non-empty directory
		// so its removal fails.
		middle, ok := mp.File("b")
		require.True(t, ok)
		require.NoError(t, os.Remove(middle.Path()))
		require.NoError(t, os.Mkdir(middle.Path(), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(middle.Path(), "child"), []byte("x"), 0o644))

		ctx.Destroy()

		for _, name := range []string{"a", "c"} {
			up, ok := mp.File(name)
			require.True(t, ok)
			_, err := os.Stat(up.Path())
			assert.True(t, errors.Is(err, os.ErrNotExist), "upload %s should be released", name)
		}
	})
}

func TestContextResponse(t *testing.T) {
	t.Parallel()

	t.Run("type appends charset only when supplied", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := server.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		ctx.Type("application/json", "utf-8")
		assert.Equal(t, "application/json;charset=utf-8", rec.Header().Get("Content-Type"))

		ctx.Type("application/json", "")
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("status code applies on send", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := server.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, ctx.ResponseStarted())
		ctx.StatusCode(http.StatusCreated).SendText("created")
		assert.True(t, ctx.ResponseStarted())
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "created", rec.Body.String())
	})

	t.Run("status-only response", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := server.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		ctx.SendStatusCode(http.StatusNoContent)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("send error delegates to the root handler", func(t *testing.T) {
		t.Parallel()

		var got error
		rec := httptest.NewRecorder()
		ctx := server.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil),
			server.WithContextErrorHandler(func(ctx handler.Context, err error) {
				got = err
				ctx.SendStatusCode(http.StatusTeapot)
			}),
		)

		boom := errors.New("boom")
		ctx.SendError(boom)
		assert.ErrorIs(t, got, boom)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("length header", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := server.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		ctx.Length(12)
		assert.Equal(t, "12", rec.Header().Get("Content-Length"))
	})
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("maps status-carrying errors", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := server.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		server.DefaultErrorHandler(ctx, statusError{status: http.StatusConflict, msg: "conflict"})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "conflict", rec.Body.String())
	})

	t.Run("defaults to 500", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := server.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		server.DefaultErrorHandler(ctx, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("never writes after the response started", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ctx := server.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		ctx.SendText("partial")
		server.DefaultErrorHandler(ctx, errors.New("late failure"))
		assert.Equal(t, "partial", rec.Body.String())
	})
}

type statusError struct {
	status int
	msg    string
}

func (e statusError) Error() string   { return e.msg }
func (e statusError) StatusCode() int { return e.status }

func newMultipartRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, val := range fields {
		require.NoError(t, mw.WriteField(name, val))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".txt")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}
