package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/conduit/core/value"
)

func TestValue(t *testing.T) {
	t.Parallel()

	t.Run("present value", func(t *testing.T) {
		t.Parallel()

		v := value.New("id", "42")
		assert.Equal(t, "id", v.Name())
		assert.False(t, v.IsMissing())
		assert.Equal(t, "42", v.String())
		assert.Equal(t, 42, v.Int(0))
	})

	t.Run("missing sentinel never fails", func(t *testing.T) {
		t.Parallel()

		v := value.Missing("absent")
		assert.True(t, v.IsMissing())
		assert.Equal(t, "", v.String())
		assert.Equal(t, "fallback", v.StringDefault("fallback"))
		assert.Equal(t, 7, v.Int(7))
		assert.True(t, v.Bool(true))
		assert.Nil(t, v.Values())
	})

	t.Run("invalid parse falls back to default", func(t *testing.T) {
		t.Parallel()

		v := value.New("n", "not-a-number")
		assert.Equal(t, -1, v.Int(-1))
		assert.False(t, v.Bool(false))
	})

	t.Run("multi-value", func(t *testing.T) {
		t.Parallel()

		v := value.New("tag", "a", "b")
		assert.Equal(t, "a", v.String())
		assert.Equal(t, []string{"a", "b"}, v.Values())
	})

	t.Run("values returns a copy", func(t *testing.T) {
		t.Parallel()

		v := value.New("tag", "a", "b")
		got := v.Values()
		got[0] = "mutated"
		assert.Equal(t, []string{"a", "b"}, v.Values())
	})
}

func TestObject(t *testing.T) {
	t.Parallel()

	o := value.Object{
		"Content-Type": value.New("Content-Type", "application/json"),
	}

	t.Run("canonical lookup", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "application/json", o.Get("content-type").String())
		assert.Equal(t, "application/json", o.Get("CONTENT-TYPE").String())
	})

	t.Run("absent name yields missing sentinel", func(t *testing.T) {
		t.Parallel()

		v := o.Get("X-Absent")
		assert.True(t, v.IsMissing())
		assert.Equal(t, "X-Absent", v.Name())
	})
}

func TestQueryString(t *testing.T) {
	t.Parallel()

	t.Run("empty query returns shared sentinel", func(t *testing.T) {
		t.Parallel()

		q := value.ParseQuery("")
		assert.Same(t, value.EmptyQuery, q)
		assert.True(t, q.IsEmpty())
		assert.True(t, q.Value("any").IsMissing())
	})

	t.Run("parses parameters", func(t *testing.T) {
		t.Parallel()

		q := value.ParseQuery("page=2&tag=a&tag=b")
		require.False(t, q.IsEmpty())
		assert.Equal(t, 2, q.Value("page").Int(0))
		assert.Equal(t, []string{"a", "b"}, q.Value("tag").Values())
		assert.Equal(t, "page=2&tag=a&tag=b", q.Raw())
	})
}

func TestFormdata(t *testing.T) {
	t.Parallel()

	t.Run("values and files share the namespace", func(t *testing.T) {
		t.Parallel()

		f := value.NewFormdata()
		f.Put("name", "alice")
		f.Put("name", "bob")
		f.PutFile("avatar", value.NewUpload("avatar", "a.png", "image/png", 3, "/tmp/x"))

		assert.Equal(t, []string{"name", "avatar"}, f.Names())
		assert.Equal(t, []string{"alice", "bob"}, f.Value("name").Values())

		up, ok := f.File("avatar")
		require.True(t, ok)
		assert.Equal(t, "a.png", up.Filename())
	})

	t.Run("absent lookups are missing-safe", func(t *testing.T) {
		t.Parallel()

		f := value.NewFormdata()
		assert.True(t, f.Value("none").IsMissing())
		_, ok := f.File("none")
		assert.False(t, ok)
		assert.Empty(t, f.Files("none"))
	})
}

func TestUploadDestroy(t *testing.T) {
	t.Parallel()

	t.Run("idempotent and missing file tolerant", func(t *testing.T) {
		t.Parallel()

		up := value.NewUpload("f", "gone.txt", "text/plain", 0, "/nonexistent/gone.txt")
		require.NoError(t, up.Destroy())
		require.NoError(t, up.Destroy())
	})

	t.Run("reads fail after destroy", func(t *testing.T) {
		t.Parallel()

		up := value.NewUpload("f", "gone.txt", "text/plain", 0, "/nonexistent/gone.txt")
		require.NoError(t, up.Destroy())

		_, err := up.Open()
		assert.ErrorIs(t, err, value.ErrUploadDestroyed)
		_, err = up.Bytes()
		assert.ErrorIs(t, err, value.ErrUploadDestroyed)
	})
}
