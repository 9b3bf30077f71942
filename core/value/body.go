package value

import (
	"io"
	"strings"
)

// Body is the request body stream with its declared length.
// Length is -1 when unknown (chunked transfer encoding).
type Body struct {
	reader io.Reader
	length int64
}

// NewBody wraps a body stream. The reader must already be in blocking mode;
// adapters over non-blocking transports switch before constructing a Body.
func NewBody(r io.Reader, length int64) *Body {
	return &Body{reader: r, length: length}
}

// Reader returns the underlying stream.
func (b *Body) Reader() io.Reader {
	return b.reader
}

// Length returns the declared content length, or -1 when unknown.
func (b *Body) Length() int64 {
	return b.length
}

// Bytes reads the remaining body into memory.
func (b *Body) Bytes() ([]byte, error) {
	return io.ReadAll(b.reader)
}

// Text reads the remaining body as a string.
func (b *Body) Text() (string, error) {
	var sb strings.Builder
	if _, err := io.Copy(&sb, b.reader); err != nil {
		return "", err
	}
	return sb.String(), nil
}
