package value

import (
	"errors"
	"io"
	"os"
)

// Upload is one materialized multipart file part backed by a temporary file.
// The owning Context registers every Upload it creates and releases them all
// at Destroy time; no other component may hold a reference past teardown.
type Upload struct {
	field       string
	filename    string
	contentType string
	size        int64
	path        string
	destroyed   bool
}

// NewUpload creates an upload descriptor for a materialized file part.
func NewUpload(field, filename, contentType string, size int64, path string) *Upload {
	return &Upload{
		field:       field,
		filename:    filename,
		contentType: contentType,
		size:        size,
		path:        path,
	}
}

// Field returns the multipart field name.
func (u *Upload) Field() string { return u.field }

// Filename returns the client-provided file name, path components stripped.
func (u *Upload) Filename() string { return u.filename }

// ContentType returns the declared content type of the part.
func (u *Upload) ContentType() string { return u.contentType }

// Size returns the materialized file size in bytes.
func (u *Upload) Size() int64 { return u.size }

// Path returns the backing temporary file path.
func (u *Upload) Path() string { return u.path }

// Open opens the backing file for reading.
func (u *Upload) Open() (io.ReadCloser, error) {
	if u.destroyed {
		return nil, ErrUploadDestroyed
	}
	return os.Open(u.path)
}

// Bytes reads the whole backing file into memory.
func (u *Upload) Bytes() ([]byte, error) {
	if u.destroyed {
		return nil, ErrUploadDestroyed
	}
	return os.ReadFile(u.path)
}

// Destroy removes the backing temporary file. Safe to call more than once;
// a missing file is not an error.
func (u *Upload) Destroy() error {
	if u.destroyed {
		return nil
	}
	u.destroyed = true
	if err := os.Remove(u.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ErrUploadDestroyed is returned when reading an upload after teardown.
var ErrUploadDestroyed = errors.New("upload already destroyed")
