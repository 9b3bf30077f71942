package server

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/forgeworks/conduit/core/executor"
	"github.com/forgeworks/conduit/core/handler"
	"github.com/forgeworks/conduit/core/value"
)

// Context is the net/http reference implementation of handler.Context.
// One Context serves exactly one request and is never reused.
type Context struct {
	w      *responseWriter
	r      *http.Request
	logger *slog.Logger

	errorHandler handler.ErrorHandler
	tmpDir       string
	maxMemory    int64
	worker       executor.Executor
	io           executor.Executor

	// lazy, at-most-once request state
	pathMap   map[string]string
	headers   value.Object
	query     *value.QueryString
	form      *value.Formdata
	multipart *value.Multipart
	uploads   []*value.Upload

	// response/lifecycle state
	pendingStatus int
	async         bool
	destroyed     bool
	completed     chan struct{}
	completeOnce  sync.Once
}

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithContextErrorHandler sets the root error handler collaborator.
func WithContextErrorHandler(eh handler.ErrorHandler) ContextOption {
	return func(c *Context) {
		if eh != nil {
			c.errorHandler = eh
		}
	}
}

// WithContextTempDir sets the directory multipart file parts materialize
// into.
func WithContextTempDir(dir string) ContextOption {
	return func(c *Context) {
		if dir != "" {
			c.tmpDir = dir
		}
	}
}

// WithContextMaxMultipartMemory bounds in-memory multipart parsing.
func WithContextMaxMultipartMemory(n int64) ContextOption {
	return func(c *Context) {
		if n > 0 {
			c.maxMemory = n
		}
	}
}

// WithContextExecutors sets the worker and I/O executors handed out by
// Worker() and IO().
func WithContextExecutors(worker, io executor.Executor) ContextOption {
	return func(c *Context) {
		if worker != nil {
			c.worker = worker
		}
		if io != nil {
			c.io = io
		}
	}
}

// WithContextLogger sets the logger for upload cleanup failures.
func WithContextLogger(logger *slog.Logger) ContextOption {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewContext creates a Context over a native request/response pair.
// Defaults: DefaultErrorHandler, the OS temp dir, 10MB multipart memory,
// same-thread executors and a discard logger.
func NewContext(w http.ResponseWriter, r *http.Request, opts ...ContextOption) *Context {
	ww, ok := w.(*responseWriter)
	if !ok {
		ww = newResponseWriter(w)
	}
	c := &Context{
		w:            ww,
		r:            r,
		logger:       slog.New(slog.DiscardHandler),
		errorHandler: DefaultErrorHandler,
		tmpDir:       os.TempDir(),
		maxMemory:    DefaultMaxMultipartMemory,
		worker:       executor.SameThread,
		io:           executor.SameThread,
		completed:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request returns the native request for backend-internal use.
func (c *Context) Request() *http.Request { return c.r }

// Deadline delegates to the request context.
func (c *Context) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }

// Done delegates to the request context.
func (c *Context) Done() <-chan struct{} { return c.r.Context().Done() }

// Err delegates to the request context.
func (c *Context) Err() error { return c.r.Context().Err() }

// Value delegates to the request context.
func (c *Context) Value(key any) any { return c.r.Context().Value(key) }

// Method returns the upper-cased HTTP method.
func (c *Context) Method() string {
	return strings.ToUpper(c.r.Method)
}

// Path returns the request path.
func (c *Context) Path() string {
	return c.r.URL.Path
}

// PathMap returns the path parameters for the selected route.
func (c *Context) PathMap() map[string]string {
	return c.pathMap
}

// SetPathMap installs the path parameters for the selected route.
func (c *Context) SetPathMap(params map[string]string) handler.Context {
	c.pathMap = params
	return c
}

// PathValue returns one path parameter, or the missing sentinel.
func (c *Context) PathValue(name string) value.Value {
	if v, ok := c.pathMap[name]; ok {
		return value.New(name, v)
	}
	return value.Missing(name)
}

// Header returns a single request header, missing-safe.
func (c *Context) Header(name string) value.Value {
	vs := c.r.Header.Values(name)
	if len(vs) == 0 {
		return value.Missing(name)
	}
	return value.New(name, vs...)
}

// Headers returns the header-map snapshot, computed once per Context.
func (c *Context) Headers() value.Object {
	if c.headers == nil {
		c.headers = make(value.Object, len(c.r.Header))
		for name, vs := range c.r.Header {
			c.headers[name] = value.New(name, vs...)
		}
	}
	return c.headers
}

// Query returns the parsed query string. An empty raw query short-circuits
// to the shared empty sentinel without allocating a parser.
func (c *Context) Query() *value.QueryString {
	if c.query == nil {
		raw := c.r.URL.RawQuery
		if raw == "" {
			return value.EmptyQuery
		}
		c.query = value.ParseQuery(raw)
	}
	return c.query
}

// Body returns the request body stream. net/http serves bodies in blocking
// mode already, so the blocking precondition holds by construction.
func (c *Context) Body() (*value.Body, error) {
	return value.NewBody(c.r.Body, c.r.ContentLength), nil
}

// Form lazily parses an urlencoded body exactly once. For multipart
// requests it delegates to Multipart and aliases its result: both
// accessors share one cache.
func (c *Context) Form() (*value.Formdata, error) {
	if c.form != nil {
		return c.form, nil
	}

	contentType := c.r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		mp, err := c.Multipart()
		if err != nil {
			return nil, err
		}
		return &mp.Formdata, nil
	}

	if err := c.r.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	form := value.NewFormdata()
	for name, vs := range c.r.PostForm {
		for _, v := range vs {
			form.Put(name, v)
		}
	}
	c.form = form
	return form, nil
}

// Multipart lazily parses a multipart body exactly once, materializing
// file parts into the temp directory as Uploads owned by this Context.
func (c *Context) Multipart() (*value.Multipart, error) {
	if c.multipart != nil {
		return c.multipart, nil
	}

	if err := c.r.ParseMultipartForm(c.maxMemory); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	mp := value.NewMultipart()
	mf := c.r.MultipartForm
	for name, vs := range mf.Value {
		for _, v := range vs {
			mp.Put(name, v)
		}
	}
	for name, fhs := range mf.File {
		for _, fh := range fhs {
			upload, err := c.materialize(name, fh)
			if err != nil {
				return nil, err
			}
			mp.PutFile(name, c.register(upload))
		}
	}

	c.multipart = mp
	c.form = &mp.Formdata
	return mp, nil
}

// Worker returns the executor for CPU-bound and blocking work.
func (c *Context) Worker() executor.Executor { return c.worker }

// IO returns the I/O-affine serial executor.
func (c *Context) IO() executor.Executor { return c.io }

// Dispatch transfers control of the request to the given executor. The
// serving goroutine parks until a send operation completes the exchange,
// so the native transport cannot finish the request early.
func (c *Context) Dispatch(ex executor.Executor, action func()) handler.Context {
	c.async = true
	ex.Schedule(action, 0)
	return c
}

// Detach runs the action inline while marking completion as manual.
func (c *Context) Detach(action func()) handler.Context {
	c.async = true
	executor.SameThread.Schedule(action, 0)
	return c
}

// StatusCode sets the response status code, applied on the first body
// write (the native net/http mutation model).
func (c *Context) StatusCode(code int) handler.Context {
	c.pendingStatus = code
	return c
}

// SetHeader sets a response header.
func (c *Context) SetHeader(name, val string) handler.Context {
	c.w.Header().Set(name, val)
	return c
}

// Type sets the response content type, appending the charset only when
// one is supplied.
func (c *Context) Type(contentType, charset string) handler.Context {
	if charset != "" {
		contentType = contentType + ";charset=" + charset
	}
	c.w.Header().Set("Content-Type", contentType)
	return c
}

// Length sets the response content length.
func (c *Context) Length(n int64) handler.Context {
	c.w.Header().Set("Content-Length", strconv.FormatInt(n, 10))
	return c
}

// SendText writes a text response body and completes the exchange.
func (c *Context) SendText(s string) handler.Context {
	c.writeHeader()
	if _, err := io.WriteString(c.w, s); err != nil {
		c.logger.Error("failed to write response", "error", err)
	}
	c.complete()
	return c
}

// SendBytes writes a binary response body and completes the exchange.
func (c *Context) SendBytes(b []byte) handler.Context {
	c.writeHeader()
	if _, err := c.w.Write(b); err != nil {
		c.logger.Error("failed to write response", "error", err)
	}
	c.complete()
	return c
}

// SendStatusCode sends a status-only response and completes the exchange.
func (c *Context) SendStatusCode(code int) handler.Context {
	c.w.WriteHeader(code)
	c.complete()
	return c
}

// SendError delegates to the root error handler and completes the
// exchange. The Context never formats errors itself.
func (c *Context) SendError(err error) handler.Context {
	c.errorHandler(c, err)
	c.complete()
	return c
}

// ResponseStarted reports whether response headers have been flushed.
func (c *Context) ResponseStarted() bool {
	return c.w.Written()
}

// Destroy releases every registered Upload exactly once. Per-upload
// failures are logged and never abort cleanup of the remaining uploads.
func (c *Context) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true

	for _, upload := range c.uploads {
		if err := upload.Destroy(); err != nil {
			c.logger.Error("failed to release upload",
				"field", upload.Field(),
				"file", upload.Path(),
				"error", err,
			)
		}
	}
	c.uploads = nil

	if c.r.MultipartForm != nil {
		if err := c.r.MultipartForm.RemoveAll(); err != nil {
			c.logger.Error("failed to remove multipart spill files", "error", err)
		}
	}
}

// register takes ownership of an upload for teardown.
func (c *Context) register(upload *value.Upload) *value.Upload {
	c.uploads = append(c.uploads, upload)
	return upload
}

// materialize copies one multipart file part into the temp directory.
func (c *Context) materialize(field string, fh *multipart.FileHeader) (*value.Upload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open multipart part %q: %w", field, err)
	}
	defer src.Close()

	path := filepath.Join(c.tmpDir, "upload-"+uuid.NewString())
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to materialize upload %q: %w", field, err)
	}

	return value.NewUpload(field, sanitizeFilename(fh.Filename), fh.Header.Get("Content-Type"), size, path), nil
}

func (c *Context) writeHeader() {
	if c.pendingStatus > 0 {
		c.w.WriteHeader(c.pendingStatus)
	}
}

// complete signals the serving goroutine that the exchange is finished.
// Safe to call more than once; only the first send counts.
func (c *Context) complete() {
	c.completeOnce.Do(func() { close(c.completed) })
}

// sanitizeFilename strips path components and dangerous characters from
// client-provided file names.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")
	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}
