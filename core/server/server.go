package server

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/forgeworks/conduit/core/executor"
	"github.com/forgeworks/conduit/core/handler"
	"github.com/forgeworks/conduit/core/route"
)

// Server is the net/http reference backend. It owns the route table, the
// worker and I/O executors, and the per-request Context lifecycle.
type Server struct {
	addr           string
	logger         *slog.Logger
	errorHandler   handler.ErrorHandler
	tlsConfig      *tls.Config
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int

	tmpDir             string
	maxMultipartMemory int64

	workerPoolSize  int
	workerQueueSize int
	ioQueueSize     int
	worker          *executor.Pool
	ioLoop          *executor.Loop

	routes []*route.Route

	mu         sync.Mutex
	httpServer *http.Server
	running    bool
}

// New creates a server bound to addr. The executors start immediately, so
// a server used only as an http.Handler (tests, embedding in another mux)
// serves requests without Start.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:               addr,
		logger:             slog.New(slog.DiscardHandler),
		errorHandler:       DefaultErrorHandler,
		shutdown:           DefaultShutdownTimeout,
		readTimeout:        DefaultReadTimeout,
		writeTimeout:       DefaultWriteTimeout,
		idleTimeout:        DefaultIdleTimeout,
		maxHeaderBytes:     DefaultMaxHeaderBytes,
		tmpDir:             os.TempDir(),
		maxMultipartMemory: DefaultMaxMultipartMemory,
		workerQueueSize:    DefaultWorkerQueueSize,
		ioQueueSize:        DefaultIOQueueSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.worker = executor.NewPool(s.workerPoolSize, s.workerQueueSize)
	s.ioLoop = executor.NewLoop(s.ioQueueSize)
	return s
}

// Handle registers a compiled route.
func (s *Server) Handle(rt *route.Route) *Server {
	s.routes = append(s.routes, rt)
	return s
}

// Routes returns the registered routes in registration order.
func (s *Server) Routes() []*route.Route {
	return s.routes
}

// Start runs the server until ctx is canceled, then shuts down gracefully
// within the configured shutdown timeout. It blocks.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	s.running = true
	s.httpServer = &http.Server{
		Addr:           s.addr,
		Handler:        s,
		TLSConfig:      s.tlsConfig,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
	}
	srv := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting server", "addr", s.addr, "tls", s.tlsConfig != nil)
		var err error
		if s.tlsConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.finish()
		return err
	case <-ctx.Done():
		return s.Stop()
	}
}

// Stop shuts the server down gracefully, draining in-flight requests and
// then the executors.
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	s.logger.InfoContext(ctx, "shutting down server", "addr", s.addr)
	err := srv.Shutdown(ctx)
	s.finish()
	return err
}

// Run is a convenience wrapper that starts the server and stops it when
// the process receives the context's cancellation. Errors other than a
// clean shutdown are returned.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.httpServer = nil
	s.worker.Close()
	s.ioLoop.Close()
}

// ServeHTTP selects a route, builds the per-request Context and runs the
// dispatch sequence. Panics anywhere below are recovered here and routed
// through the root error handler when the response has not started yet.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)
	ctx := s.newContext(ww, r)
	defer ctx.Destroy()

	defer func() {
		if rec := recover(); rec != nil {
			perr := &panicError{value: rec, stack: debug.Stack()}
			if ww.Written() {
				s.logger.ErrorContext(r.Context(), "panic after response started",
					"method", r.Method,
					"path", r.URL.Path,
					"error", perr.Error(),
				)
				return
			}
			ctx.SendError(perr)
		}
	}()

	rt, params, allowed := s.selectRoute(r.Method, r.URL.Path)
	if rt == nil {
		if len(allowed) > 0 {
			ctx.SetHeader("Allow", strings.Join(allowed, ", "))
			route.MethodNotAllowed(ctx)
			return
		}
		route.NotFound(ctx)
		return
	}

	ctx.SetPathMap(params)
	s.dispatch(ctx, rt)
}

// selectRoute finds the first route matching method and path. When the
// path matches other methods but not this one, those methods come back in
// allowed so the caller can answer 405 with an Allow header.
func (s *Server) selectRoute(method, path string) (*route.Route, map[string]string, []string) {
	method = strings.ToUpper(method)
	var allowed []string
	for _, rt := range s.routes {
		params, ok := route.MatchPath(rt.Pattern(), path)
		if !ok {
			continue
		}
		if rt.Method() == method {
			return rt, params, nil
		}
		allowed = append(allowed, rt.Method())
	}
	sort.Strings(allowed)
	return nil, nil, allowed
}

func (s *Server) newContext(w *responseWriter, r *http.Request) *Context {
	return NewContext(w, r,
		WithContextErrorHandler(s.errorHandler),
		WithContextTempDir(s.tmpDir),
		WithContextMaxMultipartMemory(s.maxMultipartMemory),
		WithContextExecutors(s.worker, s.ioLoop),
		WithContextLogger(s.logger),
	)
}
