package server

import (
	"crypto/tls"
	"log/slog"
	"time"

	"github.com/forgeworks/conduit/core/handler"
)

// Option configures server behavior.
type Option func(*Server)

// WithTLS configures TLS settings for HTTPS.
func WithTLS(config *tls.Config) Option {
	return func(s *Server) {
		s.tlsConfig = config
	}
}

// WithLogger sets a custom logger for server operations and upload
// cleanup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithErrorHandler sets the root error handler shared by every Context
// this server creates.
func WithErrorHandler(eh handler.ErrorHandler) Option {
	return func(s *Server) {
		s.errorHandler = eh
	}
}

// WithShutdownTimeout sets the maximum time to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdown = timeout
	}
}

// WithReadTimeout sets the request read timeout.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = timeout
	}
}

// WithWriteTimeout sets the response write timeout.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.writeTimeout = timeout
	}
}

// WithIdleTimeout sets the keep-alive idle timeout.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = timeout
	}
}

// WithMaxHeaderBytes limits request header size.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		s.maxHeaderBytes = n
	}
}

// WithTempDir sets the directory multipart file parts materialize into.
func WithTempDir(dir string) Option {
	return func(s *Server) {
		s.tmpDir = dir
	}
}

// WithMaxMultipartMemory bounds in-memory multipart parsing.
func WithMaxMultipartMemory(n int64) Option {
	return func(s *Server) {
		s.maxMultipartMemory = n
	}
}

// WithExecutorSizes sets worker pool size and queue capacities. Zero
// worker size defaults to GOMAXPROCS.
func WithExecutorSizes(workers, workerQueue, ioQueue int) Option {
	return func(s *Server) {
		s.workerPoolSize = workers
		s.workerQueueSize = workerQueue
		s.ioQueueSize = ioQueue
	}
}
