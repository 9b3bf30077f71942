package server

import "time"

// Default server settings.
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20 // 1MB

	// DefaultMaxMultipartMemory bounds in-memory multipart parsing;
	// larger parts spill to disk before materialization.
	DefaultMaxMultipartMemory = 10 << 20 // 10MB

	DefaultWorkerQueueSize = 256
	DefaultIOQueueSize     = 256
)
