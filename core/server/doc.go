// Package server is the net/http backend: it adapts the transport-agnostic
// routing core to Go's standard HTTP server.
//
// The Server owns the route table and the two request executors (a bounded
// worker pool and a serial I/O loop) and builds one Context per exchange.
// A request flows through ServeHTTP as route selection, content
// negotiation, pipeline execution and rendering, with upload cleanup
// guaranteed by a deferred Destroy.
//
//	srv := server.New(":8080",
//		server.WithLogger(logger),
//	)
//	srv.Handle(route.New("GET", "/users/{id}", nil, getUser, nil, nil, nil, nil))
//	err := srv.Start(ctx)
//
// Configuration can also come from the environment via Config and
// NewFromConfig, following the env-tag convention used across the module.
package server
