// Package value holds the request-value types shared across backend
// adapters: missing-safe Value lookups, the parsed QueryString with its
// shared empty sentinel, Formdata/Multipart body representations, and
// Upload descriptors for materialized multipart file parts.
//
// All types are per-request and owned by a single Context; none of them is
// safe for concurrent mutation.
package value
