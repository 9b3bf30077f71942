package session

import "errors"

var (
	// ErrNotFound is returned when no session exists for the request:
	// no token, an invalid token, or a token decoding to zero attributes.
	ErrNotFound = errors.New("session not found")
	// ErrEncodeToken is returned when encoding session attributes fails.
	ErrEncodeToken = errors.New("failed to encode session token")
	// ErrSaveToken is returned when persisting the token fails.
	ErrSaveToken = errors.New("failed to save session token")
)
