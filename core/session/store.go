package session

import "github.com/forgeworks/conduit/core/handler"

// Store is the uniform persistence interface shared by stateless and
// stateful session stores.
type Store interface {
	// NewSession always succeeds and returns an empty session flagged new.
	NewSession(ctx handler.Context) *Session

	// FindSession locates the session for the current request, or returns
	// ErrNotFound when there is none.
	FindSession(ctx handler.Context) (*Session, error)

	// TouchSession persists the session state after request activity.
	TouchSession(ctx handler.Context, sess *Session) error

	// RenewSessionID rotates the session identifier and re-persists.
	RenewSessionID(ctx handler.Context, sess *Session) error

	// DeleteSession removes the session and clears its token.
	DeleteSession(ctx handler.Context, sess *Session) error

	// SaveSession persists the session at request teardown. Stores whose
	// persistence already happened at touch/renew time implement it as a
	// no-op; it exists to keep the interface uniform.
	SaveSession(ctx handler.Context, sess *Session) error
}

// Token is the collaborator that locates, persists and deletes the session
// token on the transport, typically via a cookie or a header. Stores
// consume it; they never implement it.
type Token interface {
	// FindToken returns the request token, or "" when absent.
	FindToken(ctx handler.Context) string

	// SaveToken writes the token to the response.
	SaveToken(ctx handler.Context, token string) error

	// DeleteToken clears the token from the response. The token argument
	// may be empty when the caller has no current value.
	DeleteToken(ctx handler.Context, token string) error
}

// Codec serializes and signs the session attribute map for the stateless
// store. Implementations must reject tampered tokens on Decode.
type Codec interface {
	Encode(attributes map[string]string) (string, error)
	Decode(token string) (map[string]string, error)
}
