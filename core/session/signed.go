package session

import (
	"errors"

	"github.com/forgeworks/conduit/core/handler"
)

// SignedStore is the stateless session store: the session is the signed
// token's decoded attribute map, re-encoded and re-signed on every touch or
// renew. It holds no server-side state; serialization and signing are the
// injected Codec's job and token placement is the Token collaborator's.
type SignedStore struct {
	token Token
	codec Codec
}

// NewSignedStore creates a stateless signed-token store.
func NewSignedStore(token Token, codec Codec) *SignedStore {
	return &SignedStore{token: token, codec: codec}
}

// NewSession returns an empty session flagged new. There is no identifier
// to allocate; the id materializes as the encoded token at touch time.
func (s *SignedStore) NewSession(ctx handler.Context) *Session {
	return New("")
}

// FindSession decodes the request token. Absent token, invalid signature
// and a token decoding to zero attributes are all indistinguishable: a
// session with no attributes is deliberately treated as no session.
func (s *SignedStore) FindSession(ctx handler.Context) (*Session, error) {
	signed := s.token.FindToken(ctx)
	if signed == "" {
		return nil, ErrNotFound
	}
	attributes, err := s.codec.Decode(signed)
	if err != nil || len(attributes) == 0 {
		return nil, ErrNotFound
	}
	return Restore(signed, attributes), nil
}

// TouchSession re-encodes the full attribute map and re-saves the token.
func (s *SignedStore) TouchSession(ctx handler.Context, sess *Session) error {
	return s.save(ctx, sess)
}

// RenewSessionID behaves identically to TouchSession: the stateless store
// has no separate identifier to renew.
func (s *SignedStore) RenewSessionID(ctx handler.Context, sess *Session) error {
	return s.save(ctx, sess)
}

// DeleteSession instructs the token collaborator to clear the token.
func (s *SignedStore) DeleteSession(ctx handler.Context, sess *Session) error {
	return s.token.DeleteToken(ctx, "")
}

// SaveSession is intentionally a no-op: persistence already happened at
// touch/renew time.
func (s *SignedStore) SaveSession(ctx handler.Context, sess *Session) error {
	return nil
}

func (s *SignedStore) save(ctx handler.Context, sess *Session) error {
	encoded, err := s.codec.Encode(sess.ToMap())
	if err != nil {
		return errors.Join(ErrEncodeToken, err)
	}
	sess.SetID(encoded)
	if err := s.token.SaveToken(ctx, encoded); err != nil {
		return errors.Join(ErrSaveToken, err)
	}
	return nil
}
