package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/forgeworks/conduit/core/handler"
)

// RedisStore is a stateful session store backed by Redis hashes with TTL.
// Sessions are located through the Token collaborator like every other
// store; the session id is the hash key suffix.
type RedisStore struct {
	client redis.UniversalClient
	token  Token
	ttl    time.Duration
	prefix string
}

// NewRedisStore creates a Redis-backed store. Non-positive ttl defaults to
// 24h; an empty prefix defaults to "session:".
func NewRedisStore(client redis.UniversalClient, token Token, ttl time.Duration, prefix string) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisStore{client: client, token: token, ttl: ttl, prefix: prefix}
}

// NewSession returns an empty session flagged new with a generated id.
func (r *RedisStore) NewSession(ctx handler.Context) *Session {
	return New(uuid.NewString())
}

// FindSession looks up the session hash by the request token. A missing
// key reads back as an empty hash, which maps to ErrNotFound.
func (r *RedisStore) FindSession(ctx handler.Context) (*Session, error) {
	id := r.token.FindToken(ctx)
	if id == "" {
		return nil, ErrNotFound
	}
	attributes, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(attributes) == 0 {
		return nil, ErrNotFound
	}
	return Restore(id, attributes), nil
}

// TouchSession persists the attributes and refreshes the TTL.
func (r *RedisStore) TouchSession(ctx handler.Context, sess *Session) error {
	if err := r.put(ctx, sess); err != nil {
		return err
	}
	return r.token.SaveToken(ctx, sess.ID())
}

// RenewSessionID moves the session hash under a fresh id and re-saves the
// token.
func (r *RedisStore) RenewSessionID(ctx handler.Context, sess *Session) error {
	old := sess.ID()
	sess.SetID(uuid.NewString())

	if err := r.client.Del(ctx, r.key(old)).Err(); err != nil {
		return err
	}
	if err := r.put(ctx, sess); err != nil {
		return err
	}
	return r.token.SaveToken(ctx, sess.ID())
}

// DeleteSession removes the session hash and clears the token.
func (r *RedisStore) DeleteSession(ctx handler.Context, sess *Session) error {
	if err := r.client.Del(ctx, r.key(sess.ID())).Err(); err != nil {
		return err
	}
	return r.token.DeleteToken(ctx, sess.ID())
}

// SaveSession persists the session when it was modified.
func (r *RedisStore) SaveSession(ctx handler.Context, sess *Session) error {
	if !sess.IsModified() {
		return nil
	}
	return r.put(ctx, sess)
}

func (r *RedisStore) put(ctx handler.Context, sess *Session) error {
	key := r.key(sess.ID())
	attributes := sess.ToMap()
	if len(attributes) == 0 {
		// HSet with no fields is an error; an attribute-less session has
		// nothing to persist beyond its TTL anyway.
		return r.client.Expire(ctx, key, r.ttl).Err()
	}
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, attributes)
	pipe.Expire(ctx, key, r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}
