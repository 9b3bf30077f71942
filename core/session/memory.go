package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/forgeworks/conduit/core/handler"
)

// MemoryStore is a stateful in-process session store keyed by random
// session ids. It locates sessions through the same Token collaborator as
// every other store. Intended for tests and single-instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	token    Token
	ttl      time.Duration
}

type memoryEntry struct {
	attributes map[string]string
	expiresAt  time.Time
}

// NewMemoryStore creates a memory store. Non-positive ttl defaults to 24h.
func NewMemoryStore(token Token, ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		token:    token,
		ttl:      ttl,
	}
}

// NewSession returns an empty session flagged new with a generated id.
func (m *MemoryStore) NewSession(ctx handler.Context) *Session {
	return New(uuid.NewString())
}

// FindSession looks up the session by the request token.
func (m *MemoryStore) FindSession(ctx handler.Context) (*Session, error) {
	id := m.token.FindToken(ctx)
	if id == "" {
		return nil, ErrNotFound
	}

	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return Restore(id, entry.attributes), nil
}

// TouchSession persists the attributes and extends the expiration.
func (m *MemoryStore) TouchSession(ctx handler.Context, sess *Session) error {
	m.put(sess.ID(), sess.ToMap())
	return m.token.SaveToken(ctx, sess.ID())
}

// RenewSessionID moves the session under a fresh id and re-saves the token.
func (m *MemoryStore) RenewSessionID(ctx handler.Context, sess *Session) error {
	old := sess.ID()
	sess.SetID(uuid.NewString())

	m.mu.Lock()
	delete(m.sessions, old)
	m.mu.Unlock()
	m.put(sess.ID(), sess.ToMap())

	return m.token.SaveToken(ctx, sess.ID())
}

// DeleteSession removes the session and clears the token.
func (m *MemoryStore) DeleteSession(ctx handler.Context, sess *Session) error {
	m.mu.Lock()
	delete(m.sessions, sess.ID())
	m.mu.Unlock()
	return m.token.DeleteToken(ctx, sess.ID())
}

// SaveSession persists the session when it was modified.
func (m *MemoryStore) SaveSession(ctx handler.Context, sess *Session) error {
	if !sess.IsModified() {
		return nil
	}
	m.put(sess.ID(), sess.ToMap())
	return nil
}

// Len returns the number of live sessions, expired entries included until
// their next lookup.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MemoryStore) put(id string, attributes map[string]string) {
	m.mu.Lock()
	m.sessions[id] = memoryEntry{
		attributes: attributes,
		expiresAt:  time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
}
