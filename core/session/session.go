package session

// Session is a per-request view of session state: an identifier plus a
// string-to-string attribute map with new/modified tracking. Stores decide
// what the identifier means; for the signed/stateless store it is the
// token itself.
type Session struct {
	id         string
	attributes map[string]string
	isNew      bool
	modified   bool
}

// New creates an empty session flagged as new.
func New(id string) *Session {
	return &Session{
		id:         id,
		attributes: make(map[string]string),
		isNew:      true,
	}
}

// Restore rebuilds a session from persisted attributes; it is not new.
// The attribute map is copied, never aliased.
func Restore(id string, attributes map[string]string) *Session {
	attrs := make(map[string]string, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}
	return &Session{id: id, attributes: attrs}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// SetID replaces the session identifier. Stores call this on renew.
func (s *Session) SetID(id string) { s.id = id }

// IsNew reports whether the session was created for this request rather
// than found via a token.
func (s *Session) IsNew() bool { return s.isNew }

// IsModified reports whether any attribute changed since creation/restore.
func (s *Session) IsModified() bool { return s.modified }

// Get returns an attribute, or the empty string when absent.
func (s *Session) Get(name string) string {
	return s.attributes[name]
}

// Has reports whether an attribute is present.
func (s *Session) Has(name string) bool {
	_, ok := s.attributes[name]
	return ok
}

// Set stores an attribute and marks the session dirty.
func (s *Session) Set(name, val string) *Session {
	s.attributes[name] = val
	s.modified = true
	return s
}

// Delete removes an attribute and marks the session dirty.
func (s *Session) Delete(name string) *Session {
	if _, ok := s.attributes[name]; ok {
		delete(s.attributes, name)
		s.modified = true
	}
	return s
}

// Clear removes all attributes and marks the session dirty.
func (s *Session) Clear() *Session {
	if len(s.attributes) > 0 {
		s.attributes = make(map[string]string)
		s.modified = true
	}
	return s
}

// Len returns the attribute count.
func (s *Session) Len() int { return len(s.attributes) }

// ToMap returns a defensive copy of the attribute map.
func (s *Session) ToMap() map[string]string {
	out := make(map[string]string, len(s.attributes))
	for k, v := range s.attributes {
		out[k] = v
	}
	return out
}
