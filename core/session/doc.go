// Package session provides pluggable session persistence behind one Store
// interface.
//
// The signed/stateless variant (SignedStore) keeps no server-side state:
// the session is the token's decoded attribute map, re-encoded and
// re-signed on every touch or renew through an injected Codec
// (gorilla/securecookie or JWT). A token that decodes to zero attributes is
// treated identically to no token at all: clearing the last attribute logs
// the user out rather than leaving an empty-but-valid session behind.
//
// Stateful variants (MemoryStore, RedisStore) persist attributes server-
// side under random ids and use the same Token collaborator for transport.
package session
