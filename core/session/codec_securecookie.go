package session

import "github.com/gorilla/securecookie"

// SecureCookieCodec signs (and optionally encrypts) the attribute map with
// gorilla/securecookie. With a nil block key tokens are signed only.
type SecureCookieCodec struct {
	sc   *securecookie.SecureCookie
	name string
}

// NewSecureCookieCodec creates a codec. hashKey is required (32 or 64
// bytes recommended); blockKey enables AES encryption when non-nil. The
// name binds tokens to one cookie name so they cannot be replayed across
// differently named sessions.
func NewSecureCookieCodec(hashKey, blockKey []byte, name string) *SecureCookieCodec {
	return &SecureCookieCodec{
		sc:   securecookie.New(hashKey, blockKey),
		name: name,
	}
}

// Encode serializes and signs the attribute map.
func (c *SecureCookieCodec) Encode(attributes map[string]string) (string, error) {
	return c.sc.Encode(c.name, attributes)
}

// Decode verifies the signature and deserializes the attribute map.
func (c *SecureCookieCodec) Decode(token string) (map[string]string, error) {
	var attributes map[string]string
	if err := c.sc.Decode(c.name, token, &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}
