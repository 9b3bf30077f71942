package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWTCodec carries the attribute map as HS256-signed JWT claims. Every
// attribute becomes a string claim; non-string claims found on decode are
// ignored so standard registered claims do not leak into the session.
type JWTCodec struct {
	key []byte
}

// ErrInvalidSigningMethod is returned when a token was signed with
// anything but HMAC.
var ErrInvalidSigningMethod = errors.New("unexpected jwt signing method")

// NewJWTCodec creates a codec signing with the given HMAC key.
func NewJWTCodec(key []byte) *JWTCodec {
	return &JWTCodec{key: key}
}

// Encode signs the attribute map as JWT claims.
func (c *JWTCodec) Encode(attributes map[string]string) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range attributes {
		claims[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Decode verifies the token and collects its string claims.
func (c *JWTCodec) Decode(token string) (map[string]string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSigningMethod, t.Header["alg"])
		}
		return c.key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	attributes := make(map[string]string, len(claims))
	for k, v := range claims {
		if s, ok := v.(string); ok {
			attributes[k] = s
		}
	}
	return attributes, nil
}
