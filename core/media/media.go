package media

import (
	"fmt"
	"mime"
	"strings"
)

// Type is one media type as declared on a route or carried by a request
// header. Parameters are dropped; charset handling happens at render time.
type Type struct {
	mainType string
	subType  string
}

// Well-known media types.
var (
	All               = Type{"*", "*"}
	TextPlain         = Type{"text", "plain"}
	TextHTML          = Type{"text", "html"}
	ApplicationJSON   = Type{"application", "json"}
	OctetStream       = Type{"application", "octet-stream"}
	FormURLEncoded    = Type{"application", "x-www-form-urlencoded"}
	MultipartFormData = Type{"multipart", "form-data"}
)

// Parse parses a media type value like "application/json; charset=utf-8".
func Parse(value string) (Type, error) {
	mt, _, err := mime.ParseMediaType(value)
	if err != nil {
		return Type{}, fmt.Errorf("invalid media type %q: %w", value, err)
	}
	main, sub, ok := strings.Cut(mt, "/")
	if !ok || main == "" || sub == "" {
		return Type{}, fmt.Errorf("invalid media type %q", value)
	}
	return Type{mainType: main, subType: sub}, nil
}

// New parses a media type value and panics on failure.
// Intended for package-level route declarations.
func New(value string) Type {
	t, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return t
}

// Value returns the canonical "type/subtype" form. Route parser tables are
// keyed by this value.
func (t Type) Value() string {
	return t.mainType + "/" + t.subType
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return t.Value()
}

// MainType returns the primary type, e.g. "application".
func (t Type) MainType() string { return t.mainType }

// SubType returns the subtype, e.g. "json".
func (t Type) SubType() string { return t.subType }

// IsZero reports whether the type is unset.
func (t Type) IsZero() bool {
	return t.mainType == "" && t.subType == ""
}

// Matches reports whether other satisfies this type. An exact type/subtype
// beats a wildcard subtype beats the full wildcard; comparison is
// case-insensitive per RFC 7231.
func (t Type) Matches(other Type) bool {
	if t.mainType == "*" {
		return true
	}
	if !strings.EqualFold(t.mainType, other.mainType) {
		return false
	}
	if t.subType == "*" || other.subType == "*" {
		return true
	}
	return strings.EqualFold(t.subType, other.subType)
}
