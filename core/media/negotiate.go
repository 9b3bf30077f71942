package media

import (
	"strings"

	"github.com/elnormous/contenttype"
)

// Negotiate resolves the response media type for a request Accept header
// against the route's produces list.
//
// An empty produces list is unconstrained: negotiation succeeds with the
// request's preferred fallback (its first concrete Accept entry, or
// text/plain when the request expresses no concrete preference). Otherwise
// the intersection is ranked by the Accept header's q-weights and
// specificity; an empty intersection fails and callers map that to a
// not-acceptable response.
func Negotiate(accept string, produces []Type) (Type, bool) {
	if len(produces) == 0 {
		return preferred(accept), true
	}
	if strings.TrimSpace(accept) == "" {
		// No preference expressed: the first declared type wins.
		return produces[0], true
	}

	available := make([]contenttype.MediaType, len(produces))
	for i, p := range produces {
		available[i] = contenttype.NewMediaType(p.Value())
	}

	match, _, err := contenttype.GetAcceptableMediaTypeFromHeader(accept, available)
	if err != nil {
		return Type{}, false
	}
	return Type{mainType: match.Type, subType: match.Subtype}, true
}

// MatchContentType checks a request Content-Type against the route's
// consumes list. An empty consumes list accepts any content type; an
// unmatched one must fail with an unsupported-media-type condition before
// the handler executes.
func MatchContentType(contentType string, consumes []Type) (Type, bool) {
	parsed, err := Parse(contentType)
	if err != nil {
		if len(consumes) == 0 {
			return Type{}, true
		}
		return Type{}, false
	}
	if len(consumes) == 0 {
		return parsed, true
	}
	for _, c := range consumes {
		if c.Matches(parsed) {
			return c, true
		}
	}
	return Type{}, false
}

// preferred extracts the request's first concrete Accept entry.
func preferred(accept string) Type {
	for _, part := range strings.Split(accept, ",") {
		t, err := Parse(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if t.mainType != "*" && t.subType != "*" {
			return t
		}
	}
	return TextPlain
}
