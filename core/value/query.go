package value

import "net/url"

// QueryString is a lazily parsed view over the raw query string.
type QueryString struct {
	raw    string
	values url.Values
}

// EmptyQuery is the shared sentinel returned for requests without a query
// string. Contexts must return it without allocating a parser.
var EmptyQuery = &QueryString{values: url.Values{}}

// ParseQuery parses a raw query string (without the leading '?').
// Malformed pairs are dropped, matching net/url leniency.
func ParseQuery(raw string) *QueryString {
	if raw == "" {
		return EmptyQuery
	}
	values, err := url.ParseQuery(raw)
	if err != nil && len(values) == 0 {
		return &QueryString{raw: raw, values: url.Values{}}
	}
	return &QueryString{raw: raw, values: values}
}

// Raw returns the raw query string as received.
func (q *QueryString) Raw() string {
	return q.raw
}

// IsEmpty reports whether the query string had no parameters.
func (q *QueryString) IsEmpty() bool {
	return len(q.values) == 0
}

// Value returns the query parameter by name, or the missing sentinel.
func (q *QueryString) Value(name string) Value {
	vs, ok := q.values[name]
	if !ok || len(vs) == 0 {
		return Missing(name)
	}
	return New(name, vs...)
}

// Values returns the underlying url.Values. Callers must not mutate it.
func (q *QueryString) Values() url.Values {
	return q.values
}
