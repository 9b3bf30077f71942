package value

import (
	"net/http"
	"strconv"
)

// Value is a missing-safe view over zero or more request values sharing one
// name (a header, query parameter, form field or path parameter). Lookups
// never fail; absent names yield a missing sentinel instead.
type Value struct {
	name   string
	values []string
}

// New creates a value with the given name and values.
func New(name string, values ...string) Value {
	return Value{name: name, values: values}
}

// Missing returns the missing-value sentinel for the given name.
func Missing(name string) Value {
	return Value{name: name}
}

// Name returns the value name as it appeared in the request.
func (v Value) Name() string {
	return v.name
}

// IsMissing reports whether the value was absent from the request.
func (v Value) IsMissing() bool {
	return len(v.values) == 0
}

// String returns the first value, or the empty string when missing.
func (v Value) String() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// StringDefault returns the first value, or def when missing.
func (v Value) StringDefault(def string) string {
	if len(v.values) == 0 {
		return def
	}
	return v.values[0]
}

// Int returns the first value parsed as int, or def when missing or invalid.
func (v Value) Int(def int) int {
	if len(v.values) == 0 {
		return def
	}
	n, err := strconv.Atoi(v.values[0])
	if err != nil {
		return def
	}
	return n
}

// Bool returns the first value parsed as bool, or def when missing or invalid.
func (v Value) Bool(def bool) bool {
	if len(v.values) == 0 {
		return def
	}
	b, err := strconv.ParseBool(v.values[0])
	if err != nil {
		return def
	}
	return b
}

// Values returns a copy of all values.
func (v Value) Values() []string {
	if len(v.values) == 0 {
		return nil
	}
	out := make([]string, len(v.values))
	copy(out, v.values)
	return out
}

// Object is an immutable name-to-value snapshot, used for the header map.
// Keys are stored in canonical header form.
type Object map[string]Value

// Get returns the value for name, or the missing sentinel.
// Lookup is case-insensitive following header canonicalization rules.
func (o Object) Get(name string) Value {
	if v, ok := o[http.CanonicalHeaderKey(name)]; ok {
		return v
	}
	return Missing(name)
}

// Names returns all names present in the snapshot.
func (o Object) Names() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	return names
}
