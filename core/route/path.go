package route

import "strings"

// PathKeys extracts parameter names from a pattern like /users/{id}/posts,
// in declaration order. Patterns without parameters yield nil.
func PathKeys(pattern string) []string {
	var keys []string
	for _, seg := range strings.Split(pattern, "/") {
		if len(seg) > 1 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			keys = append(keys, seg[1:len(seg)-1])
		}
	}
	return keys
}

// MatchPath matches a request path against a pattern, binding {name}
// segments. It reports whether the path matches and returns the bound
// parameters keyed by path key. Routing-table construction lives outside
// this core; MatchPath only covers executing an already selected route.
func MatchPath(pattern, path string) (map[string]string, bool) {
	patSegs := splitPath(pattern)
	pathSegs := splitPath(path)
	if len(patSegs) != len(pathSegs) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range patSegs {
		if len(seg) > 1 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:len(seg)-1]] = pathSegs[i]
			continue
		}
		if seg != pathSegs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
