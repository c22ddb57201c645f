// internal/app/system/search/search.go
package search

// PrefixPattern turns user-entered text into an anchored Mongo regex that
// matches it as a literal prefix. Callers fold the input first so the
// pattern runs against the *_ci fields and stays on their indexes.
func PrefixPattern(s string) string {
	return "^" + quote(s)
}

// quote escapes regex metacharacters so user input cannot change the shape
// of the query.
func quote(s string) string {
	out := make([]byte, 0, len(s)+4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$':
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}
