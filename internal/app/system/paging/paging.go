// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the default number of rows returned by list endpoints.
// Keep this as an int because call sites add one for look-ahead and then
// cast to int64 for Mongo Find().SetLimit().
const DefaultLimit = 50

// MaxLimit caps the ?limit= query parameter so a single request cannot
// drag an unbounded result set through the API.
const MaxLimit = 200

// ParseLimit extracts the "limit" query parameter. Returns DefaultLimit if
// absent or invalid, and clamps to MaxLimit.
func ParseLimit(r *http.Request) int {
	s := query.Get(r, "limit")
	if s == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// LookAhead returns limit+1 as int64 for look-ahead pagination (fetch one
// extra document to detect hasMore).
func LookAhead(limit int) int64 { return int64(limit + 1) }

// Trim trims a slice fetched with LookAhead back down to limit rows.
// It modifies the slice in place and reports whether more rows exist
// beyond this page.
func Trim[T any](rows *[]T, limit int) bool {
	if len(*rows) > limit {
		*rows = (*rows)[:limit]
		return true
	}
	return false
}
