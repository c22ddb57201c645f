// Package htmlsanitize strips unsafe HTML from user-submitted rich text
// (bios, project descriptions, question answers, opportunity descriptions)
// before it is stored.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy is built once; bluemonday policies are safe for concurrent use.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Sanitize returns the input with scripts, event handlers, and other unsafe
// markup removed. Plain text passes through unchanged.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	return policy.Sanitize(input)
}
