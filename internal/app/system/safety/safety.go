// Package safety screens user-submitted text against a configurable list of
// blocked terms. It is a plain substring scan over a normalized copy of the
// input, applied before any user content (posts, questions, group
// descriptions, assistant prompts) is accepted.
package safety

import (
	"strings"
	"sync"
)

// defaultBlockedTerms seeds the scanner. The list can be replaced at startup
// via Configure.
var defaultBlockedTerms = []string{
	"buy followers",
	"crypto giveaway",
	"escort",
	"essay for sale",
	"gambling",
	"work from home scam",
}

// Scanner reports whether text contains any blocked term.
type Scanner struct {
	mu    sync.RWMutex
	terms []string
}

// NewScanner builds a scanner over the given terms. Empty or duplicate terms
// are dropped; matching is case-insensitive.
func NewScanner(terms []string) *Scanner {
	s := &Scanner{}
	s.setTerms(terms)
	return s
}

var defaultScanner = NewScanner(defaultBlockedTerms)

// Default returns the process-wide scanner, seeded with the built-in term
// list. Startup may extend it with configured terms via Add.
func Default() *Scanner {
	return defaultScanner
}

func (s *Scanner) setTerms(terms []string) {
	seen := make(map[string]struct{}, len(terms))
	clean := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		clean = append(clean, t)
	}
	s.mu.Lock()
	s.terms = clean
	s.mu.Unlock()
}

// Configure replaces the scanner's term list. Intended for startup wiring
// from config; safe to call while requests are in flight.
func (s *Scanner) Configure(terms []string) {
	s.setTerms(terms)
}

// Add merges additional terms into the current list.
func (s *Scanner) Add(terms []string) {
	s.mu.RLock()
	merged := make([]string, len(s.terms), len(s.terms)+len(terms))
	copy(merged, s.terms)
	s.mu.RUnlock()
	s.setTerms(append(merged, terms...))
}

// Check scans the given text. It returns the first blocked term found, or
// "" if the text is clean.
func (s *Scanner) Check(text string) string {
	if text == "" {
		return ""
	}
	folded := strings.ToLower(text)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, term := range s.terms {
		if strings.Contains(folded, term) {
			return term
		}
	}
	return ""
}

// CheckAll scans several fields and returns the first blocked term found
// across any of them.
func (s *Scanner) CheckAll(fields ...string) string {
	for _, f := range fields {
		if term := s.Check(f); term != "" {
			return term
		}
	}
	return ""
}
