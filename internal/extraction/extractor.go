// Package extraction detects taxonomy skills in normalized text.
package extraction

import (
	"unicode/utf8"

	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/textnorm"
	"github.com/jonathan/resume-scorer/internal/types"
)

// MinFuzzyLength is the shortest token, in runes, eligible for fuzzy matching.
const MinFuzzyLength = 5

// Extractor maps a normalized document to the canonical skills it mentions.
// It is immutable and safe for concurrent use.
type Extractor struct {
	tax           *taxonomy.Taxonomy
	fuzzyDistance int
	fuzzyTerms    []taxonomy.Term
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFuzzyDistance enables edit-distance matching for single-word skills of at least
// MinFuzzyLength runes. Zero, the default, keeps matching exact.
func WithFuzzyDistance(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.fuzzyDistance = n
		}
	}
}

// New returns an Extractor over tax.
func New(tax *taxonomy.Taxonomy, opts ...Option) *Extractor {
	e := &Extractor{tax: tax}
	for _, opt := range opts {
		opt(e)
	}
	if e.fuzzyDistance > 0 {
		for _, term := range tax.Terms() {
			if isFuzzyCandidate(term.Key) {
				e.fuzzyTerms = append(e.fuzzyTerms, term)
			}
		}
	}
	return e
}

// Extract returns every canonical skill with at least one synonym present in doc.
func (e *Extractor) Extract(doc textnorm.Document) types.SkillSet {
	found := map[types.SkillCategory]map[string]struct{}{
		types.CategoryTechnical: {},
		types.CategorySoft:      {},
		types.CategoryDomain:    {},
	}

	for _, term := range e.tax.Terms() {
		if doc.HasPhrase(term.Key) {
			found[term.Category][term.Canonical] = struct{}{}
		}
	}

	if e.fuzzyDistance > 0 {
		for tok := range doc.UniqueTokens() {
			if !isFuzzyCandidate(tok) {
				continue
			}
			if _, known := e.tax.Lookup(tok); known {
				continue
			}
			for _, term := range e.fuzzyTerms {
				if withinDistance(tok, term.Key, e.fuzzyDistance) {
					found[term.Category][term.Canonical] = struct{}{}
				}
			}
		}
	}

	return types.NewSkillSet(
		found[types.CategoryTechnical],
		found[types.CategorySoft],
		found[types.CategoryDomain],
	)
}

func isFuzzyCandidate(key string) bool {
	if utf8.RuneCountInString(key) < MinFuzzyLength {
		return false
	}
	for _, r := range key {
		if r == ' ' {
			return false
		}
	}
	return true
}

// withinDistance reports whether the Levenshtein distance between a and b is at most max.
func withinDistance(a, b string, max int) bool {
	ra, rb := []rune(a), []rune(b)
	if abs(len(ra)-len(rb)) > max {
		return false
	}
	return levenshtein(ra, rb) <= max
}

// levenshtein computes the edit distance over runes with two rolling rows.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
