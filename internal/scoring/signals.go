package scoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-scorer/internal/textnorm"
)

var (
	// dateRegex matches years, optionally with a leading month ("03/2021").
	dateRegex = regexp.MustCompile(`\b(?:\d{1,2}[/.-])?(?:19|20)\d{2}\b`)

	quantifiedRegex = regexp.MustCompile(`(?i)\d|\b(?:doubled|tripled|quadrupled|halved|twofold|threefold|tenfold)\b`)

	dateRangeRegex = regexp.MustCompile(`(?i)(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+)?(?:\d{1,2}[/.-])?(?:19|20)\d{2}\s*(?:-|–|—|to|until)\s*(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+)?(?:(?:\d{1,2}[/.-])?(?:19|20)\d{2}|present|current|now|today)`)

	bulletRegex = regexp.MustCompile(`^\s*(?:[-*•▪●◦‣∙·–]|\d{1,2}[.)])\s+\S`)

	emailRegex = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRegex = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	urlRegex   = regexp.MustCompile(`(?i)\b(?:linkedin\.com|github\.com)/\S+`)

	firstPersonRegex = regexp.MustCompile(`\b(?:I|[Mm]e|[Mm]y|[Mm]ine|[Mm]yself)\b`)

	statementSplitRegex = regexp.MustCompile(`[.!?;]\s+|\n`)
)

var actionVerbs = toSet(
	"accelerated", "achieved", "administered", "analyzed", "architected", "authored", "automated",
	"boosted", "built", "coached", "collaborated", "conducted", "coordinated", "created", "cut",
	"decreased", "delivered", "deployed", "designed", "developed", "directed", "drove", "earned",
	"engineered", "established", "expanded", "facilitated", "founded", "generated", "grew",
	"guided", "headed", "implemented", "improved", "increased", "initiated", "integrated",
	"introduced", "launched", "led", "maintained", "managed", "mentored", "migrated",
	"modernized", "negotiated", "optimized", "orchestrated", "organized", "oversaw", "owned",
	"partnered", "pioneered", "presented", "published", "redesigned", "reduced", "refactored",
	"researched", "resolved", "revamped", "saved", "scaled", "shipped", "simplified",
	"spearheaded", "streamlined", "supervised", "tested", "trained", "transformed", "won", "wrote",
)

// isQuantified reports whether a statement carries a number, percentage, currency amount
// or multiplier. Bare years and dates do not count.
func isQuantified(stmt string) bool {
	return quantifiedRegex.MatchString(dateRegex.ReplaceAllString(stmt, ""))
}

// statements splits text into trimmed sentences and bullet lines, bullet markers removed.
func statements(text string) []string {
	var out []string
	for _, part := range statementSplitRegex.Split(text, -1) {
		part = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(part), "-*•▪●◦‣∙·–"))
		if len(textnorm.Tokenize(part)) == 0 {
			continue
		}
		out = append(out, part)
	}
	return out
}

// quantifiedRatio returns the share of statements that are quantified, and their count.
func quantifiedRatio(stmts []string) (float64, int) {
	if len(stmts) == 0 {
		return 0, 0
	}
	n := 0
	for _, s := range stmts {
		if isQuantified(s) {
			n++
		}
	}
	return float64(n) / float64(len(stmts)), n
}

// actionVerbRatio returns the share of statements that open with an action verb.
func actionVerbRatio(stmts []string) float64 {
	if len(stmts) == 0 {
		return 0
	}
	n := 0
	for _, s := range stmts {
		tokens := textnorm.Tokenize(s)
		if len(tokens) > 0 {
			if _, ok := actionVerbs[tokens[0]]; ok {
				n++
			}
		}
	}
	return float64(n) / float64(len(stmts))
}

func countBullets(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if bulletRegex.MatchString(line) {
			n++
		}
	}
	return n
}

func hasContact(text string) bool {
	return emailRegex.MatchString(text) || phoneRegex.MatchString(text) || urlRegex.MatchString(text)
}

// phraseSet prekeys phrases so they match normalized documents.
type phraseSet []string

func newPhraseSet(phrases ...string) phraseSet {
	out := make(phraseSet, 0, len(phrases))
	for _, p := range phrases {
		if key := textnorm.Normalize(p, nil).Text(); key != "" {
			out = append(out, key)
		}
	}
	return out
}

func (p phraseSet) any(doc textnorm.Document) bool {
	return p.count(doc) > 0
}

func (p phraseSet) count(doc textnorm.Document) int {
	n := 0
	for _, key := range p {
		if doc.HasPhrase(key) {
			n++
		}
	}
	return n
}

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
