package textnorm

import "sort"

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on",
		"at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its",
		"this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through", "during", "before", "after",
		"above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don",
		"should", "now", "i", "me", "my", "we", "our", "you", "your", "he", "she", "they", "them",
		"their", "his", "her", "who", "whom", "which", "what", "when", "where", "why", "how", "all",
		"any", "both", "each", "few", "more", "most", "other", "some", "no", "nor", "not", "only",
		"also", "do", "does", "did", "have", "has", "had", "having", "would", "could", "may",
		"must", "etc", "using", "used", "looking", "including", "within", "across", "per", "via",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// IsStopword reports whether tok is a common English function word.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

// ContentTokens returns the document tokens with stopwords and pure numbers removed.
func ContentTokens(d Document) []string {
	out := make([]string, 0, len(d.Tokens))
	for _, tok := range d.Tokens {
		if IsStopword(tok) || isNumeric(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TopTerms returns up to n content terms ordered by frequency, ties broken
// alphabetically.
func TopTerms(d Document, n int) []string {
	counts := make(map[string]int)
	for _, tok := range ContentTokens(d) {
		counts[tok]++
	}
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if n >= 0 && len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

func isNumeric(tok string) bool {
	for _, r := range tok {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' {
			return false
		}
	}
	return true
}
