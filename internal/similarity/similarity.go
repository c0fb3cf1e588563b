// Package similarity scores the lexical overlap of two normalized documents with a
// TF-IDF cosine fitted on just those two documents.
package similarity

import (
	"math"
	"sort"

	"github.com/jonathan/resume-scorer/internal/textnorm"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Score returns the TF-IDF cosine similarity of a and b scaled to [0,100]. Stopwords and
// bare numbers are ignored. Score(a, b) == Score(b, a) exactly, and either document
// being empty yields 0.
func Score(a, b textnorm.Document) float64 {
	return types.ClampScore(100 * Cosine(a, b))
}

// Cosine returns the raw cosine similarity in [0,1].
func Cosine(a, b textnorm.Document) float64 {
	tfA := termFrequencies(textnorm.ContentTokens(a))
	tfB := termFrequencies(textnorm.ContentTokens(b))
	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}

	// Terms are visited in sorted order so the float sums do not depend on which
	// document came first.
	terms := make([]string, 0, len(tfA)+len(tfB))
	for term := range tfA {
		terms = append(terms, term)
	}
	for term := range tfB {
		if _, ok := tfA[term]; !ok {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)

	var dot, normA, normB float64
	for _, term := range terms {
		fa, inA := tfA[term]
		fb, inB := tfB[term]
		df := 0
		if inA {
			df++
		}
		if inB {
			df++
		}
		w := idf(2, df)
		va, vb := fa*w, fb*w
		dot += va * vb
		normA += va * va
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return math.Min(1, dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}

// idf is the smoothed inverse document frequency.
func idf(n, df int) float64 {
	return math.Log(float64(1+n)/float64(1+df)) + 1
}

func termFrequencies(tokens []string) map[string]float64 {
	counts := make(map[string]float64)
	for _, tok := range tokens {
		counts[tok]++
	}
	total := float64(len(tokens))
	for term := range counts {
		counts[term] /= total
	}
	return counts
}
