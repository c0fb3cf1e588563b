// Package textnorm turns raw résumé and job text into a canonical token stream and the
// n-gram set used for multi-word skill detection.
//
// Symbol policy: letters and digits are always kept. '.' and '-' survive only inside a
// token ("node.js", "front-end"). '+' and '#' survive as token suffixes ("c++", "c#") so
// they stay distinct from "c". Any other rune separates tokens, so "ci/cd" becomes the
// two tokens "ci" and "cd".
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MinTokenLength is the shortest token kept unless it is a known short skill.
	MinTokenLength = 2
	// MinNGram and MaxNGram bound the phrase lengths indexed for skill matching.
	MinNGram = 2
	MaxNGram = 4
)

// Document is the normalized form of one input text. It is immutable after Normalize
// returns and safe to share between goroutines.
type Document struct {
	Tokens    []string
	NGrams    map[string]struct{}
	RawLength int

	tokenSet map[string]struct{}
}

// IsEmpty reports whether the document has no tokens.
func (d Document) IsEmpty() bool {
	return len(d.Tokens) == 0
}

// HasToken reports whether tok occurs as a token.
func (d Document) HasToken(tok string) bool {
	_, ok := d.tokenSet[tok]
	return ok
}

// HasPhrase reports whether a space-joined phrase of one to MaxNGram tokens occurs.
func (d Document) HasPhrase(phrase string) bool {
	if !strings.Contains(phrase, " ") {
		return d.HasToken(phrase)
	}
	_, ok := d.NGrams[phrase]
	return ok
}

// UniqueTokens returns the distinct tokens of the document.
func (d Document) UniqueTokens() map[string]struct{} {
	return d.tokenSet
}

// Text returns the normalized text, tokens joined by single spaces.
func (d Document) Text() string {
	return strings.Join(d.Tokens, " ")
}

// Normalize folds, strips and tokenizes text. isShort reports tokens shorter than
// MinTokenLength that must be kept anyway (taxonomy skills such as "r"); it may be nil.
// Empty input yields an empty Document.
func Normalize(text string, isShort func(string) bool) Document {
	doc := Document{
		Tokens:    make([]string, 0),
		NGrams:    make(map[string]struct{}),
		RawLength: len(text),
		tokenSet:  make(map[string]struct{}),
	}
	if strings.TrimSpace(text) == "" {
		return doc
	}

	for _, tok := range Tokenize(StripMarkup(text)) {
		if utf8.RuneCountInString(tok) < MinTokenLength && (isShort == nil || !isShort(tok)) {
			continue
		}
		doc.Tokens = append(doc.Tokens, tok)
		doc.tokenSet[tok] = struct{}{}
	}
	doc.NGrams = NGrams(doc.Tokens, MinNGram, MaxNGram)
	return doc
}

// Tokenize folds text and splits it into cleaned tokens without applying the length
// filter. Taxonomy synonyms are keyed with it so that they match Normalize output.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(Fold(text), isSeparator)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := cleanToken(f); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Phrase normalizes a skill phrase into its lookup key.
func Phrase(text string) string {
	return strings.Join(Tokenize(text), " ")
}

// Fold lowercases text and removes diacritics ("Résumé" -> "resume").
func Fold(text string) string {
	// Casers and transformers are stateful, so both are built per call.
	lower := cases.Lower(language.Und).String(text)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return folded
}

// NGrams returns every contiguous phrase of minN..maxN tokens, joined by spaces.
func NGrams(tokens []string, minN, maxN int) map[string]struct{} {
	out := make(map[string]struct{})
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out[strings.Join(tokens[i:i+n], " ")] = struct{}{}
		}
	}
	return out
}

func isSeparator(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	switch r {
	case '.', '-', '+', '#':
		return false
	}
	return true
}

// cleanToken drops symbol runs that cannot start or end a token.
func cleanToken(f string) string {
	f = strings.TrimLeft(f, ".-+#")
	return strings.TrimRight(f, ".-")
}
