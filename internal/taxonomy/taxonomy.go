// Package taxonomy provides the versioned skill catalogue: canonical skill names, their
// categories and synonyms, plus the role keyword profiles used by résumé analysis.
// The default catalogue is embedded at compile time.
package taxonomy

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jonathan/resume-scorer/internal/textnorm"
	"github.com/jonathan/resume-scorer/internal/types"
)

//go:embed skills.json
var embeddedSkills []byte

// EmbeddedSource names the compiled-in catalogue in errors and logs.
const EmbeddedSource = "embedded:skills.json"

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
	defaultErr  error
)

// Term is one lookup key of the taxonomy resolved to its canonical skill.
type Term struct {
	Key       string
	Canonical string
	Category  types.SkillCategory
}

// Taxonomy is an immutable synonym index. It is safe for concurrent use.
type Taxonomy struct {
	version     string
	source      string
	entries     []types.SkillEntry
	index       map[string]int
	terms       []Term
	shortTokens map[string]struct{}
	roles       []types.RoleProfile
}

// document is the on-disk shape shared by the JSON and YAML formats.
type document struct {
	Version string              `json:"version" yaml:"version"`
	Skills  []types.SkillEntry  `json:"skills" yaml:"skills"`
	Roles   []types.RoleProfile `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// Default returns the embedded taxonomy. It is parsed once per process.
func Default() (*Taxonomy, error) {
	defaultOnce.Do(func() {
		defaultTax, defaultErr = Parse(embeddedSkills, FormatJSON, EmbeddedSource)
	})
	return defaultTax, defaultErr
}

// Version returns the catalogue version string.
func (t *Taxonomy) Version() string {
	return t.version
}

// Source returns where the catalogue was loaded from.
func (t *Taxonomy) Source() string {
	return t.source
}

// Len returns the number of skill entries.
func (t *Taxonomy) Len() int {
	return len(t.entries)
}

// Lookup resolves any synonym, in any case, to its skill entry.
func (t *Taxonomy) Lookup(term string) (types.SkillEntry, bool) {
	i, ok := t.index[textnorm.Phrase(term)]
	if !ok {
		return types.SkillEntry{}, false
	}
	return t.entries[i], true
}

// Entries returns every skill entry ordered by category then canonical name.
func (t *Taxonomy) Entries() []types.SkillEntry {
	out := make([]types.SkillEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Terms returns every lookup key ordered by key.
func (t *Taxonomy) Terms() []Term {
	return t.terms
}

// Roles returns the role keyword profiles in file order.
func (t *Taxonomy) Roles() []types.RoleProfile {
	return t.roles
}

// IsShortSkill reports whether tok is shorter than the normalizer's minimum token length
// but appears in some skill key, such as "r" or the "c" of "c sharp".
func (t *Taxonomy) IsShortSkill(tok string) bool {
	_, ok := t.shortTokens[tok]
	return ok
}

// Normalize normalizes text keeping this taxonomy's short skills.
func (t *Taxonomy) Normalize(text string) textnorm.Document {
	return textnorm.Normalize(text, t.IsShortSkill)
}

func build(doc document, source string) (*Taxonomy, error) {
	if strings.TrimSpace(doc.Version) == "" {
		return nil, &LoadError{Source: source, Message: "version is required"}
	}

	entries := make([]types.SkillEntry, 0, len(doc.Skills))
	for i, raw := range doc.Skills {
		cat, err := types.ParseSkillCategory(string(raw.Category))
		if err != nil {
			return nil, &LoadError{Source: source, Message: fmt.Sprintf("skills[%d]", i), Cause: err}
		}
		name := textnorm.Fold(strings.TrimSpace(raw.CanonicalName))
		if textnorm.Phrase(name) == "" {
			return nil, &LoadError{Source: source, Message: fmt.Sprintf("skills[%d]: canonical_name is empty", i)}
		}
		entries = append(entries, types.SkillEntry{
			CanonicalName: name,
			Category:      cat,
			Synonyms:      append([]string(nil), raw.Synonyms...),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return categoryRank(entries[i].Category) < categoryRank(entries[j].Category)
		}
		return entries[i].CanonicalName < entries[j].CanonicalName
	})

	t := &Taxonomy{
		version:     doc.Version,
		source:      source,
		entries:     entries,
		index:       make(map[string]int),
		shortTokens: make(map[string]struct{}),
	}

	for i, entry := range entries {
		for _, synonym := range append([]string{entry.CanonicalName}, entry.Synonyms...) {
			if err := t.addKey(i, synonym); err != nil {
				return nil, err
			}
		}
	}

	t.terms = make([]Term, 0, len(t.index))
	for key, i := range t.index {
		t.terms = append(t.terms, Term{Key: key, Canonical: entries[i].CanonicalName, Category: entries[i].Category})
	}
	sort.Slice(t.terms, func(i, j int) bool { return t.terms[i].Key < t.terms[j].Key })

	for i, role := range doc.Roles {
		if strings.TrimSpace(role.Name) == "" || len(role.Keywords) == 0 {
			return nil, &LoadError{Source: source, Message: fmt.Sprintf("roles[%d]: name and keywords are required", i)}
		}
		t.roles = append(t.roles, types.RoleProfile{Name: role.Name, Keywords: append([]string(nil), role.Keywords...)})
	}

	return t, nil
}

func (t *Taxonomy) addKey(entryIdx int, synonym string) error {
	entry := t.entries[entryIdx]
	tokens := textnorm.Tokenize(synonym)
	if len(tokens) == 0 {
		return &LoadError{Source: t.source, Message: fmt.Sprintf("%s: empty synonym %q", entry.CanonicalName, synonym)}
	}
	if len(tokens) > textnorm.MaxNGram {
		return &LoadError{Source: t.source, Message: fmt.Sprintf("%s: synonym %q has more than %d words", entry.CanonicalName, synonym, textnorm.MaxNGram)}
	}

	key := strings.Join(tokens, " ")
	if prev, exists := t.index[key]; exists {
		if prev == entryIdx {
			return nil
		}
		return &LoadError{Source: t.source, Message: fmt.Sprintf("synonym %q maps to both %s and %s", key, t.entries[prev].CanonicalName, entry.CanonicalName)}
	}
	t.index[key] = entryIdx

	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < textnorm.MinTokenLength {
			t.shortTokens[tok] = struct{}{}
		}
	}
	return nil
}

func categoryRank(c types.SkillCategory) int {
	for i, cat := range types.AllSkillCategories {
		if cat == c {
			return i
		}
	}
	return len(types.AllSkillCategories)
}
