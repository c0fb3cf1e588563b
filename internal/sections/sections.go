// Package sections splits résumé text into headed blocks, either by recognizing heading
// lines or from caller-supplied byte ranges.
package sections

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-scorer/internal/textnorm"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Kind is a recognized résumé block.
type Kind string

// Block kinds
const (
	KindSkills         Kind = "skills"
	KindEducation      Kind = "education"
	KindExperience     Kind = "experience"
	KindAchievements   Kind = "achievements"
	KindProjects       Kind = "projects"
	KindSummary        Kind = "summary"
	KindCertifications Kind = "certifications"
)

// maxHeadingWords bounds how long a line may be and still count as a heading.
const maxHeadingWords = 4

var headingVocabulary = map[Kind][]string{
	KindSkills: {
		"skills", "technical skills", "key skills", "core skills", "core competencies",
		"competencies", "technologies", "tech stack", "technical proficiencies", "skills and tools",
	},
	KindEducation: {
		"education", "academic background", "education and training", "academics",
		"academic qualifications",
	},
	KindExperience: {
		"experience", "work experience", "professional experience", "relevant experience",
		"employment", "employment history", "work history", "career history",
	},
	KindAchievements: {
		"achievements", "key achievements", "accomplishments", "awards", "honors",
		"awards and honors", "honors and awards", "awards and achievements",
	},
	KindProjects:       {"projects", "personal projects", "selected projects", "key projects"},
	KindSummary:        {"summary", "professional summary", "profile", "objective", "career objective", "about me"},
	KindCertifications: {"certifications", "certificates", "licenses", "licenses and certifications"},
}

var headingIndex = func() map[string]Kind {
	idx := make(map[string]Kind)
	for kind, phrases := range headingVocabulary {
		for _, p := range phrases {
			idx[headingKey(p)] = kind
		}
	}
	return idx
}()

// Block is one section of a résumé. Start and End are byte offsets of the body.
type Block struct {
	Kind    Kind
	Heading string
	Start   int
	End     int
	Text    string
}

// Layout is the set of blocks found in one résumé.
type Layout struct {
	Blocks []Block
	// Invalid marks scored sections whose caller-supplied boundary was malformed.
	Invalid map[types.Section]bool
}

// Has reports whether at least one block of kind exists.
func (l Layout) Has(kind Kind) bool {
	for _, b := range l.Blocks {
		if b.Kind == kind {
			return true
		}
	}
	return false
}

// Text returns the bodies of every block of kind joined by newlines.
func (l Layout) Text(kind Kind) string {
	var parts []string
	for _, b := range l.Blocks {
		if b.Kind == kind {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Kinds returns the distinct block kinds present, sorted.
func (l Layout) Kinds() []Kind {
	seen := make(map[Kind]struct{})
	for _, b := range l.Blocks {
		seen[b.Kind] = struct{}{}
	}
	out := make([]Kind, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsInvalid reports whether the caller supplied a malformed boundary for sec.
func (l Layout) IsInvalid(sec types.Section) bool {
	return l.Invalid[sec]
}

// Detect finds heading lines and assigns the text up to the next heading to each.
// A heading is a short line matching the heading vocabulary, optionally followed by a
// colon and inline content ("Skills: Go, SQL").
func Detect(text string) Layout {
	var layout Layout
	var open *Block

	closeBlock := func(end int) {
		if open == nil {
			return
		}
		open.End = end
		open.Text = text[open.Start:end]
		layout.Blocks = append(layout.Blocks, *open)
		open = nil
	}

	offset := 0
	for offset <= len(text) {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		next := len(text) + 1
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += offset
			next = lineEnd + 1
		}
		line := text[offset:lineEnd]

		if kind, heading, bodyOffset, ok := matchHeading(line); ok {
			closeBlock(offset)
			open = &Block{Kind: kind, Heading: heading, Start: offset + bodyOffset}
		}
		offset = next
	}
	closeBlock(len(text))

	return layout
}

// FromBoundaries builds a layout from caller-supplied byte ranges. Boundary names may be
// block kinds or scored section names. A boundary that is out of range, inverted, or
// splits a UTF-8 sequence marks its section invalid. Unknown names are ignored.
func FromBoundaries(text string, bounds []types.SectionBoundary) Layout {
	layout := Layout{Invalid: make(map[types.Section]bool)}
	for _, b := range bounds {
		kind, ok := ParseKind(b.Section)
		if !ok {
			continue
		}
		if err := checkRange(text, b.Start, b.End); err != nil {
			if sec, scored := ScoredSection(kind); scored {
				layout.Invalid[sec] = true
			}
			continue
		}
		layout.Blocks = append(layout.Blocks, Block{
			Kind:    kind,
			Heading: b.Section,
			Start:   b.Start,
			End:     b.End,
			Text:    text[b.Start:b.End],
		})
	}
	sort.SliceStable(layout.Blocks, func(i, j int) bool { return layout.Blocks[i].Start < layout.Blocks[j].Start })
	return layout
}

// ParseKind resolves a block kind, a scored section name, or a heading phrase.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(types.SectionTechnicalSkills):
		return KindSkills, true
	case string(types.SectionEducation):
		return KindEducation, true
	case string(types.SectionExperience):
		return KindExperience, true
	case string(types.SectionAchievements):
		return KindAchievements, true
	}
	kind, ok := headingIndex[headingKey(name)]
	return kind, ok
}

// ScoredSection maps a block kind to the scored section it feeds.
func ScoredSection(kind Kind) (types.Section, bool) {
	switch kind {
	case KindSkills:
		return types.SectionTechnicalSkills, true
	case KindEducation:
		return types.SectionEducation, true
	case KindExperience:
		return types.SectionExperience, true
	case KindAchievements:
		return types.SectionAchievements, true
	default:
		return "", false
	}
}

func checkRange(text string, start, end int) error {
	switch {
	case start < 0 || end > len(text):
		return fmt.Errorf("range [%d,%d) outside text of %d bytes", start, end, len(text))
	case start >= end:
		return fmt.Errorf("range [%d,%d) is empty or inverted", start, end)
	case start < len(text) && !utf8.RuneStart(text[start]):
		return fmt.Errorf("start %d splits a character", start)
	case end < len(text) && !utf8.RuneStart(text[end]):
		return fmt.Errorf("end %d splits a character", end)
	}
	return nil
}

// matchHeading returns the kind of a heading line and where its inline body begins.
func matchHeading(line string) (Kind, string, int, bool) {
	candidate := line
	body := len(line)
	if i := strings.IndexByte(line, ':'); i >= 0 {
		candidate = line[:i]
		body = i + 1
	}

	candidate = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(candidate), "#*-=•|> \t"))
	candidate = strings.TrimRight(candidate, "*=-_| \t")
	if candidate == "" || len(strings.Fields(candidate)) > maxHeadingWords {
		return "", "", 0, false
	}

	kind, ok := headingIndex[headingKey(candidate)]
	if !ok {
		return "", "", 0, false
	}
	return kind, candidate, body, true
}

// headingKey normalizes a heading so that "Awards & Honors" and "awards and honors"
// share a key.
func headingKey(s string) string {
	tokens := textnorm.Tokenize(s)
	kept := tokens[:0]
	for _, tok := range tokens {
		if tok != "and" {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}
