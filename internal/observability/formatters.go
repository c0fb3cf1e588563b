// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// bar renders a 0-100 score as a 20 cell gauge.
func bar(score float64) string {
	filled := int(score/5 + 0.5)
	filled = max(0, min(20, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

func writeCategoryScores(sb *strings.Builder, scores types.CategoryScores) {
	for _, sec := range types.AllSections {
		score := scores.Get(sec)
		fmt.Fprintf(sb, "%-17s %s %6.2f\n", sec, bar(score), score)
	}
}

// writeList writes up to limit items with a trailing "... and N more".
func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

func joinSkills(set *types.SkillSet) string {
	if set == nil || set.Len() == 0 {
		return "none"
	}
	var parts []string
	for _, cat := range types.AllSkillCategories {
		parts = append(parts, set.Get(cat)...)
	}
	return strings.Join(parts, ", ")
}

// PrintMatchResult outputs the scores, skill overlap and top suggestions of a result.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:    %.2f (%s)\n", result.OverallMatchScore, result.Tier)
	if result.HasJobComparison() {
		fmt.Fprintf(&sb, "Similarity: %.2f\n", *result.SimilarityScore)
		for _, cat := range types.AllSkillCategories {
			fmt.Fprintf(&sb, "  %-10s %6.2f\n", cat, result.SkillMatchScores.Get(cat))
		}
	}
	sb.WriteString("\n")
	writeCategoryScores(&sb, result.CategoryScores)

	if result.HasJobComparison() {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Matched: %s\n", joinSkills(result.MatchedSkills))
		fmt.Fprintf(&sb, "Missing: %s\n", joinSkills(result.MissingSkills))
	}

	if len(result.Suggestions) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Suggestions", result.Suggestions, 3)
	}
	fmt.Fprintf(&sb, "\nTaxonomy %s", result.TaxonomyVersion)

	p.printBox("MATCH RESULT", sb.String())
}

// PrintAnalysis outputs a résumé-only analysis.
func (p *Printer) PrintAnalysis(analysis *types.Analysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall: %.2f (%s)\n", analysis.OverallScore, analysis.Tier)
	if analysis.JobRole.Role != "" {
		fmt.Fprintf(&sb, "Role:    %s (%.0f%%)\n", analysis.JobRole.Role, analysis.JobRole.Confidence)
	}
	sb.WriteString("\n")
	writeCategoryScores(&sb, analysis.CategoryScores)
	sb.WriteString("\n")

	writeList(&sb, "Key strengths", analysis.KeyStrengths, maxItemsToShow)
	if len(analysis.Keywords) > 0 {
		n := min(len(analysis.Keywords), 8)
		fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(analysis.Keywords[:n], ", "))
	}

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))

	if len(analysis.Feedback) > 0 {
		var fb strings.Builder
		for i, item := range analysis.Feedback {
			fmt.Fprintf(&fb, "%s (%.0f)\n  %s", item.Section, item.Score, item.Text)
			if i < len(analysis.Feedback)-1 {
				fb.WriteString("\n")
			}
		}
		p.printBox("SECTION FEEDBACK", fb.String())
	}
}

// PrintTaxonomy outputs the catalogue version and per-category skill counts.
func (p *Printer) PrintTaxonomy(tax *taxonomy.Taxonomy) {
	if tax == nil {
		return
	}

	counts := make(map[types.SkillCategory]int)
	for _, entry := range tax.Entries() {
		counts[entry.Category]++
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Version: %s\n", tax.Version())
	fmt.Fprintf(&sb, "Source:  %s\n\n", tax.Source())
	for _, cat := range types.AllSkillCategories {
		fmt.Fprintf(&sb, "%-10s %d skills\n", cat, counts[cat])
	}
	fmt.Fprintf(&sb, "%-10s %d lookup terms\n", "total", len(tax.Terms()))

	var roles []string
	for _, role := range tax.Roles() {
		roles = append(roles, fmt.Sprintf("%s (%d keywords)", role.Name, len(role.Keywords)))
	}
	if len(roles) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Roles", roles, maxItemsToShow)
	}

	p.printBox("SKILL TAXONOMY", strings.TrimSuffix(sb.String(), "\n"))
}
