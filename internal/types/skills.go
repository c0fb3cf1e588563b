// Package types provides type definitions for structured data used throughout the resume scorer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"sort"
)

// SkillCategory is the closed set of skill groupings in the taxonomy.
type SkillCategory string

// Skill categories
const (
	CategoryTechnical SkillCategory = "technical"
	CategorySoft      SkillCategory = "soft"
	CategoryDomain    SkillCategory = "domain"
)

// AllSkillCategories lists every skill category in reporting order.
var AllSkillCategories = []SkillCategory{CategoryTechnical, CategorySoft, CategoryDomain}

// ParseSkillCategory converts a string into a SkillCategory.
func ParseSkillCategory(s string) (SkillCategory, error) {
	switch SkillCategory(s) {
	case CategoryTechnical, CategorySoft, CategoryDomain:
		return SkillCategory(s), nil
	default:
		return "", fmt.Errorf("unknown skill category %q", s)
	}
}

// SkillEntry is a single taxonomy record. Entries are immutable once loaded.
type SkillEntry struct {
	CanonicalName string        `json:"canonical_name" yaml:"canonical_name"`
	Category      SkillCategory `json:"category" yaml:"category"`
	Synonyms      []string      `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
}

// SkillSet holds canonical skill names per category. Each slice is sorted and
// free of duplicates.
type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Domain    []string `json:"domain"`
}

// NewSkillSet builds a SkillSet from per-category name sets.
func NewSkillSet(technical, soft, domain map[string]struct{}) SkillSet {
	return SkillSet{
		Technical: sortedKeys(technical),
		Soft:      sortedKeys(soft),
		Domain:    sortedKeys(domain),
	}
}

// Get returns the skills for a category.
func (s SkillSet) Get(cat SkillCategory) []string {
	switch cat {
	case CategoryTechnical:
		return s.Technical
	case CategorySoft:
		return s.Soft
	case CategoryDomain:
		return s.Domain
	default:
		return nil
	}
}

// Contains reports whether name is present in the given category.
func (s SkillSet) Contains(cat SkillCategory, name string) bool {
	list := s.Get(cat)
	i := sort.SearchStrings(list, name)
	return i < len(list) && list[i] == name
}

// Len returns the total number of skills across categories.
func (s SkillSet) Len() int {
	return len(s.Technical) + len(s.Soft) + len(s.Domain)
}

// Intersect returns the skills present in both s and other, per category.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	return SkillSet{
		Technical: intersect(s.Technical, other.Technical),
		Soft:      intersect(s.Soft, other.Soft),
		Domain:    intersect(s.Domain, other.Domain),
	}
}

// Difference returns the skills in s that are not in other, per category.
func (s SkillSet) Difference(other SkillSet) SkillSet {
	return SkillSet{
		Technical: difference(s.Technical, other.Technical),
		Soft:      difference(s.Soft, other.Soft),
		Domain:    difference(s.Domain, other.Domain),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// intersect and difference rely on both inputs being sorted.
func intersect(a, b []string) []string {
	out := make([]string, 0)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

func difference(a, b []string) []string {
	out := make([]string, 0)
	i, j := 0, 0
	for i < len(a) {
		switch {
		case j >= len(b) || a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] == b[j]:
			i++
			j++
		default:
			j++
		}
	}
	return out
}
