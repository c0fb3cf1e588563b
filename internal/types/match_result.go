package types

import "fmt"

// Section is one of the fixed résumé sections that receive a quality score.
type Section string

// Résumé sections
const (
	SectionTechnicalSkills Section = "technical_skills"
	SectionEducation       Section = "education"
	SectionExperience      Section = "experience"
	SectionAchievements    Section = "achievements"
	SectionFormatting      Section = "formatting"
)

// AllSections lists the scored sections in their fixed tie-break order.
var AllSections = []Section{
	SectionTechnicalSkills,
	SectionEducation,
	SectionExperience,
	SectionAchievements,
	SectionFormatting,
}

// ParseSection converts a string into a Section.
func ParseSection(s string) (Section, error) {
	for _, sec := range AllSections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// CategoryScores holds a 0-100 score for every résumé section.
type CategoryScores struct {
	TechnicalSkills float64 `json:"technical_skills"`
	Education       float64 `json:"education"`
	Experience      float64 `json:"experience"`
	Achievements    float64 `json:"achievements"`
	Formatting      float64 `json:"formatting"`
}

// Get returns the score for a section.
func (c CategoryScores) Get(sec Section) float64 {
	switch sec {
	case SectionTechnicalSkills:
		return c.TechnicalSkills
	case SectionEducation:
		return c.Education
	case SectionExperience:
		return c.Experience
	case SectionAchievements:
		return c.Achievements
	case SectionFormatting:
		return c.Formatting
	default:
		return 0
	}
}

// Set assigns the score for a section.
func (c *CategoryScores) Set(sec Section, score float64) {
	switch sec {
	case SectionTechnicalSkills:
		c.TechnicalSkills = score
	case SectionEducation:
		c.Education = score
	case SectionExperience:
		c.Experience = score
	case SectionAchievements:
		c.Achievements = score
	case SectionFormatting:
		c.Formatting = score
	}
}

// SkillMatchScores holds a 0-100 coverage score per skill category.
type SkillMatchScores struct {
	Technical float64 `json:"technical"`
	Soft      float64 `json:"soft"`
	Domain    float64 `json:"domain"`
}

// Get returns the score for a skill category.
func (s SkillMatchScores) Get(cat SkillCategory) float64 {
	switch cat {
	case CategoryTechnical:
		return s.Technical
	case CategorySoft:
		return s.Soft
	case CategoryDomain:
		return s.Domain
	default:
		return 0
	}
}

// Tier buckets an overall score for display and closing suggestions.
type Tier string

// Score tiers
const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierNeedsImprovement Tier = "needs_improvement"
)

// TierFor returns the tier of an overall score.
func TierFor(score float64) Tier {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 60:
		return TierGood
	default:
		return TierNeedsImprovement
	}
}

// MatchResult is the terminal output of a scoring request. It is built once and never
// mutated. When no job description was supplied the similarity, skill match and
// matched/missing fields are nil.
type MatchResult struct {
	OverallMatchScore float64           `json:"overall_match_score"`
	SimilarityScore   *float64          `json:"similarity_score,omitempty"`
	SkillMatchScores  *SkillMatchScores `json:"skill_match_scores,omitempty"`
	MatchedSkills     *SkillSet         `json:"matched_skills,omitempty"`
	MissingSkills     *SkillSet         `json:"missing_skills,omitempty"`
	Suggestions       []string          `json:"suggestions"`

	CategoryScores  CategoryScores `json:"category_scores"`
	ResumeSkills    SkillSet       `json:"resume_skills"`
	Tier            Tier           `json:"tier"`
	TaxonomyVersion string         `json:"taxonomy_version"`
}

// HasJobComparison reports whether the result was computed against a job description.
func (m *MatchResult) HasJobComparison() bool {
	return m.SimilarityScore != nil
}
