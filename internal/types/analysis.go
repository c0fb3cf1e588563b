package types

// SectionFeedback is templated feedback for one résumé section.
type SectionFeedback struct {
	Section Section `json:"section"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
}

// RoleProfile is a named keyword profile used to guess the résumé's target role.
type RoleProfile struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// RoleGuess is the best matching role profile and its similarity confidence (0-100).
type RoleGuess struct {
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
}

// Analysis is the résumé-only report: section scores with feedback, strengths, a role
// guess and the most frequent keywords.
type Analysis struct {
	OverallScore    float64           `json:"overall_score"`
	Tier            Tier              `json:"tier"`
	CategoryScores  CategoryScores    `json:"category_scores"`
	Feedback        []SectionFeedback `json:"feedback"`
	KeyStrengths    []string          `json:"key_strengths"`
	JobRole         RoleGuess         `json:"job_role"`
	Keywords        []string          `json:"keywords"`
	Skills          SkillSet          `json:"skills"`
	Suggestions     []string          `json:"suggestions"`
	TaxonomyVersion string            `json:"taxonomy_version"`
}
