package engine

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-scorer/internal/extraction"
	"github.com/jonathan/resume-scorer/internal/matching"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/similarity"
	"github.com/jonathan/resume-scorer/internal/suggestions"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/textnorm"
	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// analysisKeywords is how many top terms an analysis reports.
	analysisKeywords = 20
	// roleAlignmentThreshold is the role confidence that counts as a key strength.
	roleAlignmentThreshold = 50.0
)

// Analyze produces the résumé-only report: section scores with feedback, key strengths,
// the closest role profile and the most frequent keywords.
func (e *Engine) Analyze(req types.AnalyzeRequest) (*types.Analysis, error) {
	tax, err := e.registry.Current()
	if err != nil {
		return nil, err
	}
	if err := e.checkSize("resume_text", req.ResumeText); err != nil {
		return nil, err
	}
	if err := e.validator.Struct(req); err != nil {
		return nil, fromValidation(err)
	}

	doc := tax.Normalize(req.ResumeText)
	if doc.IsEmpty() {
		return nil, invalid("resume_text", "no words left after normalization")
	}

	skills := extraction.New(tax, extraction.WithFuzzyDistance(e.opts.FuzzyDistance)).Extract(doc)
	report := scoring.NewScorer(tax.IsShortSkill).Score(req.ResumeText, nil, skills)
	overall := matching.QualityScore(report.Scores)
	keywords := textnorm.TopTerms(doc, analysisKeywords)
	role := GuessRole(tax, doc)

	strengths := scoring.KeyStrengths(report.Scores, keywords)
	if role.Role != "" && role.Confidence > roleAlignmentThreshold {
		strengths = append(strengths, fmt.Sprintf("Strong alignment with %s positions", role.Role))
	}

	tier := types.TierFor(overall)
	return &types.Analysis{
		OverallScore:    overall,
		Tier:            tier,
		CategoryScores:  report.Scores,
		Feedback:        scoring.Feedback(report.Scores, keywords),
		KeyStrengths:    strengths,
		JobRole:         role,
		Keywords:        keywords,
		Skills:          skills,
		Suggestions:     suggestions.Generate(types.MatchResult{OverallMatchScore: overall, Tier: tier}, report, suggestions.Options{MaxNamedSkills: e.opts.MaxNamedSkills}),
		TaxonomyVersion: tax.Version(),
	}, nil
}

// GuessRole returns the role profile most similar to doc. Ties keep the profile listed
// first. A taxonomy without roles yields the zero RoleGuess.
func GuessRole(tax *taxonomy.Taxonomy, doc textnorm.Document) types.RoleGuess {
	var best types.RoleGuess
	for _, role := range tax.Roles() {
		profile := tax.Normalize(strings.Join(role.Keywords, " "))
		score := similarity.Score(doc, profile)
		if best.Role == "" || score > best.Confidence {
			best = types.RoleGuess{Role: role.Name, Confidence: score}
		}
	}
	return best
}
