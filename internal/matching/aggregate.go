// Package matching combines skill sets, section scores and text similarity into a
// MatchResult.
package matching

import (
	"github.com/jonathan/resume-scorer/internal/types"
)

// Weights of the overall score when a job description is supplied. They sum to 1.
const (
	WeightSimilarity = 0.4
	WeightTechnical  = 0.2
	WeightSoft       = 0.2
	WeightDomain     = 0.2
)

// ResumeOnlyWeights weights the section scores into a quality score when no job
// description is supplied. They sum to 1.
var ResumeOnlyWeights = map[types.Section]float64{
	types.SectionTechnicalSkills: 0.3,
	types.SectionEducation:       0.2,
	types.SectionExperience:      0.3,
	types.SectionAchievements:    0.1,
	types.SectionFormatting:      0.1,
}

// Input is everything the aggregator needs. JobSkills and Similarity are nil when no job
// description was supplied.
type Input struct {
	ResumeSkills    types.SkillSet
	JobSkills       *types.SkillSet
	CategoryScores  types.CategoryScores
	Similarity      *float64
	TaxonomyVersion string
}

// Aggregate builds the MatchResult without suggestions.
func Aggregate(in Input) types.MatchResult {
	result := types.MatchResult{
		CategoryScores:  in.CategoryScores,
		ResumeSkills:    in.ResumeSkills,
		TaxonomyVersion: in.TaxonomyVersion,
		Suggestions:     []string{},
	}

	if in.JobSkills == nil {
		result.OverallMatchScore = QualityScore(in.CategoryScores)
		result.Tier = types.TierFor(result.OverallMatchScore)
		return result
	}

	job := *in.JobSkills
	matched := in.ResumeSkills.Intersect(job)
	missing := job.Difference(in.ResumeSkills)

	skillScores := types.SkillMatchScores{
		Technical: coverage(matched.Technical, job.Technical),
		Soft:      coverage(matched.Soft, job.Soft),
		Domain:    coverage(matched.Domain, job.Domain),
	}

	var similarity float64
	if in.Similarity != nil {
		similarity = types.ClampScore(*in.Similarity)
	}

	result.SimilarityScore = &similarity
	result.SkillMatchScores = &skillScores
	result.MatchedSkills = &matched
	result.MissingSkills = &missing
	result.OverallMatchScore = types.ClampScore(
		WeightSimilarity*similarity +
			WeightTechnical*skillScores.Technical +
			WeightSoft*skillScores.Soft +
			WeightDomain*skillScores.Domain,
	)
	result.Tier = types.TierFor(result.OverallMatchScore)
	return result
}

// QualityScore is the résumé-only overall score.
func QualityScore(scores types.CategoryScores) float64 {
	var total float64
	for _, sec := range types.AllSections {
		total += ResumeOnlyWeights[sec] * scores.Get(sec)
	}
	return types.ClampScore(total)
}

// coverage is the share of required skills that were matched. A category with no
// requirements is fully covered.
func coverage(matched, required []string) float64 {
	if len(required) == 0 {
		return 100
	}
	return types.ClampScore(100 * float64(len(matched)) / float64(max(1, len(required))))
}
