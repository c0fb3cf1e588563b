package suggestions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

func jobResult(overall float64, missing types.SkillSet) types.MatchResult {
	sim := 50.0
	return types.MatchResult{
		OverallMatchScore: overall,
		SimilarityScore:   &sim,
		MissingSkills:     &missing,
		MatchedSkills:     &types.SkillSet{},
		SkillMatchScores:  &types.SkillMatchScores{},
	}
}

func report(scores types.CategoryScores, quantified int) scoring.Report {
	return scoring.Report{Scores: scores, Signals: scoring.Signals{QuantifiedStatements: quantified}}
}

func TestGenerate_Order(t *testing.T) {
	missing := types.SkillSet{
		Technical: []string{"aws", "docker", "go", "java", "kafka", "kubernetes", "redis"},
		Soft:      []string{"communication"},
		Domain:    []string{"finance"},
	}
	scores := types.CategoryScores{TechnicalSkills: 90, Education: 10, Experience: 70, Achievements: 50, Formatting: 80}

	got := Generate(jobResult(45, missing), report(scores, 0), Options{})

	require.Len(t, got, 7)
	assert.Equal(t, "Add these technical skills to your resume: aws, docker, go, java, kafka", got[0])
	assert.Equal(t, "Consider learning these additional technical skills: kubernetes, redis", got[1])
	assert.Equal(t, "Highlight these soft skills in your resume: communication", got[2])
	assert.Equal(t, "Add domain knowledge in: finance", got[3])
	assert.Equal(t, sectionTips[types.SectionEducation], got[4])
	assert.Equal(t, quantifyTip, got[5])
	assert.Equal(t, closingWithJob[types.TierNeedsImprovement], got[6])
}

func TestGenerate_MaxNamedSkills(t *testing.T) {
	missing := types.SkillSet{Technical: []string{"a1", "b2", "c3", "d4", "e5"}}
	got := Generate(jobResult(70, missing), report(types.CategoryScores{}, 1), Options{MaxNamedSkills: 2})

	assert.Equal(t, "Add these technical skills to your resume: a1, b2", got[0])
	assert.Equal(t, "Consider learning these additional technical skills: c3, d4", got[1])
}

func TestGenerate_QuantificationTipSuppressedWhenCovered(t *testing.T) {
	scores := types.CategoryScores{TechnicalSkills: 90, Education: 90, Experience: 90, Achievements: 0, Formatting: 90}
	got := Generate(jobResult(85, types.SkillSet{}), report(scores, 0), Options{})

	assert.Equal(t, []string{
		sectionTips[types.SectionAchievements],
		closingWithJob[types.TierExcellent],
	}, got)
}

func TestGenerate_ResumeOnly(t *testing.T) {
	result := types.MatchResult{OverallMatchScore: 65}
	got := Generate(result, report(types.CategoryScores{TechnicalSkills: 20, Education: 60, Experience: 60, Achievements: 60, Formatting: 60}, 3), Options{})

	assert.Equal(t, []string{
		sectionTips[types.SectionTechnicalSkills],
		closingResumeOnly[types.TierGood],
	}, got)
	for _, s := range got {
		assert.False(t, strings.HasPrefix(s, "Add these technical skills"))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	missing := types.SkillSet{Technical: []string{"docker"}, Soft: []string{"teamwork"}}
	r := report(types.CategoryScores{Experience: 5}, 0)
	first := Generate(jobResult(30, missing), r, Options{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Generate(jobResult(30, missing), r, Options{}))
	}
}

func TestLowestSection_TieBreak(t *testing.T) {
	assert.Equal(t, types.SectionTechnicalSkills, LowestSection(types.CategoryScores{}))
	assert.Equal(t, types.SectionExperience, LowestSection(types.CategoryScores{
		TechnicalSkills: 50, Education: 50, Experience: 10, Achievements: 10, Formatting: 50,
	}))
}
