package engine

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/types"
)

const fullResume = `Alex Kim
alex.kim@example.com

Skills
Python, React, Docker, PostgreSQL, Agile, leadership

Experience
Software Engineer, Initech, 2018 - Present
- Built REST APIs using Python and React
- Reduced deployment time by 60%
- Mentored 4 junior engineers

Education
B.S. Computer Science, State University, 2018

Achievements
- Increased performance by 40%
- Won the internal hackathon award
`

func newEngine(t *testing.T) *Engine {
	t.Helper()
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	return New(taxonomy.NewRegistry(tax), Options{})
}

func job(text string) *types.JobDescription {
	return &types.JobDescription{Text: text, Title: "Backend Engineer", Company: "Acme", Location: "Remote"}
}

func TestScoreResume_PythonReactDockerScenario(t *testing.T) {
	e := newEngine(t)

	result, err := e.ScoreResume(types.ScoreRequest{
		ResumeText: "Built REST APIs using Python and React",
		Job:        job("Looking for Python, React, Docker experience"),
	})
	require.NoError(t, err)
	require.True(t, result.HasJobComparison())

	assert.Subset(t, result.MatchedSkills.Technical, []string{"python", "react"})
	assert.Contains(t, result.MissingSkills.Technical, "docker")
	assert.Equal(t, 66.67, result.SkillMatchScores.Technical)
	assert.Equal(t, "Add these technical skills to your resume: docker", result.Suggestions[0])
}

func TestScoreResume_EmptyTechnicalRequirements(t *testing.T) {
	e := newEngine(t)

	for _, resume := range []string{"I like painting", fullResume} {
		result, err := e.ScoreResume(types.ScoreRequest{
			ResumeText: resume,
			Job:        job("Seeking a strong communicator with leadership and teamwork"),
		})
		require.NoError(t, err)
		assert.Equal(t, 100.0, result.SkillMatchScores.Technical)
		assert.Empty(t, result.MissingSkills.Technical)
	}
}

func TestScoreResume_NoJobFallback(t *testing.T) {
	e := newEngine(t)

	result, err := e.ScoreResume(types.ScoreRequest{ResumeText: fullResume})
	require.NoError(t, err)

	assert.Nil(t, result.SimilarityScore)
	assert.Nil(t, result.SkillMatchScores)
	assert.Nil(t, result.MatchedSkills)
	assert.Nil(t, result.MissingSkills)
	assert.Greater(t, result.OverallMatchScore, 0.0)
	assert.NotEmpty(t, result.Suggestions)
	assert.Contains(t, result.ResumeSkills.Technical, "python")

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "matched_skills")
}

func TestScoreResume_Deterministic(t *testing.T) {
	e := newEngine(t)
	req := types.ScoreRequest{ResumeText: fullResume, Job: job("Python, Kubernetes, AWS, communication, finance. Go a plus.")}

	first, err := e.ScoreResume(req)
	require.NoError(t, err)
	want, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := e.ScoreResume(req)
		require.NoError(t, err)
		got, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}

func TestScoreResume_SimilaritySymmetric(t *testing.T) {
	e := newEngine(t)
	a := "Go engineer with Kafka, PostgreSQL and Kubernetes in fintech."
	b := "We need a Kubernetes and Kafka engineer for our finance platform."

	ab, err := e.ScoreResume(types.ScoreRequest{ResumeText: a, Job: job(b)})
	require.NoError(t, err)
	ba, err := e.ScoreResume(types.ScoreRequest{ResumeText: b, Job: job(a)})
	require.NoError(t, err)

	assert.Equal(t, *ab.SimilarityScore, *ba.SimilarityScore)
}

func TestScoreResume_BoundsAndSchema(t *testing.T) {
	e := newEngine(t)
	inputs := []types.ScoreRequest{
		{ResumeText: fullResume},
		{ResumeText: fullResume, Job: job(fullResume)},
		{ResumeText: "x y z python", Job: job("???? docker !!!!")},
		{ResumeText: strings.Repeat("Python Go Docker 100% ", 500), Job: job("python")},
	}

	for i, req := range inputs {
		result, err := e.ScoreResume(req)
		require.NoError(t, err, "request %d", i)

		scores := []float64{result.OverallMatchScore}
		for _, sec := range types.AllSections {
			scores = append(scores, result.CategoryScores.Get(sec))
		}
		if result.HasJobComparison() {
			scores = append(scores, *result.SimilarityScore,
				result.SkillMatchScores.Technical, result.SkillMatchScores.Soft, result.SkillMatchScores.Domain)
		}
		for _, s := range scores {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
		}

		assert.NoError(t, schemas.ValidateDocument(schemas.MatchResult, result), "request %d", i)
	}
}

func TestScoreResume_SetInvariants(t *testing.T) {
	e := newEngine(t)
	result, err := e.ScoreResume(types.ScoreRequest{
		ResumeText: fullResume,
		Job:        job("Python, Java, Docker, Kubernetes, AWS. Communication and teamwork. Healthcare and Agile."),
	})
	require.NoError(t, err)

	for _, cat := range types.AllSkillCategories {
		for _, name := range result.MatchedSkills.Get(cat) {
			assert.False(t, result.MissingSkills.Contains(cat, name))
			assert.True(t, result.ResumeSkills.Contains(cat, name))
		}
		for _, name := range result.MissingSkills.Get(cat) {
			assert.False(t, result.ResumeSkills.Contains(cat, name))
		}
	}
}

func TestScoreResume_IdempotentOnNormalizedText(t *testing.T) {
	e := newEngine(t)
	tax, err := e.Registry().Current()
	require.NoError(t, err)

	raw := "<ul><li>Node.js &amp; C#</li><li>CI/CD with Jenkins</li><li>R, SQL, Machine-Learning</li></ul>"
	normalized := tax.Normalize(raw).Text()

	first, err := e.ScoreResume(types.ScoreRequest{ResumeText: raw})
	require.NoError(t, err)
	second, err := e.ScoreResume(types.ScoreRequest{ResumeText: normalized})
	require.NoError(t, err)

	assert.Equal(t, first.ResumeSkills, second.ResumeSkills)
}

func TestScoreResume_Errors(t *testing.T) {
	e := New(taxonomy.NewRegistry(mustDefault(t)), Options{MaxInputBytes: 64})

	tests := []struct {
		name  string
		req   types.ScoreRequest
		kind  error
		field string
	}{
		{name: "missing resume", req: types.ScoreRequest{}, kind: ErrInvalidInput, field: "resume_text"},
		{name: "whitespace resume", req: types.ScoreRequest{ResumeText: "  \n\t "}, kind: ErrInvalidInput, field: "resume_text"},
		{name: "symbols only", req: types.ScoreRequest{ResumeText: "!!! /// ---"}, kind: ErrInvalidInput, field: "resume_text"},
		{
			name:  "job without text",
			req:   types.ScoreRequest{ResumeText: "python", Job: &types.JobDescription{Title: "Dev"}},
			kind:  ErrInvalidInput,
			field: "job_description.text",
		},
		{
			name:  "job without title",
			req:   types.ScoreRequest{ResumeText: "python", Job: &types.JobDescription{Text: "python"}},
			kind:  ErrInvalidInput,
			field: "job_description.title",
		},
		{
			name:  "blank job text",
			req:   types.ScoreRequest{ResumeText: "python", Job: &types.JobDescription{Text: " ... ", Title: "Dev"}},
			kind:  ErrInvalidInput,
			field: "job_description.text",
		},
		{
			name:  "resume too large",
			req:   types.ScoreRequest{ResumeText: strings.Repeat("a", 65)},
			kind:  ErrInputTooLarge,
			field: "resume_text",
		},
		{
			name:  "job too large",
			req:   types.ScoreRequest{ResumeText: "python", Job: &types.JobDescription{Text: strings.Repeat("b", 65), Title: "Dev"}},
			kind:  ErrInputTooLarge,
			field: "job_description.text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.ScoreResume(tt.req)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.kind)

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestScoreResume_TaxonomyUnavailable(t *testing.T) {
	e := New(taxonomy.NewRegistry(nil), Options{})

	_, err := e.ScoreResume(types.ScoreRequest{ResumeText: "python"})
	assert.ErrorIs(t, err, taxonomy.ErrTaxonomyUnavailable)

	_, err = e.Analyze(types.AnalyzeRequest{ResumeText: "python"})
	assert.ErrorIs(t, err, taxonomy.ErrTaxonomyUnavailable)
}

func TestScoreResume_CallerBoundaries(t *testing.T) {
	e := newEngine(t)
	text := "B.S. Physics, Ohio State University, 2012. GPA 3.9"

	result, err := e.ScoreResume(types.ScoreRequest{
		ResumeText: text,
		Sections: []types.SectionBoundary{
			{Section: "education", Start: 0, End: len(text)},
			{Section: "experience", Start: 40, End: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.CategoryScores.Education)
	assert.Equal(t, 0.0, result.CategoryScores.Experience)
}

func TestScoreResume_Fuzzy(t *testing.T) {
	tax := mustDefault(t)
	req := types.ScoreRequest{ResumeText: "Kubernets operator", Job: job("Kubernetes")}

	exact, err := New(taxonomy.NewRegistry(tax), Options{}).ScoreResume(req)
	require.NoError(t, err)
	assert.Contains(t, exact.MissingSkills.Technical, "kubernetes")

	fuzzy, err := New(taxonomy.NewRegistry(tax), Options{FuzzyDistance: 1}).ScoreResume(req)
	require.NoError(t, err)
	assert.Contains(t, fuzzy.MatchedSkills.Technical, "kubernetes")
}

func TestScoreBatch(t *testing.T) {
	e := newEngine(t)
	reqs := []types.ScoreRequest{
		{ResumeText: fullResume},
		{ResumeText: ""},
		{ResumeText: "Python and Docker", Job: job("Docker")},
	}

	results, err := e.ScoreBatch(context.Background(), reqs, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Result)
	assert.ErrorIs(t, results[1].Err, ErrInvalidInput)
	assert.Nil(t, results[1].Result)
	require.NoError(t, results[2].Err)
	assert.Equal(t, 100.0, results[2].Result.SkillMatchScores.Technical)

	single, err := e.ScoreResume(reqs[0])
	require.NoError(t, err)
	assert.Equal(t, single, results[0].Result)
}

func TestScoreBatch_Cancelled(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.ScoreBatch(ctx, []types.ScoreRequest{{ResumeText: "python"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze(t *testing.T) {
	e := newEngine(t)

	analysis, err := e.Analyze(types.AnalyzeRequest{ResumeText: fullResume})
	require.NoError(t, err)

	assert.Equal(t, types.TierFor(analysis.OverallScore), analysis.Tier)
	require.Len(t, analysis.Feedback, len(types.AllSections))
	assert.Equal(t, "Software Engineer", analysis.JobRole.Role)
	assert.Greater(t, analysis.JobRole.Confidence, 0.0)
	assert.NotEmpty(t, analysis.Keywords)
	assert.LessOrEqual(t, len(analysis.Keywords), 20)
	assert.Contains(t, analysis.Skills.Technical, "docker")
	assert.NotEmpty(t, analysis.Suggestions)
	assert.NoError(t, schemas.ValidateDocument(schemas.Analysis, analysis))
}

func TestAnalyze_Errors(t *testing.T) {
	e := newEngine(t)
	_, err := e.Analyze(types.AnalyzeRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Analyze(types.AnalyzeRequest{ResumeText: strings.Repeat("x", DefaultMaxInputBytes+1)})
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestGuessRole(t *testing.T) {
	tax := mustDefault(t)

	tests := []struct {
		text string
		want string
	}{
		{"Machine learning with PyTorch, pandas, NumPy, statistics and regression models", "Data Scientist"},
		{"SEO, SEM, content marketing campaigns and Google Analytics", "Marketing"},
		{"Financial reporting, budgeting, forecasting and audit; CPA", "Finance"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessRole(tax, tax.Normalize(tt.text)).Role)
		})
	}

	assert.Equal(t, types.RoleGuess{Role: "Software Engineer"}, GuessRole(tax, tax.Normalize("")))
}

func mustDefault(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	return tax
}
