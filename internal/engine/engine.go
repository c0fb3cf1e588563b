// Package engine is the résumé scoring entry point. It validates requests and runs the
// normalize, extract, score, compare and suggest stages against the current taxonomy.
package engine

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-scorer/internal/extraction"
	"github.com/jonathan/resume-scorer/internal/matching"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/similarity"
	"github.com/jonathan/resume-scorer/internal/suggestions"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/textnorm"
	"github.com/jonathan/resume-scorer/internal/types"
)

// DefaultMaxInputBytes is the per-text size ceiling when none is configured.
const DefaultMaxInputBytes = 256 << 10

// Options configures an Engine. Zero values select defaults.
type Options struct {
	MaxInputBytes  int
	MaxNamedSkills int
	FuzzyDistance  int
}

// Engine scores résumés. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	registry  *taxonomy.Registry
	opts      Options
	validator *validator.Validate
}

// New returns an Engine reading the taxonomy from registry.
func New(registry *taxonomy.Registry, opts Options) *Engine {
	if opts.MaxInputBytes <= 0 {
		opts.MaxInputBytes = DefaultMaxInputBytes
	}
	if opts.MaxNamedSkills <= 0 {
		opts.MaxNamedSkills = suggestions.DefaultMaxNamedSkills
	}
	return &Engine{
		registry:  registry,
		opts:      opts,
		validator: validator.New(),
	}
}

// Registry returns the taxonomy registry the engine reads from.
func (e *Engine) Registry() *taxonomy.Registry {
	return e.registry
}

// MaxInputBytes returns the effective per-text size ceiling.
func (e *Engine) MaxInputBytes() int {
	return e.opts.MaxInputBytes
}

// ScoreResume scores a résumé, optionally against a job description. It returns either
// a complete result or an error, never a partial result.
func (e *Engine) ScoreResume(req types.ScoreRequest) (*types.MatchResult, error) {
	tax, err := e.registry.Current()
	if err != nil {
		return nil, err
	}
	if err := e.validateScoreRequest(req); err != nil {
		return nil, err
	}

	resumeDoc := tax.Normalize(req.ResumeText)
	if resumeDoc.IsEmpty() {
		return nil, invalid("resume_text", "no words left after normalization")
	}

	var jobDoc textnorm.Document
	if req.Job != nil {
		jobDoc = tax.Normalize(req.Job.Text)
		if jobDoc.IsEmpty() {
			return nil, invalid("job_description.text", "no words left after normalization")
		}
	}

	extractor := extraction.New(tax, extraction.WithFuzzyDistance(e.opts.FuzzyDistance))
	resumeSkills := extractor.Extract(resumeDoc)
	report := scoring.NewScorer(tax.IsShortSkill).Score(req.ResumeText, req.Sections, resumeSkills)

	in := matching.Input{
		ResumeSkills:    resumeSkills,
		CategoryScores:  report.Scores,
		TaxonomyVersion: tax.Version(),
	}
	if req.Job != nil {
		jobSkills := extractor.Extract(jobDoc)
		sim := similarity.Score(resumeDoc, jobDoc)
		in.JobSkills = &jobSkills
		in.Similarity = &sim
	}

	result := matching.Aggregate(in)
	result.Suggestions = suggestions.Generate(result, report, suggestions.Options{MaxNamedSkills: e.opts.MaxNamedSkills})
	return &result, nil
}

func (e *Engine) validateScoreRequest(req types.ScoreRequest) error {
	if err := e.checkSize("resume_text", req.ResumeText); err != nil {
		return err
	}
	if req.Job != nil {
		if err := e.checkSize("job_description.text", req.Job.Text); err != nil {
			return err
		}
	}
	if err := e.validator.Struct(req); err != nil {
		return fromValidation(err)
	}
	if req.Job != nil && strings.TrimSpace(req.Job.Title) == "" {
		return invalid("job_description.title", "required")
	}
	return nil
}

func (e *Engine) checkSize(field, text string) error {
	if len(text) > e.opts.MaxInputBytes {
		return tooLarge(field, len(text), e.opts.MaxInputBytes)
	}
	return nil
}

// fieldNames maps validator namespaces to the request's JSON field names.
var fieldNames = map[string]string{
	"ScoreRequest.ResumeText":   "resume_text",
	"ScoreRequest.Job.Text":     "job_description.text",
	"ScoreRequest.Job.Title":    "job_description.title",
	"AnalyzeRequest.ResumeText": "resume_text",
}

// fromValidation converts the first validator failure into an InputError.
func fromValidation(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field, ok := fieldNames[fe.Namespace()]
		if !ok {
			field = fe.Field()
		}
		return invalid(field, fe.Tag())
	}
	return invalid("request", err.Error())
}
