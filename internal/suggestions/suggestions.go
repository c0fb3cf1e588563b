// Package suggestions turns detected gaps into ranked, templated advice.
package suggestions

import (
	"strings"

	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

// DefaultMaxNamedSkills is how many skills one suggestion names.
const DefaultMaxNamedSkills = 5

// Options tunes suggestion output.
type Options struct {
	MaxNamedSkills int
}

var sectionTips = map[types.Section]string{
	types.SectionTechnicalSkills: "Add a dedicated skills section listing the languages, frameworks and tools you use.",
	types.SectionEducation:       "Include degree names, institutions, graduation dates and relevant coursework in your education section.",
	types.SectionExperience:      "Start each experience bullet with a strong action verb and quantify the results you achieved.",
	types.SectionAchievements:    "Add an achievements section with measurable results, awards or recognitions.",
	types.SectionFormatting:      "Use clear section headings, bullet points and contact details, and keep the resume to one or two pages.",
}

// sectionsCoveringQuantification already ask for numbers in their tip.
var sectionsCoveringQuantification = map[types.Section]bool{
	types.SectionExperience:   true,
	types.SectionAchievements: true,
}

const quantifyTip = `Quantify your accomplishments with numbers, percentages or amounts (for example, "Increased performance by 40%").`

var closingWithJob = map[types.Tier]string{
	types.TierExcellent:        "Your resume is well matched to this job description. Emphasize your most relevant achievements.",
	types.TierGood:             "Your resume is a good match. Tailor it more specifically to this job description to close the remaining gaps.",
	types.TierNeedsImprovement: "Your resume needs significant tailoring for this job description. Focus on the required skills above.",
}

var closingResumeOnly = map[types.Tier]string{
	types.TierExcellent:        "Your resume is in excellent shape. Keep it current with your latest accomplishments.",
	types.TierGood:             "Your resume is in good shape. Addressing the tips above will make it stand out.",
	types.TierNeedsImprovement: "Your resume needs improvement. Start with the lowest-scoring sections above.",
}

// Generate returns suggestions, highest priority first: missing technical skills, missing
// soft then domain skills, the weakest section's tip, a quantification tip, and a
// closing line for the overall tier.
func Generate(result types.MatchResult, report scoring.Report, opts Options) []string {
	n := opts.MaxNamedSkills
	if n <= 0 {
		n = DefaultMaxNamedSkills
	}

	var out []string

	if missing := result.MissingSkills; missing != nil {
		if tech := missing.Technical; len(tech) > 0 {
			out = append(out, "Add these technical skills to your resume: "+join(tech, 0, n))
			if len(tech) > n {
				out = append(out, "Consider learning these additional technical skills: "+join(tech, n, 2*n))
			}
		}
		if len(missing.Soft) > 0 {
			out = append(out, "Highlight these soft skills in your resume: "+join(missing.Soft, 0, n))
		}
		if len(missing.Domain) > 0 {
			out = append(out, "Add domain knowledge in: "+join(missing.Domain, 0, n))
		}
	}

	weakest := LowestSection(report.Scores)
	out = append(out, sectionTips[weakest])

	if report.Signals.QuantifiedStatements == 0 && !sectionsCoveringQuantification[weakest] {
		out = append(out, quantifyTip)
	}

	closing := closingResumeOnly
	if result.HasJobComparison() {
		closing = closingWithJob
	}
	out = append(out, closing[types.TierFor(result.OverallMatchScore)])

	return out
}

// LowestSection returns the lowest-scoring section. Ties go to the earlier section in
// types.AllSections.
func LowestSection(scores types.CategoryScores) types.Section {
	lowest := types.AllSections[0]
	for _, sec := range types.AllSections[1:] {
		if scores.Get(sec) < scores.Get(lowest) {
			lowest = sec
		}
	}
	return lowest
}

func join(names []string, from, to int) string {
	to = min(to, len(names))
	return strings.Join(names[from:to], ", ")
}
