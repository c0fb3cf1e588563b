package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// StrengthThreshold is the section score at which a section counts as a key strength.
const StrengthThreshold = 75.0

var feedbackTemplates = map[types.Section]map[types.Tier]string{
	types.SectionTechnicalSkills: {
		types.TierExcellent:        "Your technical skills section is strong, with good emphasis on %s. Consider grouping skills by proficiency level and adding relevant certifications.",
		types.TierGood:             "Your technical skills section is adequate, highlighting %s. Add more in-demand technologies and group skills into languages, frameworks and tools.",
		types.TierNeedsImprovement: "Your technical skills section needs significant improvement. Beyond %s, list the specific languages, frameworks and platforms relevant to your target roles.",
	},
	types.SectionEducation: {
		types.TierExcellent:        "Your education section is well structured, highlighting %s. Add relevant coursework that aligns with your target positions.",
		types.TierGood:             "Your education section is adequate, mentioning %s. Add details about coursework, academic projects, honors or GPA.",
		types.TierNeedsImprovement: "Your education section needs more structure. Beyond %s, include degree names, institutions, graduation dates and academic achievements.",
	},
	types.SectionExperience: {
		types.TierExcellent:        "Your work experience is impressive, highlighting %s. Keep focusing on outcomes rather than responsibilities.",
		types.TierGood:             "Your experience section is adequate, mentioning %s. Start each bullet point with a strong action verb and quantify results where possible.",
		types.TierNeedsImprovement: "Your experience section lacks impact. Beyond %s, structure bullet points as action and result, with dates and specific metrics.",
	},
	types.SectionAchievements: {
		types.TierExcellent:        "Your achievements stand out, mentioning %s. Connect each one to a business outcome.",
		types.TierGood:             "Your achievements section is present but could be stronger. Beyond %s, quantify accomplishments and list awards or recognitions.",
		types.TierNeedsImprovement: "Your achievements section is weak or missing. Add specific accomplishments quantified with metrics, plus awards and recognitions.",
	},
	types.SectionFormatting: {
		types.TierExcellent:        "The resume layout is clean and well organized, with clear sections and concise bullet points.",
		types.TierGood:             "Your resume formatting is adequate. Use consistent section headings, bullet points and contact details at the top.",
		types.TierNeedsImprovement: "Your resume formatting needs significant improvement. Use clear section headings, bullet points, contact details and keep it to one or two pages.",
	},
}

var strengthLabels = map[types.Section]string{
	types.SectionTechnicalSkills: "Strong technical skill set",
	types.SectionEducation:       "Strong educational background",
	types.SectionExperience:      "Solid professional experience",
	types.SectionAchievements:    "Impressive achievements with measurable results",
	types.SectionFormatting:      "Well-organized and professionally formatted resume",
}

// Feedback returns templated feedback for every section in fixed section order.
// keywords are interpolated where a template mentions the résumé's vocabulary.
func Feedback(scores types.CategoryScores, keywords []string) []types.SectionFeedback {
	mention := "your current content"
	if len(keywords) > 0 {
		n := min(len(keywords), 5)
		mention = strings.Join(keywords[:n], ", ")
	}

	out := make([]types.SectionFeedback, 0, len(types.AllSections))
	for _, sec := range types.AllSections {
		score := scores.Get(sec)
		tmpl := feedbackTemplates[sec][types.TierFor(score)]
		text := tmpl
		if strings.Contains(tmpl, "%s") {
			text = fmt.Sprintf(tmpl, mention)
		}
		out = append(out, types.SectionFeedback{Section: sec, Score: score, Text: text})
	}
	return out
}

// KeyStrengths lists sections scoring at least StrengthThreshold in fixed section order.
// A strong technical section also names the top keywords.
func KeyStrengths(scores types.CategoryScores, keywords []string) []string {
	var out []string
	for _, sec := range types.AllSections {
		if scores.Get(sec) < StrengthThreshold {
			continue
		}
		out = append(out, strengthLabels[sec])
		if sec == types.SectionTechnicalSkills && len(keywords) > 0 {
			n := min(len(keywords), 3)
			out = append(out, "Proficiency in "+strings.Join(keywords[:n], ", "))
		}
	}
	return out
}
