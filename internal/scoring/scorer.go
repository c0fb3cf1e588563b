// Package scoring computes the five résumé section scores from structural and keyword
// heuristics. Every rule is a pure function of the text.
package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/resume-scorer/internal/sections"
	"github.com/jonathan/resume-scorer/internal/textnorm"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Rule weights. Each section's parts sum to 100.
const (
	techPerSkill      = 10.0
	techSkillCap      = 70.0
	techSectionBonus  = 20.0
	techDomainBonus   = 10.0
	eduDegree         = 35.0
	eduInstitution    = 25.0
	eduDate           = 25.0
	eduHonors         = 15.0
	expDateRange      = 25.0
	expActionVerbs    = 35.0
	expQuantified     = 25.0
	expRoleTitle      = 15.0
	achContent        = 20.0
	achPerKeyword     = 10.0
	achKeywordCap     = 30.0
	achQuantified     = 50.0
	fmtPerSection     = 10.0
	fmtSectionCap     = 40.0
	fmtBullets        = 20.0
	fmtLength         = 20.0
	fmtContact        = 10.0
	fmtNoFirstPerson  = 10.0
	minBulletLines    = 3
	idealMinWords     = 200
	idealMaxWords     = 1000
	acceptableMinWord = 100
	acceptableMaxWord = 1500
)

var (
	degreeTerms = newPhraseSet(
		"bachelor", "bachelors", "master", "masters", "phd", "ph.d", "doctorate", "mba",
		"bsc", "msc", "b.sc", "m.sc", "b.s", "m.s", "b.a", "m.a", "b.tech", "m.tech",
		"beng", "meng", "degree", "diploma", "associate degree",
	)
	institutionTerms = newPhraseSet("university", "college", "institute", "school", "academy", "polytechnic")
	honorsTerms      = newPhraseSet(
		"gpa", "honors", "honours", "cum laude", "magna cum laude", "summa cum laude",
		"coursework", "dean's list", "scholarship", "thesis",
	)
	roleTitleTerms = newPhraseSet(
		"engineer", "developer", "manager", "analyst", "intern", "lead", "director",
		"consultant", "designer", "scientist", "specialist", "coordinator", "architect",
		"administrator", "officer", "head of", "vp", "president", "founder", "programmer",
	)
	achievementTerms = newPhraseSet(
		"award", "awarded", "awards", "recognized", "recognition", "winner", "won", "promoted",
		"patent", "published", "publication", "certified", "scholarship", "prize", "ranked",
		"first place", "nominated", "finalist", "record", "honored", "top performer",
	)
)

// Signals are the intermediate measurements behind a score report.
type Signals struct {
	Sections             []sections.Kind `json:"sections"`
	Statements           int             `json:"statements"`
	QuantifiedStatements int             `json:"quantified_statements"`
	ActionVerbRatio      float64         `json:"action_verb_ratio"`
	BulletLines          int             `json:"bullet_lines"`
	WordCount            int             `json:"word_count"`
	HasContact           bool            `json:"has_contact"`
	FirstPerson          bool            `json:"first_person"`
}

// Report is the output of Score.
type Report struct {
	Scores  types.CategoryScores
	Signals Signals
}

// Scorer scores résumé sections. normalize must keep the taxonomy's short skills.
type Scorer struct {
	normalize func(string) textnorm.Document
}

// NewScorer returns a Scorer. isShort may be nil.
func NewScorer(isShort func(string) bool) *Scorer {
	return &Scorer{
		normalize: func(text string) textnorm.Document {
			return textnorm.Normalize(text, isShort)
		},
	}
}

// Score computes all five section scores. When bounds is non-empty it replaces heading
// detection; a malformed boundary zeroes only its own section.
func (s *Scorer) Score(text string, bounds []types.SectionBoundary, skills types.SkillSet) Report {
	var layout sections.Layout
	if len(bounds) > 0 {
		layout = sections.FromBoundaries(text, bounds)
	} else {
		layout = sections.Detect(text)
	}

	allStmts := statements(text)
	_, quantified := quantifiedRatio(allStmts)
	expStmts := statements(layout.Text(sections.KindExperience))

	signals := Signals{
		Sections:             layout.Kinds(),
		Statements:           len(allStmts),
		QuantifiedStatements: quantified,
		ActionVerbRatio:      actionVerbRatio(expStmts),
		BulletLines:          countBullets(text),
		WordCount:            len(strings.Fields(text)),
		HasContact:           hasContact(text),
		FirstPerson:          firstPersonRegex.MatchString(text),
	}

	var scores types.CategoryScores
	scores.TechnicalSkills = s.technicalSkills(layout, skills)
	scores.Education = s.education(layout)
	scores.Experience = s.experience(layout)
	scores.Achievements = s.achievements(layout)
	scores.Formatting = formatting(text, signals)

	for _, sec := range types.AllSections {
		if layout.IsInvalid(sec) {
			scores.Set(sec, 0)
			continue
		}
		scores.Set(sec, types.ClampScore(scores.Get(sec)))
	}

	return Report{Scores: scores, Signals: signals}
}

func (s *Scorer) technicalSkills(layout sections.Layout, skills types.SkillSet) float64 {
	hasSection := layout.Has(sections.KindSkills)
	count := len(skills.Technical)
	if !hasSection && count == 0 {
		return 0
	}

	score := math.Min(techSkillCap, float64(count)*techPerSkill)
	if hasSection {
		score += techSectionBonus
	}
	if len(skills.Domain) > 0 {
		score += techDomainBonus
	}
	return score
}

func (s *Scorer) education(layout sections.Layout) float64 {
	if !layout.Has(sections.KindEducation) {
		return 0
	}
	body := layout.Text(sections.KindEducation)
	doc := s.normalize(body)

	var score float64
	if degreeTerms.any(doc) {
		score += eduDegree
	}
	if institutionTerms.any(doc) {
		score += eduInstitution
	}
	if dateRegex.MatchString(body) {
		score += eduDate
	}
	if honorsTerms.any(doc) {
		score += eduHonors
	}
	return score
}

func (s *Scorer) experience(layout sections.Layout) float64 {
	if !layout.Has(sections.KindExperience) {
		return 0
	}
	body := layout.Text(sections.KindExperience)
	stmts := statements(body)
	quantRatio, _ := quantifiedRatio(stmts)

	var score float64
	if dateRangeRegex.MatchString(body) {
		score += expDateRange
	}
	score += expActionVerbs * actionVerbRatio(stmts)
	score += expQuantified * quantRatio
	if roleTitleTerms.any(s.normalize(body)) {
		score += expRoleTitle
	}
	return score
}

func (s *Scorer) achievements(layout sections.Layout) float64 {
	if !layout.Has(sections.KindAchievements) {
		return 0
	}
	body := layout.Text(sections.KindAchievements)
	doc := s.normalize(body)
	if doc.IsEmpty() {
		return 0
	}

	stmts := statements(body)
	quantRatio, _ := quantifiedRatio(stmts)

	score := achContent
	score += math.Min(achKeywordCap, float64(achievementTerms.count(doc))*achPerKeyword)
	score += achQuantified * quantRatio
	return score
}

func formatting(text string, sig Signals) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	score := math.Min(fmtSectionCap, float64(len(sig.Sections))*fmtPerSection)
	if sig.BulletLines >= minBulletLines {
		score += fmtBullets
	}
	switch {
	case sig.WordCount >= idealMinWords && sig.WordCount <= idealMaxWords:
		score += fmtLength
	case sig.WordCount >= acceptableMinWord && sig.WordCount <= acceptableMaxWord:
		score += fmtLength / 2
	}
	if sig.HasContact {
		score += fmtContact
	}
	if !sig.FirstPerson {
		score += fmtNoFirstPerson
	}
	return score
}
