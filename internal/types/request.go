package types

// JobDescription is the optional comparison target of a scoring request.
// Company and Location are informational and never affect scores.
type JobDescription struct {
	Text     string `json:"text" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
}

// SectionBoundary marks a caller-supplied section as a byte range [Start, End) of the
// résumé text.
type SectionBoundary struct {
	Section string `json:"section"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// ScoreRequest is the input of the scoring operation.
type ScoreRequest struct {
	ResumeText string            `json:"resume_text" validate:"required"`
	Job        *JobDescription   `json:"job_description,omitempty"`
	Sections   []SectionBoundary `json:"sections,omitempty"`
}

// AnalyzeRequest is the input of the résumé-only analysis operation.
type AnalyzeRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
}
