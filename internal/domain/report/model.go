// Package report converts complex medical reports into patient-friendly
// summaries using a language model.
package report

import "time"

const Disclaimer = "This is an educational summary only. Not a diagnostic tool. Always consult a licensed healthcare provider."

// KeyFinding is one translated observation from the report.
type KeyFinding struct {
	Category     string  `json:"category"`
	Finding      string  `json:"finding"`
	OriginalTerm *string `json:"original_term,omitempty"`
	Severity     *string `json:"severity,omitempty"`
}

// SimplifyResponse is the plain-language rendering of a medical report.
type SimplifyResponse struct {
	Summary               string       `json:"summary"`
	KeyFindings           []KeyFinding `json:"key_findings"`
	RecommendedSpecialist *string      `json:"recommended_specialist,omitempty"`
	NextSteps             []string     `json:"next_steps"`
	Disclaimer            string       `json:"disclaimer"`
	ProcessedAt           time.Time    `json:"processed_at"`
}
