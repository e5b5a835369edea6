// Package triage analyzes free-text symptom descriptions through a staged
// language-model pipeline and routes patients to an appropriate provider.
package triage

import (
	"fmt"
	"strings"
	"time"
)

// UrgencyLevel classifies how quickly a patient should seek care.
type UrgencyLevel string

const (
	UrgencyEmergency UrgencyLevel = "emergency"
	UrgencyUrgent    UrgencyLevel = "urgent"
	UrgencyRoutine   UrgencyLevel = "routine"
	UrgencyNonUrgent UrgencyLevel = "non-urgent"
)

// ParseUrgencyLevel validates a raw urgency string against the known levels.
func ParseUrgencyLevel(s string) (UrgencyLevel, error) {
	switch UrgencyLevel(strings.ToLower(strings.TrimSpace(s))) {
	case UrgencyEmergency:
		return UrgencyEmergency, nil
	case UrgencyUrgent:
		return UrgencyUrgent, nil
	case UrgencyRoutine:
		return UrgencyRoutine, nil
	case UrgencyNonUrgent:
		return UrgencyNonUrgent, nil
	}
	return "", fmt.Errorf("unknown urgency level %q", s)
}

const Disclaimer = "This is educational guidance only. If you experience severe symptoms or emergency signs, seek immediate medical attention. Always consult a healthcare provider for diagnosis and treatment."

// RouteRequest is the inbound payload for symptom routing.
type RouteRequest struct {
	Symptoms           string   `json:"symptoms"`
	Age                *int     `json:"age,omitempty"`
	Sex                string   `json:"sex,omitempty"`
	Duration           string   `json:"duration,omitempty"`
	ExistingConditions []string `json:"existing_conditions,omitempty"`
	CurrentMedications []string `json:"current_medications,omitempty"`
}

func (r *RouteRequest) Validate() error {
	if len(strings.TrimSpace(r.Symptoms)) < 10 {
		return fmt.Errorf("symptoms must be at least 10 characters")
	}
	if r.Age != nil && (*r.Age < 0 || *r.Age > 120) {
		return fmt.Errorf("age must be between 0 and 120")
	}
	return nil
}

// RouteResponse is the final recommendation returned to the client.
type RouteResponse struct {
	RecommendedSpecialist string       `json:"recommended_specialist"`
	UrgencyLevel          UrgencyLevel `json:"urgency_level"`
	Reasoning             string       `json:"reasoning"`
	RedFlags              []string     `json:"red_flags"`
	SuggestedPreparations []string     `json:"suggested_preparations"`
	SuggestedTests        []string     `json:"suggested_tests"`
	HomeCareTips          []string     `json:"home_care_tips"`
	Disclaimer            string       `json:"disclaimer"`
	ProcessedAt           time.Time    `json:"processed_at"`
}

// PipelineContext carries the accumulated state of a single analysis run.
// Each stage only adds fields; nothing set by an earlier stage is rewritten.
// A fresh context is created per run and never shared between runs.
type PipelineContext struct {
	Input RouteRequest

	// Stage 1
	ExtractedSymptoms []string

	// Stage 2
	UrgencyLevel      UrgencyLevel
	UrgencyAssessment string
	RedFlags          []string

	// Stage 3
	RecommendedSpecialist string
	Reasoning             string

	// Stage 4
	SuggestedPreparations []string
	SuggestedTests        []string
	HomeCareTips          []string
}

// UrgencyLevelInfo describes one urgency classification for the public
// catalogue endpoint.
type UrgencyLevelInfo struct {
	Level       UrgencyLevel `json:"level"`
	Description string       `json:"description"`
	Action      string       `json:"action"`
	Timeframe   string       `json:"timeframe"`
}

// UrgencyLevels is the static catalogue of classifications, ordered from
// most to least severe.
var UrgencyLevels = []UrgencyLevelInfo{
	{
		Level:       UrgencyEmergency,
		Description: "Life-threatening condition requiring immediate care",
		Action:      "Call 911 or go to Emergency Department immediately",
		Timeframe:   "Immediate (minutes)",
	},
	{
		Level:       UrgencyUrgent,
		Description: "Serious condition requiring prompt medical attention",
		Action:      "See doctor within 24 hours or visit Urgent Care",
		Timeframe:   "Within 24 hours",
	},
	{
		Level:       UrgencyRoutine,
		Description: "Non-emergency condition that should be evaluated",
		Action:      "Schedule regular appointment with appropriate provider",
		Timeframe:   "Within days to weeks",
	},
	{
		Level:       UrgencyNonUrgent,
		Description: "Minor issue that may resolve on its own",
		Action:      "Monitor symptoms, schedule appointment if persists",
		Timeframe:   "As needed",
	},
}
