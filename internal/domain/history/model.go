// Package history stores per-user analysis results from the report,
// symptom, and imaging workflows and serves them back for review.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/tricare/tricare/internal/domain/report"
)

// ReportRecord is one simplified report kept in a user's history.
type ReportRecord struct {
	ID                    uuid.UUID           `json:"id"`
	UserID                uuid.UUID           `json:"user_id"`
	FileName              string              `json:"file_name"`
	Summary               string              `json:"summary"`
	KeyFindings           []report.KeyFinding `json:"key_findings"`
	NextSteps             []string            `json:"next_steps"`
	RecommendedSpecialist *string             `json:"recommended_specialist,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
}

// SymptomRecord is one completed symptom analysis.
type SymptomRecord struct {
	ID                    uuid.UUID `json:"id"`
	UserID                uuid.UUID `json:"user_id"`
	Symptoms              string    `json:"symptoms"`
	Duration              string    `json:"duration,omitempty"`
	Age                   *int      `json:"age,omitempty"`
	Sex                   string    `json:"sex,omitempty"`
	ExtractedSymptoms     []string  `json:"extracted_symptoms"`
	UrgencyLevel          string    `json:"urgency_level"`
	RecommendedSpecialist string    `json:"specialist_recommendation"`
	Reasoning             string    `json:"reasoning,omitempty"`
	RedFlags              []string  `json:"red_flags"`
	CreatedAt             time.Time `json:"created_at"`
}

// ImagingRecord is one image pre-screen result.
type ImagingRecord struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	FileName        string    `json:"file_name"`
	ImageType       string    `json:"file_type"`
	BodyPart        *string   `json:"body_part,omitempty"`
	Prediction      string    `json:"prediction"`
	Confidence      float64   `json:"confidence"`
	Explanation     string    `json:"explanation,omitempty"`
	Recommendations []string  `json:"recommendations"`
	ModelUsed       string    `json:"model_used,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// DashboardStats is the aggregate view shown on the user's dashboard.
type DashboardStats struct {
	TotalReports         int             `json:"total_reports"`
	TotalSymptoms        int             `json:"total_symptoms"`
	TotalImaging         int             `json:"total_imaging"`
	FavoriteDoctorsCount int             `json:"favorite_doctors_count"`
	RecentReports        []ReportRecord  `json:"recent_reports"`
	RecentSymptoms       []SymptomRecord `json:"recent_symptoms"`
	RecentImaging        []ImagingRecord `json:"recent_imaging"`
}
