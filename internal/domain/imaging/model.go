// Package imaging provides educational pre-screening of medical images
// using a vision language model.
package imaging

import "time"

// Prediction is the coarse classification of a pre-screened image.
type Prediction string

const (
	PredictionNormal    Prediction = "normal"
	PredictionAbnormal  Prediction = "abnormal"
	PredictionUncertain Prediction = "uncertain"
)

const Disclaimer = "This is NOT a diagnostic tool. This is an educational pre-screen only. All medical imaging must be reviewed by a qualified radiologist. Do not make medical decisions based on this result."

// ValidImageTypes lists the accepted imaging modalities.
var ValidImageTypes = map[string]bool{
	"x-ray": true,
	"ct":    true,
	"mri":   true,
}

// PrescreenResponse is the analysis result for one uploaded image.
type PrescreenResponse struct {
	Prediction            Prediction `json:"prediction"`
	Confidence            float64    `json:"confidence"`
	Explanation           string     `json:"explanation"`
	AreasOfInterest       []string   `json:"areas_of_interest"`
	RecommendedNextSteps  []string   `json:"recommended_next_steps"`
	RecommendedSpecialist *string    `json:"recommended_specialist,omitempty"`
	ModelUsed             string     `json:"model_used"`
	Disclaimer            string     `json:"disclaimer"`
	ProcessedAt           time.Time  `json:"processed_at"`
}
