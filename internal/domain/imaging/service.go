package imaging

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tricare/tricare/internal/platform/llm"
)

// HistoryRecorder persists pre-screen results for authenticated users.
type HistoryRecorder interface {
	RecordImaging(ctx context.Context, userID uuid.UUID, filename, imageType string, bodyPart *string, resp *PrescreenResponse) error
}

type Service struct {
	vision  llm.VisionCompleter
	history HistoryRecorder
	log     zerolog.Logger
}

func NewService(vision llm.VisionCompleter, history HistoryRecorder, log zerolog.Logger) *Service {
	return &Service{vision: vision, history: history, log: log}
}

// Prescreen analyzes an uploaded medical image. DICOM input is converted to
// PNG before the vision call. Authenticated results are saved to the user's
// imaging history; a persistence failure never fails the request.
func (s *Service) Prescreen(ctx context.Context, content []byte, filename, imageType string, bodyPart *string, userID *uuid.UUID) (*PrescreenResponse, error) {
	imageType = strings.ToLower(imageType)
	if !ValidImageTypes[imageType] {
		return nil, fmt.Errorf("invalid image_type, must be one of: x-ray, ct, mri")
	}

	mimeType := "image/png"
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".dcm", ".dicom":
		converted, err := convertDICOMToPNG(content)
		if err != nil {
			return nil, fmt.Errorf("unable to process DICOM file: %w", err)
		}
		content = converted
	}

	prompt := buildVisionPrompt(imageType, bodyPart)
	raw, err := s.vision.CompleteVision(ctx, prompt, content, mimeType)
	if err != nil {
		return nil, err
	}

	var out struct {
		Assessment            string   `json:"assessment"`
		Confidence            float64  `json:"confidence"`
		Observations          []string `json:"observations"`
		Explanation           string   `json:"explanation"`
		RecommendedNextSteps  []string `json:"recommended_next_steps"`
		RecommendedSpecialist *string  `json:"recommended_specialist"`
	}
	if err := llm.DecodeJSON(raw, &out); err != nil {
		return nil, err
	}
	if out.Explanation == "" {
		return nil, fmt.Errorf("%w: missing explanation", llm.ErrMalformed)
	}

	prediction := PredictionUncertain
	switch strings.ToLower(out.Assessment) {
	case "normal":
		prediction = PredictionNormal
	case "abnormal":
		prediction = PredictionAbnormal
	}

	resp := &PrescreenResponse{
		Prediction:            prediction,
		Confidence:            out.Confidence,
		Explanation:           out.Explanation,
		AreasOfInterest:       emptyIfNil(out.Observations),
		RecommendedNextSteps:  emptyIfNil(out.RecommendedNextSteps),
		RecommendedSpecialist: out.RecommendedSpecialist,
		ModelUsed:             "GPT Vision Model",
		Disclaimer:            Disclaimer,
		ProcessedAt:           time.Now().UTC(),
	}

	if userID != nil && s.history != nil {
		if err := s.history.RecordImaging(ctx, *userID, filename, imageType, bodyPart, resp); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to record imaging history")
		}
	}
	return resp, nil
}

func buildVisionPrompt(imageType string, bodyPart *string) string {
	bodyPartStr := ""
	if bodyPart != nil && *bodyPart != "" {
		bodyPartStr = " of the " + *bodyPart
	}
	return fmt.Sprintf(visionPromptTemplate, imageType, bodyPartStr)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
