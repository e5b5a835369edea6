package imaging

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tricare/tricare/internal/platform/llm"
)

type stubVision struct {
	response string
	err      error

	prompt   string
	image    []byte
	mimeType string
	calls    int
}

func (s *stubVision) CompleteVision(_ context.Context, prompt string, image []byte, mimeType string) (string, error) {
	s.calls++
	s.prompt = prompt
	s.image = image
	s.mimeType = mimeType
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const sampleVisionResponse = `{
	"assessment": "abnormal",
	"confidence": 0.82,
	"observations": ["Increased opacity in the right lower lobe", "Blunting of the right costophrenic angle"],
	"explanation": "The image shows an area of increased density (opacity) in the right lower lung field. This pattern can be seen with pneumonia (a lung infection) or fluid accumulation. The costophrenic angle, where the diaphragm meets the chest wall, appears blunted, which may indicate a small pleural effusion (fluid around the lung). These findings warrant clinical correlation. A radiologist must review this image. Follow-up imaging may be needed after treatment.",
	"recommended_next_steps": ["Professional radiologist interpretation (mandatory)", "Pulmonology consultation", "Clinical correlation with symptoms"],
	"recommended_specialist": "Radiologist + Pulmonologist"
}`

func newTestService(vision *stubVision, history HistoryRecorder) *Service {
	return NewService(vision, history, zerolog.Nop())
}

func TestPrescreenSuccess(t *testing.T) {
	vision := &stubVision{response: sampleVisionResponse}
	svc := newTestService(vision, nil)

	bodyPart := "chest"
	resp, err := svc.Prescreen(context.Background(), []byte("fake-png"), "scan.png", "x-ray", &bodyPart, nil)
	if err != nil {
		t.Fatalf("Prescreen() error = %v", err)
	}
	if resp.Prediction != PredictionAbnormal {
		t.Errorf("Prediction = %q, want %q", resp.Prediction, PredictionAbnormal)
	}
	if resp.Confidence != 0.82 {
		t.Errorf("Confidence = %v, want 0.82", resp.Confidence)
	}
	if len(resp.AreasOfInterest) != 2 {
		t.Errorf("AreasOfInterest len = %d, want 2", len(resp.AreasOfInterest))
	}
	if resp.RecommendedSpecialist == nil || *resp.RecommendedSpecialist != "Radiologist + Pulmonologist" {
		t.Errorf("RecommendedSpecialist = %v", resp.RecommendedSpecialist)
	}
	if resp.Disclaimer != Disclaimer {
		t.Error("response missing disclaimer")
	}
	if resp.ProcessedAt.IsZero() {
		t.Error("ProcessedAt not set")
	}
	if vision.mimeType != "image/png" {
		t.Errorf("mimeType = %q, want image/png", vision.mimeType)
	}
}

func TestPrescreenPromptIncludesTypeAndBodyPart(t *testing.T) {
	vision := &stubVision{response: sampleVisionResponse}
	svc := newTestService(vision, nil)

	bodyPart := "left knee"
	if _, err := svc.Prescreen(context.Background(), []byte("img"), "knee.jpg", "mri", &bodyPart, nil); err != nil {
		t.Fatalf("Prescreen() error = %v", err)
	}
	if !strings.Contains(vision.prompt, "mri of the left knee") {
		t.Errorf("prompt missing image type and body part:\n%s", vision.prompt[:200])
	}
	if vision.mimeType != "image/jpeg" {
		t.Errorf("mimeType = %q, want image/jpeg", vision.mimeType)
	}
}

func TestPrescreenInvalidImageType(t *testing.T) {
	svc := newTestService(&stubVision{response: sampleVisionResponse}, nil)
	if _, err := svc.Prescreen(context.Background(), []byte("img"), "scan.png", "ultrasound", nil, nil); err == nil {
		t.Fatal("Prescreen() expected error for invalid image type")
	}
}

func TestPrescreenUnknownAssessmentMapsToUncertain(t *testing.T) {
	vision := &stubVision{response: `{"assessment": "inconclusive", "confidence": 0.7, "explanation": "Image quality limits interpretation. A radiologist should review directly.", "observations": [], "recommended_next_steps": []}`}
	svc := newTestService(vision, nil)

	resp, err := svc.Prescreen(context.Background(), []byte("img"), "scan.png", "ct", nil, nil)
	if err != nil {
		t.Fatalf("Prescreen() error = %v", err)
	}
	if resp.Prediction != PredictionUncertain {
		t.Errorf("Prediction = %q, want %q", resp.Prediction, PredictionUncertain)
	}
	if resp.AreasOfInterest == nil || resp.RecommendedNextSteps == nil {
		t.Error("list fields should be empty slices, not nil")
	}
}

func TestPrescreenMissingExplanation(t *testing.T) {
	vision := &stubVision{response: `{"assessment": "normal", "confidence": 0.9}`}
	svc := newTestService(vision, nil)

	_, err := svc.Prescreen(context.Background(), []byte("img"), "scan.png", "x-ray", nil, nil)
	if !errors.Is(err, llm.ErrMalformed) {
		t.Fatalf("Prescreen() error = %v, want ErrMalformed", err)
	}
}

func TestPrescreenProseRecovery(t *testing.T) {
	vision := &stubVision{response: "Here is my analysis:\n" + sampleVisionResponse + "\nLet me know if you need more detail."}
	svc := newTestService(vision, nil)

	resp, err := svc.Prescreen(context.Background(), []byte("img"), "scan.png", "x-ray", nil, nil)
	if err != nil {
		t.Fatalf("Prescreen() error = %v", err)
	}
	if resp.Prediction != PredictionAbnormal {
		t.Errorf("Prediction = %q, want %q", resp.Prediction, PredictionAbnormal)
	}
}

func TestPrescreenUpstreamFailure(t *testing.T) {
	vision := &stubVision{err: llm.ErrUnavailable}
	svc := newTestService(vision, nil)

	_, err := svc.Prescreen(context.Background(), []byte("img"), "scan.png", "x-ray", nil, nil)
	if !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("Prescreen() error = %v, want ErrUnavailable", err)
	}
}

type mockImagingRecorder struct {
	userID    uuid.UUID
	filename  string
	imageType string
	calls     int
	err       error
}

func (m *mockImagingRecorder) RecordImaging(_ context.Context, userID uuid.UUID, filename, imageType string, _ *string, _ *PrescreenResponse) error {
	m.calls++
	m.userID = userID
	m.filename = filename
	m.imageType = imageType
	return m.err
}

func TestPrescreenRecordsHistoryForUser(t *testing.T) {
	recorder := &mockImagingRecorder{}
	svc := newTestService(&stubVision{response: sampleVisionResponse}, recorder)

	userID := uuid.New()
	if _, err := svc.Prescreen(context.Background(), []byte("img"), "scan.png", "x-ray", nil, &userID); err != nil {
		t.Fatalf("Prescreen() error = %v", err)
	}
	if recorder.calls != 1 {
		t.Fatalf("recorder calls = %d, want 1", recorder.calls)
	}
	if recorder.userID != userID || recorder.filename != "scan.png" || recorder.imageType != "x-ray" {
		t.Errorf("unexpected record: %+v", recorder)
	}
}

func TestPrescreenAnonymousSkipsHistory(t *testing.T) {
	recorder := &mockImagingRecorder{}
	svc := newTestService(&stubVision{response: sampleVisionResponse}, recorder)

	if _, err := svc.Prescreen(context.Background(), []byte("img"), "scan.png", "x-ray", nil, nil); err != nil {
		t.Fatalf("Prescreen() error = %v", err)
	}
	if recorder.calls != 0 {
		t.Errorf("recorder calls = %d, want 0", recorder.calls)
	}
}

func TestPrescreenRecorderFailureDoesNotFailRequest(t *testing.T) {
	recorder := &mockImagingRecorder{err: errors.New("db down")}
	svc := newTestService(&stubVision{response: sampleVisionResponse}, recorder)

	userID := uuid.New()
	if _, err := svc.Prescreen(context.Background(), []byte("img"), "scan.png", "x-ray", nil, &userID); err != nil {
		t.Fatalf("Prescreen() error = %v", err)
	}
}
