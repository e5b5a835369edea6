package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tricare/tricare/internal/platform/extract"
	"github.com/tricare/tricare/internal/platform/llm"
)

type stubCompleter struct {
	responses []string
	calls     int
	lastTemp  *float64
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string, opts ...llm.Option) (string, error) {
	i := s.calls
	s.calls++
	if i >= len(s.responses) {
		// Repeat the last response for every further chunk.
		i = len(s.responses) - 1
	}
	if i < 0 {
		return "", errors.New("no stub response")
	}
	return s.responses[i], nil
}

const sampleChunkResponse = `{
  "summary": "Your blood test shows a mildly elevated white blood cell count.",
  "key_findings": [
    {"category": "Lab Result", "finding": "White blood cell count is elevated", "original_term": "WBC: 15,000", "severity": "mildly_abnormal"}
  ],
  "recommended_specialist": "Primary Care Physician",
  "next_steps": ["Schedule follow-up with your doctor", "Bring the original report"]
}`

func sampleReportText() string {
	return "Patient presents with elevated WBC count of 15,000 per microliter, above the reference range of 4,500 to 11,000."
}

func newTestService(c *stubCompleter) *Service {
	return NewService(c, extract.NewTextExtractor(), nil, zerolog.Nop())
}

func TestSimplify_SingleChunk(t *testing.T) {
	svc := newTestService(&stubCompleter{responses: []string{sampleChunkResponse}})

	resp, err := svc.Simplify(context.Background(), sampleReportText())
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if !strings.Contains(resp.Summary, "white blood cell") {
		t.Errorf("summary = %q", resp.Summary)
	}
	if len(resp.KeyFindings) != 1 {
		t.Errorf("findings = %v", resp.KeyFindings)
	}
	if resp.Disclaimer != Disclaimer {
		t.Errorf("disclaimer = %q", resp.Disclaimer)
	}
	if resp.ProcessedAt.IsZero() {
		t.Error("processed_at not set")
	}
}

func TestSimplify_TooShort(t *testing.T) {
	svc := newTestService(&stubCompleter{})

	_, err := svc.Simplify(context.Background(), "short note")
	if err == nil || !strings.Contains(err.Error(), "too short") {
		t.Fatalf("expected too-short error, got %v", err)
	}
}

func TestSimplify_MalformedOutput(t *testing.T) {
	svc := newTestService(&stubCompleter{responses: []string{"not json at all"}})

	_, err := svc.Simplify(context.Background(), sampleReportText())
	if !errors.Is(err, llm.ErrMalformed) {
		t.Fatalf("expected llm.ErrMalformed, got %v", err)
	}
}

func TestSimplify_MultiChunkMerge(t *testing.T) {
	// Text long enough to split into multiple chunks.
	long := strings.Repeat("The patient's hemoglobin A1c was measured at 8.2 percent. ", 200)

	chunk2 := `{
  "summary": "Second portion of the report covers kidney function.",
  "key_findings": [
    {"category": "Lab Result", "finding": "White blood cell count is elevated", "original_term": "WBC: 15,000", "severity": "mildly_abnormal"},
    {"category": "Lab Result", "finding": "Creatinine is normal", "original_term": "Cr: 0.9", "severity": "normal"}
  ],
  "recommended_specialist": "Endocrinologist",
  "next_steps": ["Schedule follow-up with your doctor", "Repeat A1c in three months", "Ask about kidney monitoring", "Review diet", "Track fasting glucose", "Walk daily"]
}`
	sc := &stubCompleter{responses: []string{sampleChunkResponse, chunk2}}
	svc := newTestService(sc)

	resp, err := svc.Simplify(context.Background(), long)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if sc.calls < 2 {
		t.Fatalf("expected multiple chunk calls, got %d", sc.calls)
	}

	// Summaries concatenated.
	if !strings.Contains(resp.Summary, "white blood cell") || !strings.Contains(resp.Summary, "kidney function") {
		t.Errorf("merged summary = %q", resp.Summary)
	}
	// Duplicate WBC finding removed.
	wbc := 0
	for _, f := range resp.KeyFindings {
		if f.OriginalTerm != nil && *f.OriginalTerm == "WBC: 15,000" {
			wbc++
		}
	}
	if wbc != 1 {
		t.Errorf("expected WBC finding once, got %d", wbc)
	}
	// Specialist comes from the first chunk.
	if resp.RecommendedSpecialist == nil || *resp.RecommendedSpecialist != "Primary Care Physician" {
		t.Errorf("specialist = %v", resp.RecommendedSpecialist)
	}
	// Next steps capped at five.
	if len(resp.NextSteps) > 5 {
		t.Errorf("next steps = %d, want at most 5", len(resp.NextSteps))
	}
}

func TestSimplifyDocument_ExtractsText(t *testing.T) {
	svc := newTestService(&stubCompleter{responses: []string{sampleChunkResponse}})

	resp, err := svc.SimplifyDocument(context.Background(), []byte(sampleReportText()), "report.txt", "text/plain", nil)
	if err != nil {
		t.Fatalf("SimplifyDocument: %v", err)
	}
	if resp.Summary == "" {
		t.Error("empty summary")
	}
}

func TestSimplifyDocument_UnsupportedType(t *testing.T) {
	svc := newTestService(&stubCompleter{})

	_, err := svc.SimplifyDocument(context.Background(), []byte{0x25, 0x50}, "scan.pdf", "application/pdf", nil)
	if !errors.Is(err, extract.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSplitText(t *testing.T) {
	short := "a short report"
	if got := splitText(short); len(got) != 1 || got[0] != short {
		t.Errorf("short text should be a single chunk, got %v", got)
	}

	long := strings.Repeat("Sentence about results. ", 500)
	chunks := splitText(long)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > chunkSize {
			t.Errorf("chunk %d exceeds size: %d", i, len(c))
		}
		if strings.TrimSpace(c) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}
