package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tricare/tricare/internal/platform/extract"
	"github.com/tricare/tricare/internal/platform/llm"
)

const minReportLength = 50

// HistoryRecorder persists simplified reports for authenticated users.
type HistoryRecorder interface {
	RecordReport(ctx context.Context, userID uuid.UUID, filename string, resp *SimplifyResponse) error
}

type Service struct {
	completer llm.Completer
	extractor extract.Extractor
	history   HistoryRecorder
	log       zerolog.Logger
}

func NewService(completer llm.Completer, extractor extract.Extractor, history HistoryRecorder, log zerolog.Logger) *Service {
	return &Service{completer: completer, extractor: extractor, history: history, log: log}
}

// AcceptedDocumentTypes names the upload formats the configured extractor
// handles.
func (s *Service) AcceptedDocumentTypes() string {
	return s.extractor.Accepted()
}

// SimplifyDocument extracts text from an uploaded file and simplifies it.
// Authenticated results are also written to the user's report history;
// a persistence failure never fails the request.
func (s *Service) SimplifyDocument(ctx context.Context, content []byte, filename, contentType string, userID *uuid.UUID) (*SimplifyResponse, error) {
	text, err := s.extractor.Extract(content, filename, contentType)
	if err != nil {
		return nil, err
	}

	resp, err := s.Simplify(ctx, text)
	if err != nil {
		return nil, err
	}

	if userID != nil && s.history != nil {
		if err := s.history.RecordReport(ctx, *userID, filename, resp); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to record report history")
		}
	}
	return resp, nil
}

// Simplify translates raw medical text into plain language. Long reports
// are processed in chunks and the per-chunk results merged.
func (s *Service) Simplify(ctx context.Context, text string) (*SimplifyResponse, error) {
	if len(strings.TrimSpace(text)) < minReportLength {
		return nil, fmt.Errorf("medical report text is too short to process")
	}

	chunks := splitText(text)

	var results []*chunkResult
	for i, chunk := range chunks {
		if len(chunks) > 1 {
			s.log.Debug().Int("chunk", i+1).Int("total", len(chunks)).Msg("simplifying report chunk")
		}
		r, err := s.processChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	merged := mergeChunks(results)
	merged.Disclaimer = Disclaimer
	merged.ProcessedAt = time.Now().UTC()
	return merged, nil
}

type chunkResult struct {
	Summary               string       `json:"summary"`
	KeyFindings           []KeyFinding `json:"key_findings"`
	RecommendedSpecialist *string      `json:"recommended_specialist"`
	NextSteps             []string     `json:"next_steps"`
}

func (s *Service) processChunk(ctx context.Context, text string) (*chunkResult, error) {
	user := fmt.Sprintf(simplifyUserTemplate, text)

	raw, err := s.completer.Complete(ctx, simplifySystemPrompt, user, llm.WithTemperature(0.2))
	if err != nil {
		return nil, err
	}

	var result chunkResult
	if err := llm.DecodeJSON(raw, &result); err != nil {
		return nil, err
	}
	if result.Summary == "" {
		return nil, fmt.Errorf("%w: missing summary", llm.ErrMalformed)
	}
	if result.KeyFindings == nil {
		result.KeyFindings = []KeyFinding{}
	}
	if result.NextSteps == nil {
		result.NextSteps = []string{}
	}
	return &result, nil
}

// mergeChunks combines per-chunk results: summaries concatenated, findings
// deduplicated by original term, the first chunk's specialist kept, and the
// first five distinct next steps retained.
func mergeChunks(results []*chunkResult) *SimplifyResponse {
	if len(results) == 1 {
		r := results[0]
		return &SimplifyResponse{
			Summary:               r.Summary,
			KeyFindings:           r.KeyFindings,
			RecommendedSpecialist: r.RecommendedSpecialist,
			NextSteps:             r.NextSteps,
		}
	}

	var summaries []string
	seenTerms := make(map[string]bool)
	var findings []KeyFinding
	seenSteps := make(map[string]bool)
	var steps []string

	for _, r := range results {
		summaries = append(summaries, r.Summary)

		for _, f := range r.KeyFindings {
			term := f.Finding
			if f.OriginalTerm != nil && *f.OriginalTerm != "" {
				term = *f.OriginalTerm
			}
			if seenTerms[term] {
				continue
			}
			seenTerms[term] = true
			findings = append(findings, f)
		}

		for _, step := range r.NextSteps {
			if seenSteps[step] {
				continue
			}
			seenSteps[step] = true
			steps = append(steps, step)
		}
	}

	if len(steps) > 5 {
		steps = steps[:5]
	}
	if findings == nil {
		findings = []KeyFinding{}
	}
	if steps == nil {
		steps = []string{}
	}

	return &SimplifyResponse{
		Summary:               strings.Join(summaries, "\n\n"),
		KeyFindings:           findings,
		RecommendedSpecialist: results[0].RecommendedSpecialist,
		NextSteps:             steps,
	}
}
