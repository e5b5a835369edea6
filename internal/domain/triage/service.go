package triage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AnalysisRecord is the flattened result of a completed run, persisted to a
// signed-in user's symptom history.
type AnalysisRecord struct {
	Symptoms              string
	Age                   *int
	Sex                   string
	Duration              string
	ExtractedSymptoms     []string
	UrgencyLevel          UrgencyLevel
	RecommendedSpecialist string
	Reasoning             string
	RedFlags              []string
}

// HistoryRecorder persists completed analyses for authenticated users.
type HistoryRecorder interface {
	RecordSymptomAnalysis(ctx context.Context, userID uuid.UUID, rec *AnalysisRecord) error
}

type Service struct {
	pipeline *Pipeline
	history  HistoryRecorder
	log      zerolog.Logger
}

// NewService wires the pipeline with an optional history recorder; pass nil
// to disable persistence.
func NewService(pipeline *Pipeline, history HistoryRecorder, log zerolog.Logger) *Service {
	return &Service{pipeline: pipeline, history: history, log: log}
}

// Route validates the request, runs the full analysis, and returns the
// recommendation. When userID is non-nil the result is also recorded to the
// user's history; a recording failure never fails the request.
func (s *Service) Route(ctx context.Context, req RouteRequest, userID *uuid.UUID) (*RouteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pc, err := s.pipeline.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &RouteResponse{
		RecommendedSpecialist: pc.RecommendedSpecialist,
		UrgencyLevel:          pc.UrgencyLevel,
		Reasoning:             pc.Reasoning,
		RedFlags:              pc.RedFlags,
		SuggestedPreparations: pc.SuggestedPreparations,
		SuggestedTests:        pc.SuggestedTests,
		HomeCareTips:          pc.HomeCareTips,
		Disclaimer:            Disclaimer,
		ProcessedAt:           time.Now().UTC(),
	}

	if userID != nil && s.history != nil {
		rec := &AnalysisRecord{
			Symptoms:              req.Symptoms,
			Age:                   req.Age,
			Sex:                   req.Sex,
			Duration:              req.Duration,
			ExtractedSymptoms:     pc.ExtractedSymptoms,
			UrgencyLevel:          pc.UrgencyLevel,
			RecommendedSpecialist: pc.RecommendedSpecialist,
			Reasoning:             pc.Reasoning,
			RedFlags:              pc.RedFlags,
		}
		if err := s.history.RecordSymptomAnalysis(ctx, *userID, rec); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to record symptom analysis")
		}
	}

	return resp, nil
}
