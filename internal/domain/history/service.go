package history

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tricare/tricare/internal/domain/imaging"
	"github.com/tricare/tricare/internal/domain/report"
	"github.com/tricare/tricare/internal/domain/triage"
)

// FavoriteCounter exposes the saved-doctor count for the dashboard.
type FavoriteCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// Service persists analysis results and serves them back. It implements the
// recorder interfaces the report, triage, and imaging services accept.
type Service struct {
	reports   ReportRepository
	symptoms  SymptomRepository
	imaging   ImagingRepository
	favorites FavoriteCounter
	log       zerolog.Logger
}

func NewService(reports ReportRepository, symptoms SymptomRepository, imagingRepo ImagingRepository, favorites FavoriteCounter, log zerolog.Logger) *Service {
	return &Service{reports: reports, symptoms: symptoms, imaging: imagingRepo, favorites: favorites, log: log}
}

func (s *Service) RecordReport(ctx context.Context, userID uuid.UUID, filename string, resp *report.SimplifyResponse) error {
	return s.reports.Create(ctx, &ReportRecord{
		UserID:                userID,
		FileName:              filename,
		Summary:               resp.Summary,
		KeyFindings:           resp.KeyFindings,
		NextSteps:             resp.NextSteps,
		RecommendedSpecialist: resp.RecommendedSpecialist,
	})
}

func (s *Service) RecordSymptomAnalysis(ctx context.Context, userID uuid.UUID, rec *triage.AnalysisRecord) error {
	return s.symptoms.Create(ctx, &SymptomRecord{
		UserID:                userID,
		Symptoms:              rec.Symptoms,
		Duration:              rec.Duration,
		Age:                   rec.Age,
		Sex:                   rec.Sex,
		ExtractedSymptoms:     rec.ExtractedSymptoms,
		UrgencyLevel:          string(rec.UrgencyLevel),
		RecommendedSpecialist: rec.RecommendedSpecialist,
		Reasoning:             rec.Reasoning,
		RedFlags:              rec.RedFlags,
	})
}

func (s *Service) RecordImaging(ctx context.Context, userID uuid.UUID, filename, imageType string, bodyPart *string, resp *imaging.PrescreenResponse) error {
	return s.imaging.Create(ctx, &ImagingRecord{
		UserID:          userID,
		FileName:        filename,
		ImageType:       imageType,
		BodyPart:        bodyPart,
		Prediction:      string(resp.Prediction),
		Confidence:      resp.Confidence,
		Explanation:     resp.Explanation,
		Recommendations: resp.RecommendedNextSteps,
		ModelUsed:       resp.ModelUsed,
	})
}

func (s *Service) ListReports(ctx context.Context, userID uuid.UUID, limit, offset int) ([]ReportRecord, error) {
	return s.reports.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) GetReport(ctx context.Context, userID, id uuid.UUID) (*ReportRecord, error) {
	return s.reports.GetByID(ctx, userID, id)
}

func (s *Service) DeleteReport(ctx context.Context, userID, id uuid.UUID) error {
	return s.reports.Delete(ctx, userID, id)
}

func (s *Service) ListSymptoms(ctx context.Context, userID uuid.UUID, limit, offset int) ([]SymptomRecord, error) {
	return s.symptoms.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) GetSymptom(ctx context.Context, userID, id uuid.UUID) (*SymptomRecord, error) {
	return s.symptoms.GetByID(ctx, userID, id)
}

func (s *Service) DeleteSymptom(ctx context.Context, userID, id uuid.UUID) error {
	return s.symptoms.Delete(ctx, userID, id)
}

func (s *Service) ListImaging(ctx context.Context, userID uuid.UUID, limit, offset int) ([]ImagingRecord, error) {
	return s.imaging.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) GetImaging(ctx context.Context, userID, id uuid.UUID) (*ImagingRecord, error) {
	return s.imaging.GetByID(ctx, userID, id)
}

func (s *Service) DeleteImaging(ctx context.Context, userID, id uuid.UUID) error {
	return s.imaging.Delete(ctx, userID, id)
}

const recentLimit = 5

// Dashboard aggregates totals and the most recent activity per workflow.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	totalReports, err := s.reports.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalSymptoms, err := s.symptoms.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalImaging, err := s.imaging.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	favoriteCount := 0
	if s.favorites != nil {
		favoriteCount, err = s.favorites.CountByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	recentReports, err := s.reports.ListByUser(ctx, userID, recentLimit, 0)
	if err != nil {
		return nil, err
	}
	recentSymptoms, err := s.symptoms.ListByUser(ctx, userID, recentLimit, 0)
	if err != nil {
		return nil, err
	}
	recentImaging, err := s.imaging.ListByUser(ctx, userID, recentLimit, 0)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalReports:         totalReports,
		TotalSymptoms:        totalSymptoms,
		TotalImaging:         totalImaging,
		FavoriteDoctorsCount: favoriteCount,
		RecentReports:        recentReports,
		RecentSymptoms:       recentSymptoms,
		RecentImaging:        recentImaging,
	}, nil
}
