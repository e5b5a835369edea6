package history

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("history record not found")

// ReportRepository stores report history rows. Reads and deletes are scoped
// to the owning user.
type ReportRepository interface {
	Create(ctx context.Context, rec *ReportRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]ReportRecord, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*ReportRecord, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type SymptomRepository interface {
	Create(ctx context.Context, rec *SymptomRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]SymptomRecord, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*SymptomRecord, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type ImagingRepository interface {
	Create(ctx context.Context, rec *ImagingRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]ImagingRecord, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*ImagingRecord, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
