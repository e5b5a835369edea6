package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrFavoriteNotFound = errors.New("favorite doctor not found")
	ErrAlreadyFavorite  = errors.New("doctor already in favorites")
)

// FavoriteRepository stores per-user saved doctors. All reads and writes
// are scoped to the owning user.
type FavoriteRepository interface {
	Create(ctx context.Context, fav *Favorite) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Favorite, error)
	GetByDoctorID(ctx context.Context, userID uuid.UUID, doctorID string) (*Favorite, error)
	Update(ctx context.Context, fav *Favorite) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
