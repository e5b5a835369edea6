package doctor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tricare/tricare/internal/platform/registry"
)

// Registry is the slice of the NPI registry client the service needs.
type Registry interface {
	Search(ctx context.Context, params SearchParams) ([]registry.Provider, error)
}

// SearchParams aliases the registry's parameter type so callers outside the
// package can stub the dependency without importing it.
type SearchParams = registry.SearchParams

type Service struct {
	registry  Registry
	favorites FavoriteRepository
	log       zerolog.Logger
}

func NewService(reg Registry, favorites FavoriteRepository, log zerolog.Logger) *Service {
	return &Service{registry: reg, favorites: favorites, log: log}
}

// Search finds providers near a ZIP code. Coordinates are estimated from
// ZIP prefixes, so distances are approximate and providers in the search
// ZIP report 0 km. A search that matches nothing returns an empty list,
// never an error.
func (s *Service) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cleanZip := registry.CleanZIP(req.PostalCode)
	state := guessStateFromZIP(cleanZip)
	userLat, userLon := estimateCoordinates(cleanZip)

	s.log.Info().Str("zip", cleanZip).Str("state", state).
		Str("specialization", req.Specialization).Msg("searching npi registry")

	params := SearchParams{
		PostalCode: req.PostalCode,
		State:      state,
		// Ask for extra results so sorting by distance has options.
		Limit: min(req.Limit*2, maxLimit),
	}
	if req.Specialization != "" {
		params.TaxonomyDescription = mapToTaxonomy(req.Specialization)
	}

	providers, err := s.registry.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("registry search: %w", err)
	}

	doctors := make([]Doctor, 0, len(providers))
	for _, p := range providers {
		doctors = append(doctors, s.toDoctor(p, userLat, userLon))
	}
	sort.Slice(doctors, func(i, j int) bool {
		if doctors[i].DistanceKM != doctors[j].DistanceKM {
			return doctors[i].DistanceKM < doctors[j].DistanceKM
		}
		return doctors[i].Name < doctors[j].Name
	})
	if len(doctors) > req.Limit {
		doctors = doctors[:req.Limit]
	}

	return &SearchResponse{
		UserLocation: UserLocation{
			Latitude:   userLat,
			Longitude:  userLon,
			Address:    fmt.Sprintf("ZIP %s, %s", cleanZip, state),
			PostalCode: req.PostalCode,
		},
		SearchRadiusKM:    req.RadiusKM,
		Specialization:    req.Specialization,
		TotalDoctorsFound: len(doctors),
		Doctors:           doctors,
		ProcessedAt:       time.Now().UTC(),
	}, nil
}

func (s *Service) toDoctor(p registry.Provider, userLat, userLon float64) Doctor {
	lat, lon := estimateCoordinates(p.PostalCode)
	distance := haversine(userLat, userLon, lat, lon)

	address := p.Address1
	if p.Address2 != "" {
		address += ", " + p.Address2
	}

	clinic := p.Organization
	if clinic == "" {
		clinic = "Private Practice"
	}

	return Doctor{
		ID:              p.NPI,
		Name:            strings.TrimSpace("Dr. " + p.FirstName + " " + p.LastName),
		Specialization:  p.Taxonomy,
		Qualification:   p.Credential,
		ExperienceYears: 10,
		Rating:          4.5,
		Location: Location{
			Latitude:   lat,
			Longitude:  lon,
			Address:    address,
			City:       p.City,
			State:      p.State,
			PostalCode: p.PostalCode,
		},
		DistanceKM:     math.Round(distance*100) / 100,
		Phone:          p.Phone,
		ClinicName:     clinic,
		AvailableDays:  []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		AvailableHours: "By Appointment",
		Languages:      []string{"English"},
	}
}

// AddFavorite saves a doctor for a user. Each doctor can be saved once.
func (s *Service) AddFavorite(ctx context.Context, userID uuid.UUID, req *CreateFavoriteRequest) (*Favorite, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.favorites.GetByDoctorID(ctx, userID, req.DoctorID)
	if err != nil && !errors.Is(err, ErrFavoriteNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyFavorite
	}

	fav := &Favorite{
		UserID:         userID,
		DoctorID:       req.DoctorID,
		DoctorName:     req.DoctorName,
		Specialization: req.Specialization,
		ClinicName:     req.ClinicName,
		Phone:          req.Phone,
		Address:        req.Address,
		Notes:          req.Notes,
	}
	if err := s.favorites.Create(ctx, fav); err != nil {
		return nil, err
	}
	return s.favorites.GetByID(ctx, userID, fav.ID)
}

func (s *Service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}

// UpdateFavorite applies the non-nil fields of req to the favorite.
func (s *Service) UpdateFavorite(ctx context.Context, userID, id uuid.UUID, req *UpdateFavoriteRequest) (*Favorite, error) {
	fav, err := s.favorites.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Notes != nil {
		fav.Notes = req.Notes
	}
	if req.LastVisit != nil {
		fav.LastVisit = req.LastVisit
	}
	if req.NextAppointment != nil {
		fav.NextAppointment = req.NextAppointment
	}

	if err := s.favorites.Update(ctx, fav); err != nil {
		return nil, err
	}
	return s.favorites.GetByID(ctx, userID, id)
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, id uuid.UUID) error {
	return s.favorites.Delete(ctx, userID, id)
}
