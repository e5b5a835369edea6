// Package doctor provides location-based physician search backed by the
// NPPES NPI Registry, plus per-user saved doctors.
package doctor

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultRadiusKM = 10.0
	defaultLimit    = 50
	maxRadiusKM     = 50.0
	maxLimit        = 200
)

// SearchRequest is the body of a doctor search.
type SearchRequest struct {
	PostalCode     string  `json:"pincode"`
	Specialization string  `json:"specialization,omitempty"`
	RadiusKM       float64 `json:"radius_km,omitempty"`
	Limit          int     `json:"limit,omitempty"`
}

// Validate checks field bounds and applies defaults in place.
func (r *SearchRequest) Validate() error {
	r.PostalCode = strings.TrimSpace(r.PostalCode)
	if len(r.PostalCode) < 5 || len(r.PostalCode) > 10 {
		return fmt.Errorf("pincode must be 5 to 10 characters")
	}
	if r.RadiusKM == 0 {
		r.RadiusKM = defaultRadiusKM
	}
	if r.RadiusKM < 1.0 || r.RadiusKM > maxRadiusKM {
		return fmt.Errorf("radius_km must be between 1 and %v", maxRadiusKM)
	}
	if r.Limit == 0 {
		r.Limit = defaultLimit
	}
	if r.Limit < 1 || r.Limit > maxLimit {
		return fmt.Errorf("limit must be between 1 and %d", maxLimit)
	}
	return nil
}

// Location is a doctor's practice location. Coordinates are estimated from
// the ZIP code prefix; the registry does not publish exact coordinates.
type Location struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"pincode"`
}

// Doctor is one normalized search result.
type Doctor struct {
	ID              string   `json:"id"` // NPI number
	Name            string   `json:"name"`
	Specialization  string   `json:"specialization"`
	Qualification   string   `json:"qualification"`
	ExperienceYears int      `json:"experience_years"`
	Rating          float64  `json:"rating"`
	Location        Location `json:"location"`
	DistanceKM      float64  `json:"distance_km"`
	Phone           string   `json:"phone"`
	Email           *string  `json:"email"`
	ClinicName      string   `json:"clinic_name"`
	ConsultationFee *float64 `json:"consultation_fee"`
	AvailableDays   []string `json:"available_days"`
	AvailableHours  string   `json:"available_hours"`
	Languages       []string `json:"languages"`
}

// UserLocation describes where the search was anchored.
type UserLocation struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    string  `json:"address"`
	PostalCode string  `json:"pincode"`
}

type SearchResponse struct {
	UserLocation      UserLocation `json:"user_location"`
	SearchRadiusKM    float64      `json:"search_radius_km"`
	Specialization    string       `json:"specialization,omitempty"`
	TotalDoctorsFound int          `json:"total_doctors_found"`
	Doctors           []Doctor     `json:"doctors"`
	ProcessedAt       time.Time    `json:"processed_at"`
}

// Specializations is the static catalogue offered to clients.
var Specializations = []string{
	"Cardiologist",
	"Neurologist",
	"Orthopedic",
	"Dermatologist",
	"Gastroenterologist",
	"Pulmonologist",
	"Endocrinologist",
	"General Physician",
	"Pediatrician",
	"Gynecologist",
	"Psychiatrist",
	"ENT Specialist",
	"Ophthalmologist",
	"Urologist",
	"Nephrologist",
}

// Favorite is a doctor saved by a user.
type Favorite struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	DoctorID        string     `json:"doctor_id"`
	DoctorName      string     `json:"doctor_name"`
	Specialization  string     `json:"specialization"`
	ClinicName      *string    `json:"clinic_name"`
	Phone           *string    `json:"phone"`
	Address         *string    `json:"address"`
	Notes           *string    `json:"notes"`
	LastVisit       *time.Time `json:"last_visit"`
	NextAppointment *time.Time `json:"next_appointment"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// CreateFavoriteRequest adds a doctor to the caller's favorites.
type CreateFavoriteRequest struct {
	DoctorID       string  `json:"doctor_id"`
	DoctorName     string  `json:"doctor_name"`
	Specialization string  `json:"specialization"`
	ClinicName     *string `json:"clinic_name"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	Notes          *string `json:"notes"`
}

func (r *CreateFavoriteRequest) Validate() error {
	if strings.TrimSpace(r.DoctorID) == "" {
		return fmt.Errorf("doctor_id is required")
	}
	if strings.TrimSpace(r.DoctorName) == "" {
		return fmt.Errorf("doctor_name is required")
	}
	if strings.TrimSpace(r.Specialization) == "" {
		return fmt.Errorf("specialization is required")
	}
	return nil
}

// UpdateFavoriteRequest updates notes and visit scheduling. Nil fields are
// left unchanged.
type UpdateFavoriteRequest struct {
	Notes           *string    `json:"notes"`
	LastVisit       *time.Time `json:"last_visit"`
	NextAppointment *time.Time `json:"next_appointment"`
}
