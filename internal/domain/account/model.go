// Package account manages user registration, authentication, and profiles.
package account

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered account with optional profile and medical details
// used to pre-fill symptom analysis context.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	FullName       *string   `json:"full_name,omitempty"`

	Age        *int    `json:"age,omitempty"`
	Sex        *string `json:"sex,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`

	BloodType          *string  `json:"blood_type,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	ChronicConditions  []string `json:"chronic_conditions,omitempty"`
	CurrentMedications []string `json:"current_medications,omitempty"`
	EmergencyContact   *string  `json:"emergency_contact,omitempty"`

	IsActive   bool `json:"is_active"`
	IsVerified bool `json:"is_verified"`

	ResetToken        *string    `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type RegisterRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email address")
	}
	if len(strings.TrimSpace(r.Username)) < 3 {
		return fmt.Errorf("username must be at least 3 characters")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest carries optional profile fields; nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	FullName           *string  `json:"full_name,omitempty"`
	Age                *int     `json:"age,omitempty"`
	Sex                *string  `json:"sex,omitempty"`
	Phone              *string  `json:"phone,omitempty"`
	PostalCode         *string  `json:"postal_code,omitempty"`
	BloodType          *string  `json:"blood_type,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	ChronicConditions  []string `json:"chronic_conditions,omitempty"`
	CurrentMedications []string `json:"current_medications,omitempty"`
	EmergencyContact   *string  `json:"emergency_contact,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Age != nil && (*r.Age < 0 || *r.Age > 120) {
		return fmt.Errorf("age must be between 0 and 120")
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
