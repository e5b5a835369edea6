package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tricare/tricare/internal/platform/auth"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenTTL = time.Hour

type Service struct {
	users  UserRepository
	issuer *auth.Issuer
	log    zerolog.Logger
}

func NewService(users UserRepository, issuer *auth.Issuer, log zerolog.Logger) *Service {
	return &Service{users: users, issuer: issuer, log: log}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hashed,
		FullName:       req.FullName,
		IsActive:       true,
		IsVerified:     false,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", u.ID.String()).Msg("user registered")
	return u, nil
}

// Login verifies credentials and issues a token pair. The same error covers
// unknown email and wrong password so an attacker learns neither.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*auth.TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(req.Password, u.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountInactive
	}

	if err := s.users.UpdateLastLogin(ctx, u.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("failed to update last login")
	}

	return s.issuer.IssuePair(u.ID, u.Email)
}

// Refresh exchanges a valid refresh token for a fresh pair. The user must
// still exist and be active.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.issuer.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil || !u.IsActive {
		return nil, auth.ErrTokenInvalid
	}

	return s.issuer.IssuePair(u.ID, u.Email)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		u.FullName = req.FullName
	}
	if req.Age != nil {
		u.Age = req.Age
	}
	if req.Sex != nil {
		u.Sex = req.Sex
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.PostalCode != nil {
		u.PostalCode = req.PostalCode
	}
	if req.BloodType != nil {
		u.BloodType = req.BloodType
	}
	if req.Allergies != nil {
		u.Allergies = req.Allergies
	}
	if req.ChronicConditions != nil {
		u.ChronicConditions = req.ChronicConditions
	}
	if req.CurrentMedications != nil {
		u.CurrentMedications = req.CurrentMedications
	}
	if req.EmergencyContact != nil {
		u.EmergencyContact = req.EmergencyContact
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Deactivate soft-deletes the account; historical records are retained.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.IsActive = false
	return s.users.Update(ctx, u)
}

// ForgotPassword issues a one-hour reset token. It returns the token for
// delivery (email in production, response body in development) and an empty
// string when the email is unknown, without revealing which.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	token, err := generateResetToken()
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(resetTokenTTL)
	u.ResetToken = &token
	u.ResetTokenExpires = &expires

	if err := s.users.Update(ctx, u); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	u, err := s.users.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.HashedPassword = hashed
	u.ResetToken = nil
	u.ResetTokenExpires = nil

	return s.users.Update(ctx, u)
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(req.CurrentPassword, u.HashedPassword) {
		return ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.HashedPassword = hashed

	return s.users.Update(ctx, u)
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
