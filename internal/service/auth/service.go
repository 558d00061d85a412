package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zomujo/telemed-api/internal/email"
	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/errors"
	"github.com/zomujo/telemed-api/pkg/security"
	"github.com/zomujo/telemed-api/pkg/token"
)

type Service struct {
	users  repository.UserRepository
	tokens *token.Service
	hasher security.PasswordHasher
	email  email.Service
	logger zerolog.Logger
}

func NewService(
	users repository.UserRepository,
	tokens *token.Service,
	hasher security.PasswordHasher,
	mail email.Service,
	logger zerolog.Logger,
) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		email:  mail,
		logger: logger,
	}
}

// Register creates an account with the given role. Doctors additionally get
// an empty, unverified clinical profile. The verification email is
// fire-and-forget.
func (s *Service) Register(ctx context.Context, role model.Role, req *model.RegisterRequest) (*model.TokenResponse, error) {
	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.Conflict("email already registered", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Base:             model.Base{ID: uuid.New()},
		Role:             role,
		Email:            req.Email,
		PasswordHash:     hash,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Status:           model.UserStatusPending,
		VerificationCode: uuid.New().String()[:8],
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if role == model.RoleDoctor {
		profile := &model.DoctorProfile{
			UserID:    user.ID,
			Specialty: req.Specialty,
		}
		if err := s.users.CreateDoctorProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create doctor profile: %w", err)
		}
	}

	addr, code := user.Email, user.VerificationCode
	go func() {
		if err := s.email.SendVerification(context.Background(), addr, code); err != nil {
			s.logger.Error().Err(err).Str("email", addr).Msg("failed to send verification email")
		}
	}()

	return s.issueTokens(user)
}

// VerifyEmail activates a pending account when the emailed code matches.
// Already-verified accounts are left alone.
func (s *Service) VerifyEmail(ctx context.Context, req *model.VerifyEmailRequest) error {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return errors.NotFound("account", err)
	}
	if user.EmailVerified {
		return nil
	}
	if user.VerificationCode == "" || user.VerificationCode != req.Code {
		return errors.BadRequest("invalid verification code", nil)
	}

	user.EmailVerified = true
	user.VerificationCode = ""
	if user.Status == model.UserStatusPending {
		user.Status = model.UserStatusActive
	}
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}
	return nil
}

// Login checks credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.Unauthorized("invalid credentials", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, errors.Unauthorized("invalid credentials", err)
	}

	if user.Status == model.UserStatusDisabled {
		return nil, errors.Unauthorized("account disabled", nil)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update login timestamp: %w", err)
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Unauthorized("invalid refresh token", err)
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Unauthorized("invalid refresh token", err)
	}
	if user.Status == model.UserStatusDisabled {
		return nil, errors.Unauthorized("account disabled", nil)
	}

	return s.issueTokens(user)
}

func (s *Service) issueTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
