package account

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/internal/storage"
	"github.com/zomujo/telemed-api/pkg/errors"
)

type Service struct {
	users   repository.UserRepository
	storage storage.Service
	logger  zerolog.Logger
}

func NewService(users repository.UserRepository, store storage.Service, logger zerolog.Logger) *Service {
	return &Service{users: users, storage: store, logger: logger}
}

// Get returns the caller's own account.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("user", err)
	}
	return user, nil
}

// UpdateProfilePicture uploads the image and stores its URL on the account.
// A previous picture is deleted from the object store best effort.
func (s *Service) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader, filename string) (*model.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("user", err)
	}

	url, err := s.storage.Upload(ctx, file, "profile-pictures", fmt.Sprintf("%s-%s", userID, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	if user.ProfilePicture != "" {
		if err := s.storage.Delete(ctx, user.ProfilePicture); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to delete old profile picture")
		}
	}

	user.ProfilePicture = url
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
