package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/errors"
)

const searchCacheTTL = 60 * time.Second

type Service struct {
	users   repository.UserRepository
	reviews repository.ReviewRepository
	cache   *cache.Cache
}

func NewService(users repository.UserRepository, reviews repository.ReviewRepository) *Service {
	return &Service{
		users:   users,
		reviews: reviews,
		cache:   cache.New(searchCacheTTL, 5*time.Minute),
	}
}

// Search finds doctors by name or specialty. Result pages are cached briefly
// since the same searches repeat while patients browse.
func (s *Service) Search(ctx context.Context, filters *model.DoctorSearchFilters) ([]*model.Doctor, error) {
	key := fmt.Sprintf("search:%s:%s:%d:%d", filters.Query, filters.Specialty, filters.Limit, filters.Offset)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.users.SearchDoctors(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}

	s.cache.Set(key, doctors, cache.DefaultExpiration)
	return doctors, nil
}

// GetProfile returns the doctor's user record and clinical profile.
func (s *Service) GetProfile(ctx context.Context, doctorID uuid.UUID) (*model.User, *model.DoctorProfile, error) {
	user, err := s.users.Get(ctx, doctorID)
	if err != nil {
		return nil, nil, errors.NotFound("doctor", err)
	}
	if user.Role != model.RoleDoctor {
		return nil, nil, errors.NotFound("doctor", nil)
	}

	profile, err := s.users.GetDoctorProfile(ctx, doctorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}
	return user, profile, nil
}

// ListRoster returns the doctor's patients.
func (s *Service) ListRoster(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*model.User, error) {
	patients, err := s.users.ListRoster(ctx, doctorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return patients, nil
}

// RefreshRating recomputes and stores the doctor's average review rating.
func (s *Service) RefreshRating(ctx context.Context, doctorID uuid.UUID) error {
	avg, err := s.reviews.AverageRating(ctx, doctorID)
	if err != nil {
		return fmt.Errorf("failed to compute average rating: %w", err)
	}
	if err := s.users.UpdateDoctorRating(ctx, doctorID, avg); err != nil {
		return fmt.Errorf("failed to update doctor rating: %w", err)
	}
	return nil
}
