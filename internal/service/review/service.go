package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/errors"
)

type Service struct {
	reviews repository.ReviewRepository
	users   repository.UserRepository
	logger  zerolog.Logger
}

func NewService(reviews repository.ReviewRepository, users repository.UserRepository, logger zerolog.Logger) *Service {
	return &Service{reviews: reviews, users: users, logger: logger}
}

// Submit fills in a pending review, or skips it. A completed submission
// refreshes the doctor's stored average rating.
func (s *Service) Submit(ctx context.Context, patientID, reviewID uuid.UUID, req *model.SubmitReviewRequest) (*model.Review, error) {
	review, err := s.reviews.Get(ctx, reviewID)
	if err != nil {
		return nil, errors.NotFound("review", err)
	}
	if review.PatientID != patientID {
		return nil, errors.Unauthorized("review does not belong to you", nil)
	}
	if review.Status != model.ReviewStatusPending {
		return nil, errors.Conflict("review already submitted", nil)
	}

	if req.Skip {
		review.Status = model.ReviewStatusSkipped
	} else {
		if req.Rating < 1 || req.Rating > 5 {
			return nil, errors.BadRequest("rating must be between 1 and 5", nil)
		}
		review.Status = model.ReviewStatusCompleted
		review.Rating = req.Rating
		review.Comment = req.Comment
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	if review.Status == model.ReviewStatusCompleted {
		s.refreshRating(ctx, review.DoctorID)
	}

	return review, nil
}

// ListForDoctor returns the doctor's completed reviews.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*model.Review, error) {
	reviews, err := s.reviews.ListByDoctor(ctx, doctorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *Service) refreshRating(ctx context.Context, doctorID uuid.UUID) {
	avg, err := s.reviews.AverageRating(ctx, doctorID)
	if err != nil {
		s.logger.Error().Err(err).Str("doctor_id", doctorID.String()).Msg("failed to compute average rating")
		return
	}
	if err := s.users.UpdateDoctorRating(ctx, doctorID, avg); err != nil {
		s.logger.Error().Err(err).Str("doctor_id", doctorID.String()).Msg("failed to store doctor rating")
	}
}
