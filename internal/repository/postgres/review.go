package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
)

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, doctor_id, patient_id, consultation_id, status, rating,
			comment, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.DoctorID,
		review.PatientID,
		review.ConsultationID,
		review.Status,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `
		SELECT id, doctor_id, patient_id, consultation_id, status, rating,
			   comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`
	var review model.Review
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	query := `
		UPDATE reviews
		SET status = $1, rating = $2, comment = $3, updated_at = $4
		WHERE id = $5
	`
	review.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		review.Status,
		review.Rating,
		review.Comment,
		review.UpdatedAt,
		review.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}

func (r *reviewRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*model.Review, error) {
	query := `
		SELECT id, doctor_id, patient_id, consultation_id, status, rating,
			   comment, created_at, updated_at
		FROM reviews
		WHERE doctor_id = $1 AND status = 'completed'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var reviews []*model.Review
	if err := r.db.SelectContext(ctx, &reviews, query, doctorID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, doctorID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE doctor_id = $1 AND status = 'completed'
	`
	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, doctorID); err != nil {
		return 0, fmt.Errorf("failed to get average rating: %w", err)
	}
	return avg, nil
}
