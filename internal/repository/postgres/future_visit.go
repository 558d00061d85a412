package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/zomujo/telemed-api/internal/model"
)

func (r *futureVisitRepository) Create(ctx context.Context, visit *model.FutureVisit) error {
	query := `
		INSERT INTO future_visits (
			id, consultation_id, patient_id, message, send_message_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	visit.CreatedAt = time.Now()
	visit.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		visit.ID,
		visit.ConsultationID,
		visit.PatientID,
		visit.Message,
		visit.SendMessageAt,
		visit.CreatedAt,
		visit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create future visit: %w", err)
	}
	return nil
}

func (r *futureVisitRepository) ListDueOn(ctx context.Context, day time.Time) ([]*model.FutureVisit, error) {
	query := `
		SELECT id, consultation_id, patient_id, message, send_message_at,
			   created_at, updated_at
		FROM future_visits
		WHERE send_message_at >= $1 AND send_message_at < $2
		ORDER BY send_message_at ASC
	`
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var visits []*model.FutureVisit
	if err := r.db.SelectContext(ctx, &visits, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to list future visits: %w", err)
	}
	return visits, nil
}
