package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
)

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (
			id, receiver_id, topic, message, from_user, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	n.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.ReceiverID,
		n.Topic,
		n.Message,
		n.FromUser,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*model.Notification, error) {
	query := `
		SELECT id, receiver_id, topic, message, from_user, created_at
		FROM notifications
		WHERE receiver_id = $1
		ORDER BY created_at ASC
	`
	var notifications []*model.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, receiverID); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notifications WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
