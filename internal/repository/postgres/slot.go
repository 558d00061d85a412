package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
)

func (r *slotRepository) Create(ctx context.Context, slot *model.AppointmentSlot) error {
	query := `
		INSERT INTO appointment_slots (
			id, doctor_id, date, start_time, end_time, type, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.DoctorID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Type,
		slot.Status,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

func (r *slotRepository) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error) {
	query := `
		SELECT id, doctor_id, date, start_time, end_time, type, status,
			   created_at, updated_at
		FROM appointment_slots
		WHERE id = $1
	`
	var slot model.AppointmentSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

func (r *slotRepository) Update(ctx context.Context, slot *model.AppointmentSlot) error {
	query := `
		UPDATE appointment_slots
		SET date = $1, start_time = $2, end_time = $3, type = $4, status = $5,
			updated_at = $6
		WHERE id = $7
	`
	slot.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Type,
		slot.Status,
		slot.UpdatedAt,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("slot not found")
	}
	return nil
}

func (r *slotRepository) ListAvailable(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error) {
	query := `
		SELECT id, doctor_id, date, start_time, end_time, type, status,
			   created_at, updated_at
		FROM appointment_slots
		WHERE doctor_id = $1
		AND status = 'available'
		AND date >= $2
		AND date <= $3
		ORDER BY date ASC, start_time ASC
	`
	var slots []*model.AppointmentSlot
	if err := r.db.SelectContext(ctx, &slots, query, doctorID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}
	return slots, nil
}

func (r *slotRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, date *time.Time) ([]*model.AppointmentSlot, error) {
	query := `
		SELECT id, doctor_id, date, start_time, end_time, type, status,
			   created_at, updated_at
		FROM appointment_slots
		WHERE doctor_id = $1
	`
	args := []interface{}{doctorID}

	if date != nil {
		query += " AND date = $2"
		args = append(args, *date)
	}

	query += " ORDER BY date ASC, start_time ASC"

	var slots []*model.AppointmentSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}
