package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
)

func (r *appointmentRequestRepository) Create(ctx context.Context, req *model.AppointmentRequest) error {
	query := `
		INSERT INTO appointment_requests (
			id, patient_id, slot_id, reason, notes, type, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.PatientID,
		req.SlotID,
		req.Reason,
		req.Notes,
		req.Type,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment request: %w", err)
	}
	return nil
}

func (r *appointmentRequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentRequest, error) {
	query := `
		SELECT id, patient_id, slot_id, reason, notes, type, status,
			   created_at, updated_at
		FROM appointment_requests
		WHERE id = $1
	`
	var req model.AppointmentRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment request: %w", err)
	}
	return &req, nil
}

func (r *appointmentRequestRepository) Update(ctx context.Context, req *model.AppointmentRequest) error {
	query := `
		UPDATE appointment_requests
		SET slot_id = $1, reason = $2, notes = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	req.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		req.SlotID,
		req.Reason,
		req.Notes,
		req.Status,
		req.UpdatedAt,
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment request not found")
	}
	return nil
}

func (r *appointmentRequestRepository) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]*model.AppointmentRequest, error) {
	query := `
		SELECT id, patient_id, slot_id, reason, notes, type, status,
			   created_at, updated_at
		FROM appointment_requests
		WHERE slot_id = $1
		ORDER BY created_at ASC
	`
	var requests []*model.AppointmentRequest
	if err := r.db.SelectContext(ctx, &requests, query, slotID); err != nil {
		return nil, fmt.Errorf("failed to list requests by slot: %w", err)
	}
	return requests, nil
}

func (r *appointmentRequestRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentRequest, error) {
	query := `
		SELECT r.id, r.patient_id, r.slot_id, r.reason, r.notes, r.type,
			   r.status, r.created_at, r.updated_at
		FROM appointment_requests r
		JOIN appointment_slots s ON s.id = r.slot_id
		WHERE r.patient_id = $1
		ORDER BY s.date ASC, s.start_time ASC
	`
	var requests []*model.AppointmentRequest
	if err := r.db.SelectContext(ctx, &requests, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list requests by patient: %w", err)
	}
	return requests, nil
}
