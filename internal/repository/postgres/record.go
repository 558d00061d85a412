package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
)

func (r *recordRepository) Create(ctx context.Context, record *model.ConsultationRecord) error {
	query := `
		INSERT INTO consultation_records (
			id, doctor_id, patient_id, status, current_step, complaints,
			notes, reason_ended, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.DoctorID,
		record.PatientID,
		record.Status,
		record.CurrentStep,
		record.Complaints,
		record.Notes,
		record.ReasonEnded,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create consultation record: %w", err)
	}
	return nil
}

func (r *recordRepository) Get(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
	query := `
		SELECT id, doctor_id, patient_id, status, current_step, complaints,
			   notes, reason_ended, created_at, updated_at
		FROM consultation_records
		WHERE id = $1
	`
	var record model.ConsultationRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, fmt.Errorf("failed to get consultation record: %w", err)
	}
	return &record, nil
}

func (r *recordRepository) Update(ctx context.Context, record *model.ConsultationRecord) error {
	query := `
		UPDATE consultation_records
		SET status = $1, current_step = $2, complaints = $3, notes = $4,
			reason_ended = $5, updated_at = $6
		WHERE id = $7
	`
	record.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		record.Status,
		record.CurrentStep,
		record.Complaints,
		record.Notes,
		record.ReasonEnded,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update consultation record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("consultation record not found")
	}
	return nil
}

func (r *recordRepository) GetActiveByDoctor(ctx context.Context, doctorID uuid.UUID) (*model.ConsultationRecord, error) {
	query := `
		SELECT id, doctor_id, patient_id, status, current_step, complaints,
			   notes, reason_ended, created_at, updated_at
		FROM consultation_records
		WHERE doctor_id = $1 AND status = 'active'
		LIMIT 1
	`
	var record model.ConsultationRecord
	if err := r.db.GetContext(ctx, &record, query, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active consultation: %w", err)
	}
	return &record, nil
}

func (r *recordRepository) ListActive(ctx context.Context) ([]*model.ConsultationRecord, error) {
	query := `
		SELECT id, doctor_id, patient_id, status, current_step, complaints,
			   notes, reason_ended, created_at, updated_at
		FROM consultation_records
		WHERE status = 'active'
		ORDER BY created_at ASC
	`
	var records []*model.ConsultationRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list active consultations: %w", err)
	}
	return records, nil
}

func (r *recordRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*model.ConsultationRecord, error) {
	query := `
		SELECT id, doctor_id, patient_id, status, current_step, complaints,
			   notes, reason_ended, created_at, updated_at
		FROM consultation_records
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var records []*model.ConsultationRecord
	if err := r.db.SelectContext(ctx, &records, query, patientID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list consultations by patient: %w", err)
	}
	return records, nil
}
