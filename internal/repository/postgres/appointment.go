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

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, doctor_id, patient_id, date, start_time, end_time,
			reason, notes, type, status, meeting_link,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.DoctorID,
		apt.PatientID,
		apt.Date,
		apt.StartTime,
		apt.EndTime,
		apt.Reason,
		apt.Notes,
		apt.Type,
		apt.Status,
		apt.MeetingLink,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, date, start_time, end_time,
			   reason, notes, type, status, meeting_link,
			   created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET date = $1, start_time = $2, end_time = $3, reason = $4, notes = $5,
			status = $6, meeting_link = $7, updated_at = $8
		WHERE id = $9
	`
	apt.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		apt.Date,
		apt.StartTime,
		apt.EndTime,
		apt.Reason,
		apt.Notes,
		apt.Status,
		apt.MeetingLink,
		apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, date, start_time, end_time,
			   reason, notes, type, status, meeting_link,
			   created_at, updated_at
		FROM appointments
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.DoctorID != uuid.Nil {
		query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
		args = append(args, filters.DoctorID)
		argCount++
	}

	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if !filters.From.IsZero() {
		query += fmt.Sprintf(" AND date >= $%d", argCount)
		args = append(args, filters.From)
		argCount++
	}

	if !filters.To.IsZero() {
		query += fmt.Sprintf(" AND date <= $%d", argCount)
		args = append(args, filters.To)
		argCount++
	}

	query += " ORDER BY date ASC, start_time ASC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filters.Limit)
		argCount++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filters.Offset)
	}

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) GetLatestAccepted(ctx context.Context, doctorID, patientID uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, date, start_time, end_time,
			   reason, notes, type, status, meeting_link,
			   created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1 AND patient_id = $2 AND status = 'accepted'
		ORDER BY date DESC
		LIMIT 1
	`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, doctorID, patientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest accepted appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) ListAcceptedBefore(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, date, start_time, end_time,
			   reason, notes, type, status, meeting_link,
			   created_at, updated_at
		FROM appointments
		WHERE status = 'accepted' AND date < $1
		ORDER BY date ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, date); err != nil {
		return nil, fmt.Errorf("failed to list accepted appointments: %w", err)
	}
	return appointments, nil
}
