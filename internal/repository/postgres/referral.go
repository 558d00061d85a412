package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
)

func (r *referralRepository) Create(ctx context.Context, referral *model.Referral) error {
	query := `
		INSERT INTO referrals (
			id, doctor_id, referred_doctor_id, patient_id, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	referral.CreatedAt = time.Now()
	referral.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		referral.ID,
		referral.DoctorID,
		referral.ReferredDoctorID,
		referral.PatientID,
		referral.Status,
		referral.CreatedAt,
		referral.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

func (r *referralRepository) Get(ctx context.Context, id uuid.UUID) (*model.Referral, error) {
	query := `
		SELECT id, doctor_id, referred_doctor_id, patient_id, status,
			   created_at, updated_at
		FROM referrals
		WHERE id = $1
	`
	var referral model.Referral
	if err := r.db.GetContext(ctx, &referral, query, id); err != nil {
		return nil, fmt.Errorf("failed to get referral: %w", err)
	}
	return &referral, nil
}

func (r *referralRepository) Update(ctx context.Context, referral *model.Referral) error {
	query := `
		UPDATE referrals
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	referral.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, referral.Status, referral.UpdatedAt, referral.ID)
	if err != nil {
		return fmt.Errorf("failed to update referral: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("referral not found")
	}
	return nil
}

func (r *referralRepository) ListByReferrer(ctx context.Context, doctorID uuid.UUID, status model.ReferralStatus) ([]*model.Referral, error) {
	return r.list(ctx, "doctor_id", doctorID, status)
}

func (r *referralRepository) ListByReferred(ctx context.Context, doctorID uuid.UUID, status model.ReferralStatus) ([]*model.Referral, error) {
	return r.list(ctx, "referred_doctor_id", doctorID, status)
}

func (r *referralRepository) list(ctx context.Context, column string, doctorID uuid.UUID, status model.ReferralStatus) ([]*model.Referral, error) {
	query := fmt.Sprintf(`
		SELECT id, doctor_id, referred_doctor_id, patient_id, status,
			   created_at, updated_at
		FROM referrals
		WHERE %s = $1
	`, column)
	args := []interface{}{doctorID}

	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}

	query += " ORDER BY created_at DESC"

	var referrals []*model.Referral
	if err := r.db.SelectContext(ctx, &referrals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	return referrals, nil
}
