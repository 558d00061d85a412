package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/zomujo/telemed-api/internal/model"
)

func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, reference, amount, currency, patient_id, doctor_id, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.Reference,
		tx.Amount,
		tx.Currency,
		tx.PatientID,
		tx.DoctorID,
		tx.Status,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*model.Transaction, error) {
	query := `
		SELECT id, reference, amount, currency, patient_id, doctor_id, status,
			   created_at, updated_at
		FROM transactions
		WHERE reference = $1
	`
	var tx model.Transaction
	if err := r.db.GetContext(ctx, &tx, query, reference); err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *model.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	tx.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, tx.Status, tx.UpdatedAt, tx.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}
