package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
)

func (r *referenceRepository) CreateSymptom(ctx context.Context, s *model.Symptom) error {
	query := `
		INSERT INTO symptoms (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create symptom: %w", err)
	}
	return nil
}

func (r *referenceRepository) ListSymptoms(ctx context.Context) ([]*model.Symptom, error) {
	query := `SELECT id, name, created_at, updated_at FROM symptoms ORDER BY name ASC`

	var symptoms []*model.Symptom
	if err := r.db.SelectContext(ctx, &symptoms, query); err != nil {
		return nil, fmt.Errorf("failed to list symptoms: %w", err)
	}
	return symptoms, nil
}

func (r *referenceRepository) DeleteSymptom(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "symptoms", id)
}

func (r *referenceRepository) CreateMedicine(ctx context.Context, m *model.Medicine) error {
	query := `
		INSERT INTO medicines (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Description, m.CreatedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}
	return nil
}

func (r *referenceRepository) ListMedicines(ctx context.Context) ([]*model.Medicine, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM medicines ORDER BY name ASC`

	var medicines []*model.Medicine
	if err := r.db.SelectContext(ctx, &medicines, query); err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

func (r *referenceRepository) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "medicines", id)
}

func (r *referenceRepository) CreateICDCode(ctx context.Context, c *model.ICDCode) error {
	query := `
		INSERT INTO icd_codes (id, code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Code, c.Description, c.CreatedAt, c.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create ICD code: %w", err)
	}
	return nil
}

func (r *referenceRepository) ListICDCodes(ctx context.Context) ([]*model.ICDCode, error) {
	query := `SELECT id, code, description, created_at, updated_at FROM icd_codes ORDER BY code ASC`

	var codes []*model.ICDCode
	if err := r.db.SelectContext(ctx, &codes, query); err != nil {
		return nil, fmt.Errorf("failed to list ICD codes: %w", err)
	}
	return codes, nil
}

func (r *referenceRepository) DeleteICDCode(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "icd_codes", id)
}

func (r *referenceRepository) CreateIssue(ctx context.Context, issue *model.Issue) error {
	query := `
		INSERT INTO issues (id, reporter_id, subject, body, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	issue.CreatedAt = time.Now()
	issue.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		issue.ID,
		issue.ReporterID,
		issue.Subject,
		issue.Body,
		issue.Status,
		issue.CreatedAt,
		issue.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}
	return nil
}

func (r *referenceRepository) ListIssues(ctx context.Context, status model.IssueStatus) ([]*model.Issue, error) {
	query := `
		SELECT id, reporter_id, subject, body, status, created_at, updated_at
		FROM issues
	`
	args := []interface{}{}

	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}

	query += " ORDER BY created_at DESC"

	var issues []*model.Issue
	if err := r.db.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return issues, nil
}

func (r *referenceRepository) UpdateIssue(ctx context.Context, issue *model.Issue) error {
	query := `
		UPDATE issues
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	issue.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, issue.Status, issue.UpdatedAt, issue.ID)
	if err != nil {
		return fmt.Errorf("failed to update issue: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("issue not found")
	}
	return nil
}

func (r *referenceRepository) deleteByID(ctx context.Context, table string, id uuid.UUID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("record not found")
	}
	return nil
}
