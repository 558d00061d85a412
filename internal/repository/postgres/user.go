package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
)

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, role, email, password_hash, first_name, last_name,
			phone, profile_picture, status, email_verified, verification_code,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Role,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.ProfilePicture,
		user.Status,
		user.EmailVerified,
		user.VerificationCode,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, role, email, password_hash, first_name, last_name,
			   phone, profile_picture, status, email_verified, verification_code,
			   last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, role, email, password_hash, first_name, last_name,
			   phone, profile_picture, status, email_verified, verification_code,
			   last_login_at, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, first_name = $3, last_name = $4,
			phone = $5, profile_picture = $6, status = $7, email_verified = $8,
			verification_code = $9, last_login_at = $10, updated_at = $11
		WHERE id = $12
	`
	user.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.ProfilePicture,
		user.Status,
		user.EmailVerified,
		user.VerificationCode,
		user.LastLoginAt,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

func (r *userRepository) CreateDoctorProfile(ctx context.Context, profile *model.DoctorProfile) error {
	query := `
		INSERT INTO doctor_profiles (
			user_id, specialty, bio, rate, rating, verified, no_of_consults,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.Specialty,
		profile.Bio,
		profile.Rate,
		profile.Rating,
		profile.Verified,
		profile.NoOfConsults,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor profile: %w", err)
	}
	return nil
}

func (r *userRepository) GetDoctorProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	query := `
		SELECT user_id, specialty, bio, rate, rating, verified, no_of_consults,
			   created_at, updated_at
		FROM doctor_profiles
		WHERE user_id = $1
	`
	var profile model.DoctorProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}
	return &profile, nil
}

func (r *userRepository) UpdateDoctorRating(ctx context.Context, doctorID uuid.UUID, rating float64) error {
	query := `
		UPDATE doctor_profiles
		SET rating = $1, updated_at = $2
		WHERE user_id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, rating, time.Now(), doctorID); err != nil {
		return fmt.Errorf("failed to update doctor rating: %w", err)
	}
	return nil
}

func (r *userRepository) SearchDoctors(ctx context.Context, filters *model.DoctorSearchFilters) ([]*model.Doctor, error) {
	query := `
		SELECT u.id, u.role, u.email, u.password_hash, u.first_name, u.last_name,
			   u.phone, u.profile_picture, u.status, u.email_verified, u.last_login_at,
			   u.created_at, u.updated_at,
			   p.specialty, p.rate, p.rating
		FROM users u
		JOIN doctor_profiles p ON p.user_id = u.id
		WHERE u.role = 'doctor' AND u.status = 'active'
	`
	args := []interface{}{}
	argCount := 1

	if filters.Query != "" {
		query += fmt.Sprintf(" AND (u.first_name ILIKE $%d OR u.last_name ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+filters.Query+"%")
		argCount++
	}

	if filters.Specialty != "" {
		query += fmt.Sprintf(" AND p.specialty = $%d", argCount)
		args = append(args, filters.Specialty)
		argCount++
	}

	query += " ORDER BY p.rating DESC, u.last_name ASC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filters.Limit)
		argCount++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filters.Offset)
	}

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	return doctors, nil
}

// AddPatientToRoster appends without checking for an existing row; repeated
// acceptances insert duplicates.
func (r *userRepository) AddPatientToRoster(ctx context.Context, doctorID, patientID uuid.UUID) error {
	query := `
		INSERT INTO doctor_patients (doctor_id, patient_id, created_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, doctorID, patientID, time.Now()); err != nil {
		return fmt.Errorf("failed to add patient to roster: %w", err)
	}
	return nil
}

func (r *userRepository) ListRoster(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*model.User, error) {
	query := `
		SELECT DISTINCT u.id, u.role, u.email, u.password_hash, u.first_name,
			   u.last_name, u.phone, u.profile_picture, u.status,
			   u.email_verified, u.last_login_at, u.created_at, u.updated_at
		FROM users u
		JOIN doctor_patients dp ON dp.patient_id = u.id
		WHERE dp.doctor_id = $1
		ORDER BY u.last_name ASC
		LIMIT $2 OFFSET $3
	`
	var patients []*model.User
	if err := r.db.SelectContext(ctx, &patients, query, doctorID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return patients, nil
}

func (r *userRepository) Counts(ctx context.Context) (*model.AnalyticsCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'patient') AS patients,
			(SELECT COUNT(*) FROM users WHERE role = 'doctor') AS doctors,
			(SELECT COUNT(*) FROM appointments) AS appointments,
			(SELECT COUNT(*) FROM consultation_records) AS consultations,
			(SELECT COUNT(*) FROM issues WHERE status = 'open') AS open_issues
	`
	var counts model.AnalyticsCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to get analytics counts: %w", err)
	}
	return &counts, nil
}
