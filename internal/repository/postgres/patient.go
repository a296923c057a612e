package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
)

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

func (r *patientRepository) Upsert(ctx context.Context, profile *model.PatientProfile) error {
	query := `
		INSERT INTO patients (
			id, user_id, name, email, phone_no, age, gender, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone_no = EXCLUDED.phone_no,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			updated_at = EXCLUDED.updated_at
	`

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
		profile.CreatedAt = time.Now()
	}
	profile.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Name,
		profile.Email,
		profile.PhoneNo,
		profile.Age,
		profile.Gender,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert patient profile: %w", err)
	}
	return nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	query := `
		SELECT id, user_id, name, email, phone_no, age, gender, profile_img,
		       created_at, updated_at
		FROM patients
		WHERE user_id = $1
	`

	var profile model.PatientProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, translateNotFound(err)
	}
	return &profile, nil
}

func (r *patientRepository) UpdateImage(ctx context.Context, userID uuid.UUID, imageURL string) error {
	query := `UPDATE patients SET profile_img = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, imageURL, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update patient image: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *patientRepository) PublicList(ctx context.Context) ([]*model.RoleListing, error) {
	query := `
		SELECT patients.name, patients.age, patients.gender
		FROM users
		LEFT JOIN patients ON users.id = patients.user_id
		WHERE users.role = 'patient'
		ORDER BY users.created_at ASC
	`

	var listings []*model.RoleListing
	if err := r.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return listings, nil
}
