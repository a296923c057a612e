package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
)

func NewDoctorRepository(base BaseRepository) repository.DoctorRepository {
	return &doctorRepository{base}
}

func (r *doctorRepository) Upsert(ctx context.Context, profile *model.DoctorProfile) error {
	query := `
		INSERT INTO doctors (
			id, user_id, name, email, phone_no, specialization, age, gender,
			work_at, experience, address, work_start_hour, work_end_hour,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone_no = EXCLUDED.phone_no,
			specialization = EXCLUDED.specialization,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			work_at = EXCLUDED.work_at,
			experience = EXCLUDED.experience,
			address = EXCLUDED.address,
			work_start_hour = EXCLUDED.work_start_hour,
			work_end_hour = EXCLUDED.work_end_hour,
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
		profile.Specialization,
		profile.Age,
		profile.Gender,
		profile.WorkAt,
		profile.Experience,
		profile.Address,
		profile.WorkStartHour,
		profile.WorkEndHour,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert doctor profile: %w", err)
	}
	return nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	query := `
		SELECT id, user_id, name, email, phone_no, specialization, age, gender,
		       work_at, experience, address, profile_img,
		       work_start_hour, work_end_hour, created_at, updated_at
		FROM doctors
		WHERE user_id = $1
	`

	var profile model.DoctorProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, translateNotFound(err)
	}
	return &profile, nil
}

func (r *doctorRepository) UpdateImage(ctx context.Context, userID uuid.UUID, imageURL string) error {
	query := `UPDATE doctors SET profile_img = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, imageURL, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update doctor image: %w", err)
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

func (r *doctorRepository) ListBySpecialization(ctx context.Context, specialization string) ([]*model.DoctorProfile, error) {
	query := `
		SELECT id, user_id, name, email, phone_no, specialization, age, gender,
		       work_at, experience, address, profile_img,
		       work_start_hour, work_end_hour, created_at, updated_at
		FROM doctors
		WHERE specialization = $1
		ORDER BY name ASC
	`

	var profiles []*model.DoctorProfile
	if err := r.db.SelectContext(ctx, &profiles, query, specialization); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return profiles, nil
}

func (r *doctorRepository) PublicList(ctx context.Context) ([]*model.RoleListing, error) {
	query := `
		SELECT doctors.name, doctors.age, doctors.gender
		FROM users
		LEFT JOIN doctors ON users.id = doctors.user_id
		WHERE users.role = 'doctor'
		ORDER BY users.created_at ASC
	`

	var listings []*model.RoleListing
	if err := r.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return listings, nil
}
