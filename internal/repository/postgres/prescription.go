package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
)

func NewPrescriptionRepository(base BaseRepository) repository.PrescriptionRepository {
	return &prescriptionRepository{base}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			id, appointment_id, doctor_id, patient_id, document,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	prescription.ID = uuid.New()
	prescription.CreatedAt = time.Now()
	prescription.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		prescription.ID,
		prescription.AppointmentID,
		prescription.DoctorID,
		prescription.PatientID,
		prescription.Document,
		prescription.CreatedAt,
		prescription.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PrescriptionWithDoctor, error) {
	query := `
		SELECT prescriptions.id, prescriptions.doctor_id, prescriptions.patient_id,
		       prescriptions.document,
		       doctors.name, doctors.age, doctors.email, doctors.phone_no
		FROM prescriptions
		LEFT JOIN doctors ON doctors.user_id = prescriptions.doctor_id
		WHERE prescriptions.patient_id = $1
		ORDER BY prescriptions.created_at DESC
	`

	var prescriptions []*model.PrescriptionWithDoctor
	if err := r.db.SelectContext(ctx, &prescriptions, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}
