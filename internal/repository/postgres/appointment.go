package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
)

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

// Book inserts the appointment in one transaction. The unavailability check
// and the insert share the transaction, and the partial unique index
// appointments_slot_active_key on (doctor_id, date, time_slot) for
// non-canceled rows rejects concurrent double bookings that both pass the
// check.
func (r *appointmentRepository) Book(ctx context.Context, apt *model.Appointment) error {
	apt.ID = uuid.New()
	apt.Status = model.AppointmentStatusPending
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var unavailable bool
		err := tx.GetContext(ctx, &unavailable, `
			SELECT EXISTS (
				SELECT 1 FROM unavailable_slots
				WHERE doctor_id = $1 AND date = $2::date AND time_slot = $3
			)
		`, apt.DoctorID, apt.Date, apt.TimeSlot)
		if err != nil {
			return fmt.Errorf("failed to check unavailability: %w", err)
		}
		if unavailable {
			return repository.ErrSlotUnavailable
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO appointments (
				id, doctor_id, patient_id, date, time_slot, status,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8)
		`,
			apt.ID,
			apt.DoctorID,
			apt.PatientID,
			apt.Date,
			apt.TimeSlot,
			apt.Status,
			apt.CreatedAt,
			apt.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err, "appointments_slot_active_key") {
				return repository.ErrSlotTaken
			}
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, date::text AS date, time_slot, status,
		       created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, translateNotFound(err)
	}
	return &apt, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
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

func (r *appointmentRepository) BookedSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	query := `
		SELECT time_slot
		FROM appointments
		WHERE doctor_id = $1 AND date = $2::date AND status <> 'canceled'
	`

	var labels []string
	if err := r.db.SelectContext(ctx, &labels, query, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to list booked slots: %w", err)
	}
	return labels, nil
}

// ListForDoctor returns the doctor's appointments enriched with the patient's
// public profile via a left join.
func (r *appointmentRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error) {
	query := `
		SELECT appointments.id, appointments.doctor_id, appointments.patient_id,
		       appointments.date::text AS date, appointments.time_slot, appointments.status,
		       patients.name, patients.age, patients.gender, patients.email,
		       patients.phone_no, patients.profile_img
		FROM appointments
		LEFT JOIN patients ON patients.user_id = appointments.patient_id
		WHERE appointments.doctor_id = $1
	`
	return r.listWithFilters(ctx, query, doctorID, filters)
}

// ListForPatient returns the patient's appointments enriched with the
// doctor's public profile via a left join.
func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error) {
	query := `
		SELECT appointments.id, appointments.doctor_id, appointments.patient_id,
		       appointments.date::text AS date, appointments.time_slot, appointments.status,
		       doctors.name, doctors.age, doctors.gender, doctors.email,
		       doctors.phone_no, doctors.profile_img
		FROM appointments
		LEFT JOIN doctors ON doctors.user_id = appointments.doctor_id
		WHERE appointments.patient_id = $1
	`
	return r.listWithFilters(ctx, query, patientID, filters)
}

func (r *appointmentRepository) listWithFilters(ctx context.Context, query string, ownerID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error) {
	args := []interface{}{ownerID}
	argCount := 2

	if filters != nil {
		if filters.Status != "" {
			query += fmt.Sprintf(" AND appointments.status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if filters.Date != "" {
			query += fmt.Sprintf(" AND appointments.date = $%d::date", argCount)
			args = append(args, filters.Date)
			argCount++
		}
		if filters.TodayOnly {
			query += " AND appointments.date = CURRENT_DATE"
		}
	}

	query += " ORDER BY appointments.date ASC, appointments.time_slot ASC"

	var appointments []*model.AppointmentWithProfile
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
