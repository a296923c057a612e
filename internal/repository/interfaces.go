package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
)

// Sentinel errors surfaced by repositories; services translate these into the
// client-facing taxonomy.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrSlotTaken is raised when the storage uniqueness constraint on
	// (doctor, date, slot) for non-canceled appointments is violated.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrSlotUnavailable is raised when booking a slot the doctor declared
	// unavailable.
	ErrSlotUnavailable = errors.New("slot marked unavailable")
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	DoctorRepository interface {
		Upsert(ctx context.Context, profile *model.DoctorProfile) error
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error)
		UpdateImage(ctx context.Context, userID uuid.UUID, imageURL string) error
		ListBySpecialization(ctx context.Context, specialization string) ([]*model.DoctorProfile, error)
		PublicList(ctx context.Context) ([]*model.RoleListing, error)
	}

	PatientRepository interface {
		Upsert(ctx context.Context, profile *model.PatientProfile) error
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error)
		UpdateImage(ctx context.Context, userID uuid.UUID, imageURL string) error
		PublicList(ctx context.Context) ([]*model.RoleListing, error)
	}

	// SlotRepository manages doctor-declared unavailable slots.
	SlotRepository interface {
		// ReplaceForDate atomically replaces all unavailable slots for
		// (doctor, date) with the given labels.
		ReplaceForDate(ctx context.Context, doctorID uuid.UUID, date string, labels []string) error
		ListForDate(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
	}

	AppointmentRepository interface {
		// Book inserts a pending appointment inside a single transaction,
		// re-checking unavailability and relying on the uniqueness
		// constraint to reject concurrent double bookings.
		Book(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
		// BookedSlots returns the slot labels of non-canceled appointments
		// for (doctor, date), in no particular order.
		BookedSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PrescriptionWithDoctor, error)
	}

	// TokenRepository records revoked bearer tokens until their natural
	// expiry.
	TokenRepository interface {
		Revoke(ctx context.Context, token string, until time.Time) error
		IsRevoked(ctx context.Context, token string) (bool, error)
	}
)
