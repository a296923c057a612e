package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	"github.com/medbook/booking-api/internal/service/availability"
	"github.com/medbook/booking-api/pkg/apperror"
	"github.com/medbook/booking-api/pkg/media"
)

// Service owns the appointment lifecycle: booking and the closed set of
// status transitions.
type Service struct {
	repo     repository.AppointmentRepository
	availSvc *availability.Service
	store    media.DocumentStore
}

func NewService(repo repository.AppointmentRepository, availSvc *availability.Service,
	store media.DocumentStore) *Service {
	return &Service{
		repo:     repo,
		availSvc: availSvc,
		store:    store,
	}
}

// Book creates a pending appointment for the caller as patient. The slot must
// belong to the doctor's catalog; unavailability and double-booking are
// rejected by the storage transaction and its uniqueness constraint, so two
// concurrent requests for the same slot cannot both succeed.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req *model.BookSlotRequest) (*model.Appointment, error) {
	if _, err := model.ParseDate(req.Date); err != nil {
		return nil, apperror.Validation("invalid date format", err)
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, apperror.Validation("invalid doctor ID", err)
	}

	ok, err := s.availSvc.InCatalog(ctx, doctorID, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("unknown time slot %q", req.TimeSlot), nil)
	}

	apt := &model.Appointment{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
	}

	if err := s.repo.Book(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotUnavailable) || errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperror.Conflict("slot is not available", err)
		}
		return nil, fmt.Errorf("failed to book slot: %w", err)
	}

	log.Info().
		Str("appointment_id", apt.ID.String()).
		Str("doctor_id", doctorID.String()).
		Str("patient_id", patientID.String()).
		Str("date", req.Date).
		Str("time_slot", req.TimeSlot).
		Msg("appointment booked")

	return apt, nil
}

// Cancel moves the appointment to canceled. Allowed for either party.
func (s *Service) Cancel(ctx context.Context, callerID, aptID uuid.UUID) error {
	return s.transition(ctx, callerID, aptID, model.AppointmentStatusCanceled)
}

// Approve moves a pending appointment to approved.
func (s *Service) Approve(ctx context.Context, callerID, aptID uuid.UUID) error {
	return s.transition(ctx, callerID, aptID, model.AppointmentStatusApproved)
}

// Confirm marks the appointment completed.
func (s *Service) Confirm(ctx context.Context, callerID, aptID uuid.UUID) error {
	return s.transition(ctx, callerID, aptID, model.AppointmentStatusCompleted)
}

func (s *Service) transition(ctx context.Context, callerID, aptID uuid.UUID, to model.AppointmentStatus) error {
	apt, err := s.repo.Get(ctx, aptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("appointment", err)
		}
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	// Ownership: the caller must be one of the two parties. Not
	// role-restricted beyond that.
	if apt.DoctorID != callerID && apt.PatientID != callerID {
		return apperror.Forbidden("not your appointment", nil)
	}

	if !apt.Status.CanTransition(to) {
		return apperror.Conflict(
			fmt.Sprintf("cannot move appointment from %s to %s", apt.Status, to), nil)
	}

	if err := s.repo.UpdateStatus(ctx, aptID, to); err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	log.Info().
		Str("appointment_id", aptID.String()).
		Str("from", string(apt.Status)).
		Str("to", string(to)).
		Msg("appointment status changed")

	return nil
}

// ListForDoctor returns the doctor's appointments with patient profiles and
// resolved image URLs.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error) {
	appointments, err := s.repo.ListForDoctor(ctx, doctorID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	s.resolveImages(appointments)
	return appointments, nil
}

// ListForPatient returns the patient's appointments with doctor profiles and
// resolved image URLs.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID, filters *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error) {
	appointments, err := s.repo.ListForPatient(ctx, patientID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	s.resolveImages(appointments)
	return appointments, nil
}

func (s *Service) resolveImages(appointments []*model.AppointmentWithProfile) {
	for _, apt := range appointments {
		resolved := media.ResolveImage(s.store, apt.ProfileImg)
		apt.ProfileImg = &resolved
	}
}
