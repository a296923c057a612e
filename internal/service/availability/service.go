package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	"github.com/medbook/booking-api/pkg/apperror"
)

// Service resolves bookable slots for a doctor and date and manages the
// doctor-declared unavailability set.
type Service struct {
	slotRepo repository.SlotRepository
	aptRepo  repository.AppointmentRepository
	docRepo  repository.DoctorRepository
}

func NewService(slotRepo repository.SlotRepository, aptRepo repository.AppointmentRepository,
	docRepo repository.DoctorRepository) *Service {
	return &Service{
		slotRepo: slotRepo,
		aptRepo:  aptRepo,
		docRepo:  docRepo,
	}
}

// AvailableSlots computes catalog \ unavailable \ booked for (doctor, date),
// preserving catalog order. Booked slots exclude canceled appointments. The
// catalog comes from the doctor's configured working hours, falling back to
// the default when the doctor has no profile.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*model.DaySlots, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, apperror.Validation("invalid date format", err)
	}

	catalog, err := s.catalogFor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	unavailable, err := s.slotRepo.ListForDate(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get unavailable slots: %w", err)
	}

	booked, err := s.aptRepo.BookedSlots(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked slots: %w", err)
	}

	excluded := make(map[string]bool, len(unavailable)+len(booked))
	for _, label := range unavailable {
		excluded[label] = true
	}
	for _, label := range booked {
		excluded[label] = true
	}

	available := make([]string, 0, len(catalog))
	for _, label := range catalog {
		if !excluded[label] {
			available = append(available, label)
		}
	}

	return &model.DaySlots{
		UnavailableSlots: unavailable,
		BookedSlots:      booked,
		AvailableSlots:   available,
	}, nil
}

// SetUnavailability replaces the doctor's unavailable slots for the date.
// Labels must belong to the doctor's catalog; an empty list clears the date.
func (s *Service) SetUnavailability(ctx context.Context, doctorID uuid.UUID, req *model.SetUnavailabilityRequest) error {
	if _, err := model.ParseDate(req.Date); err != nil {
		return apperror.Validation("invalid date format", err)
	}

	catalog, err := s.catalogFor(ctx, doctorID)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(catalog))
	for _, label := range catalog {
		known[label] = true
	}
	for _, label := range req.TimeSlots {
		if !known[label] {
			return apperror.Validation(fmt.Sprintf("unknown time slot %q", label), nil)
		}
	}

	if err := s.slotRepo.ReplaceForDate(ctx, doctorID, req.Date, req.TimeSlots); err != nil {
		return fmt.Errorf("failed to replace unavailable slots: %w", err)
	}
	return nil
}

// InCatalog reports whether the label is bookable at all for the doctor.
func (s *Service) InCatalog(ctx context.Context, doctorID uuid.UUID, label string) (bool, error) {
	catalog, err := s.catalogFor(ctx, doctorID)
	if err != nil {
		return false, err
	}
	for _, l := range catalog {
		if l == label {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) catalogFor(ctx context.Context, doctorID uuid.UUID) ([]string, error) {
	profile, err := s.docRepo.GetByUserID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No profile yet: the doctor works the default hours.
			return model.DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}
	return profile.Hours().Catalog(), nil
}
