package prescription

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	"github.com/medbook/booking-api/pkg/apperror"
	"github.com/medbook/booking-api/pkg/media"
)

// Service stores prescription documents and their metadata rows.
type Service struct {
	repo  repository.PrescriptionRepository
	store media.DocumentStore
}

func NewService(repo repository.PrescriptionRepository, store media.DocumentStore) *Service {
	return &Service{repo: repo, store: store}
}

// Upload stores the document and creates the prescription row. The caller is
// the issuing doctor.
func (s *Service) Upload(ctx context.Context, doctorID uuid.UUID, appointmentID, patientID string,
	filename string, content io.Reader) (*model.Prescription, string, error) {

	aptID, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, "", apperror.Validation("invalid appointment ID", err)
	}
	patID, err := uuid.Parse(patientID)
	if err != nil {
		return nil, "", apperror.Validation("invalid patient ID", err)
	}

	ref, err := s.store.Save(filename, content)
	if err != nil {
		log.Error().Err(err).Str("doctor_id", doctorID.String()).Msg("document store failed")
		return nil, "", apperror.Upstream("document upload failed", err)
	}

	prescription := &model.Prescription{
		AppointmentID: aptID,
		DoctorID:      doctorID,
		PatientID:     patID,
		Document:      ref,
	}
	if err := s.repo.Create(ctx, prescription); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperror.NotFound("appointment", err)
		}
		return nil, "", fmt.Errorf("failed to create prescription: %w", err)
	}

	return prescription, s.store.URL(ref), nil
}

// ListForPatient returns the caller's prescriptions joined with the issuing
// doctor's profile, with resolved document URLs.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PrescriptionWithDoctor, error) {
	prescriptions, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	for _, p := range prescriptions {
		p.DocumentURL = s.store.URL(p.Document)
	}
	return prescriptions, nil
}
