package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	"github.com/medbook/booking-api/pkg/apperror"
	"github.com/medbook/booking-api/pkg/media"
)

const (
	publicListTTL      = time.Minute
	cacheKeyDoctors    = "public:doctors"
	cacheKeyPatients   = "public:patients"
	cacheSweepInterval = 5 * time.Minute
)

// Service manages doctor and patient profiles and the public role listings.
type Service struct {
	docRepo  repository.DoctorRepository
	patRepo  repository.PatientRepository
	uploader media.Uploader
	store    media.DocumentStore
	cache    *gocache.Cache
}

func NewService(docRepo repository.DoctorRepository, patRepo repository.PatientRepository,
	uploader media.Uploader, store media.DocumentStore) *Service {
	return &Service{
		docRepo:  docRepo,
		patRepo:  patRepo,
		uploader: uploader,
		store:    store,
		cache:    gocache.New(publicListTTL, cacheSweepInterval),
	}
}

func (s *Service) UpsertDoctor(ctx context.Context, userID uuid.UUID, req *model.UpsertDoctorProfileRequest) (*model.DoctorProfile, error) {
	if req.WorkStartHour != nil && req.WorkEndHour != nil {
		hours := model.WorkHours{StartHour: *req.WorkStartHour, EndHour: *req.WorkEndHour}
		if !hours.Valid() {
			return nil, apperror.Validation("work hours out of order", nil)
		}
	}

	existing, err := s.docRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}

	profile := &model.DoctorProfile{
		UserID:         userID,
		Name:           req.Name,
		Email:          req.Email,
		PhoneNo:        req.Phone,
		Specialization: req.Specialization,
		Age:            req.Age,
		Gender:         req.Gender,
		WorkAt:         req.WorkAt,
		Experience:     req.Experience,
		Address:        req.Address,
		WorkStartHour:  req.WorkStartHour,
		WorkEndHour:    req.WorkEndHour,
	}
	if existing != nil {
		profile.Base = existing.Base
	}

	if err := s.docRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert doctor profile: %w", err)
	}
	s.cache.Delete(cacheKeyDoctors)
	return profile, nil
}

func (s *Service) UpsertPatient(ctx context.Context, userID uuid.UUID, req *model.UpsertPatientProfileRequest) (*model.PatientProfile, error) {
	existing, err := s.patRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}

	profile := &model.PatientProfile{
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		PhoneNo: req.Phone,
		Age:     req.Age,
		Gender:  req.Gender,
	}
	if existing != nil {
		profile.Base = existing.Base
	}

	if err := s.patRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert patient profile: %w", err)
	}
	s.cache.Delete(cacheKeyPatients)
	return profile, nil
}

func (s *Service) GetDoctor(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	profile, err := s.docRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("profile", err)
		}
		return nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}
	return profile, nil
}

func (s *Service) GetPatient(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	profile, err := s.patRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("profile", err)
		}
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}
	return profile, nil
}

// DoctorCard returns the name+image shape used by the profile header.
func (s *Service) DoctorCard(ctx context.Context, userID uuid.UUID) (*model.ProfileCard, error) {
	profile, err := s.GetDoctor(ctx, userID)
	if err != nil {
		return nil, err
	}
	img := media.ResolveImage(s.store, profile.ProfileImg)
	return &model.ProfileCard{Name: profile.Name, ProfileImg: &img}, nil
}

func (s *Service) PatientCard(ctx context.Context, userID uuid.UUID) (*model.ProfileCard, error) {
	profile, err := s.GetPatient(ctx, userID)
	if err != nil {
		return nil, err
	}
	img := media.ResolveImage(s.store, profile.ProfileImg)
	return &model.ProfileCard{Name: profile.Name, ProfileImg: &img}, nil
}

func (s *Service) DoctorsBySpecialization(ctx context.Context, specialization string) ([]*model.DoctorProfile, error) {
	profiles, err := s.docRepo.ListBySpecialization(ctx, specialization)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return profiles, nil
}

// UpdateImage uploads the image to the media host and stores the returned
// URL on the caller's role profile.
func (s *Service) UpdateImage(ctx context.Context, userID uuid.UUID, role, contentType, filename string, content io.Reader) (string, error) {
	if !media.AllowedImageTypes[contentType] {
		return "", apperror.Validation("invalid file type, only images are allowed", nil)
	}

	url, err := s.uploader.Upload(ctx, filename, content)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("media upload failed")
		return "", apperror.Upstream("image upload failed", err)
	}

	switch role {
	case model.RoleDoctor:
		err = s.docRepo.UpdateImage(ctx, userID, url)
	default:
		err = s.patRepo.UpdateImage(ctx, userID, url)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperror.NotFound("profile", err)
		}
		return "", fmt.Errorf("failed to store image reference: %w", err)
	}
	return url, nil
}

// PublicDoctors lists doctor name/age/gender rows for the unauthenticated
// listing endpoint, cached briefly.
func (s *Service) PublicDoctors(ctx context.Context) ([]*model.RoleListing, error) {
	if cached, ok := s.cache.Get(cacheKeyDoctors); ok {
		return cached.([]*model.RoleListing), nil
	}

	listings, err := s.docRepo.PublicList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	s.cache.Set(cacheKeyDoctors, listings, publicListTTL)
	return listings, nil
}

func (s *Service) PublicPatients(ctx context.Context) ([]*model.RoleListing, error) {
	if cached, ok := s.cache.Get(cacheKeyPatients); ok {
		return cached.([]*model.RoleListing), nil
	}

	listings, err := s.patRepo.PublicList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	s.cache.Set(cacheKeyPatients, listings, publicListTTL)
	return listings, nil
}
