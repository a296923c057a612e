package prescription

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	"github.com/medbook/booking-api/pkg/apperror"
	"github.com/medbook/booking-api/pkg/media"
)

type fakePrescriptionRepo struct {
	created   []*model.Prescription
	createErr error
	rows      []*model.PrescriptionWithDoctor
}

func (f *fakePrescriptionRepo) Create(_ context.Context, prescription *model.Prescription) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, prescription)
	return nil
}

func (f *fakePrescriptionRepo) ListForPatient(_ context.Context, _ uuid.UUID) ([]*model.PrescriptionWithDoctor, error) {
	return f.rows, nil
}

func newTestService(t *testing.T) (*Service, *fakePrescriptionRepo) {
	t.Helper()
	repo := &fakePrescriptionRepo{}
	store := media.NewLocalStore(t.TempDir(), "http://localhost:8080/storage")
	return NewService(repo, store), repo
}

func TestUpload(t *testing.T) {
	svc, repo := newTestService(t)
	doctorID := uuid.New()

	pres, url, err := svc.Upload(context.Background(), doctorID,
		uuid.New().String(), uuid.New().String(), "rx.pdf", strings.NewReader("take two daily"))
	require.NoError(t, err)

	assert.Equal(t, doctorID, pres.DoctorID)
	assert.NotEmpty(t, pres.Document)
	assert.Equal(t, "http://localhost:8080/storage/"+pres.Document, url)
	assert.Len(t, repo.created, 1)
}

func TestUploadUnknownAppointment(t *testing.T) {
	svc, repo := newTestService(t)
	repo.createErr = repository.ErrNotFound

	_, _, err := svc.Upload(context.Background(), uuid.New(),
		uuid.New().String(), uuid.New().String(), "rx.pdf", strings.NewReader("x"))
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUploadRejectsBadIDs(t *testing.T) {
	svc, repo := newTestService(t)

	_, _, err := svc.Upload(context.Background(), uuid.New(),
		"not-a-uuid", uuid.New().String(), "rx.pdf", strings.NewReader("x"))
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, _, err = svc.Upload(context.Background(), uuid.New(),
		uuid.New().String(), "not-a-uuid", "rx.pdf", strings.NewReader("x"))
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	assert.Empty(t, repo.created)
}

func TestListForPatientResolvesURLs(t *testing.T) {
	svc, repo := newTestService(t)
	repo.rows = []*model.PrescriptionWithDoctor{
		{ID: uuid.New(), Document: "123_abcd.pdf"},
	}

	rows, err := svc.ListForPatient(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "http://localhost:8080/storage/123_abcd.pdf", rows[0].DocumentURL)
}
