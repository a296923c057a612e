package appointment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	"github.com/medbook/booking-api/internal/service/availability"
	"github.com/medbook/booking-api/pkg/apperror"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	bookErr      error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeAppointmentRepo) Book(_ context.Context, apt *model.Appointment) error {
	if f.bookErr != nil {
		return f.bookErr
	}
	apt.ID = uuid.New()
	apt.Status = model.AppointmentStatusPending
	f.appointments[apt.ID] = apt
	return nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *apt
	return &copied, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	apt, ok := f.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	apt.Status = status
	return nil
}

func (f *fakeAppointmentRepo) BookedSlots(_ context.Context, _ uuid.UUID, _ string) ([]string, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListForDoctor(_ context.Context, _ uuid.UUID, _ *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListForPatient(_ context.Context, _ uuid.UUID, _ *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error) {
	return nil, nil
}

type stubSlotRepo struct{}

func (stubSlotRepo) ReplaceForDate(_ context.Context, _ uuid.UUID, _ string, _ []string) error {
	return nil
}

func (stubSlotRepo) ListForDate(_ context.Context, _ uuid.UUID, _ string) ([]string, error) {
	return nil, nil
}

type stubDoctorRepo struct{}

func (stubDoctorRepo) Upsert(_ context.Context, _ *model.DoctorProfile) error { return nil }

func (stubDoctorRepo) GetByUserID(_ context.Context, _ uuid.UUID) (*model.DoctorProfile, error) {
	return nil, repository.ErrNotFound
}

func (stubDoctorRepo) UpdateImage(_ context.Context, _ uuid.UUID, _ string) error { return nil }

func (stubDoctorRepo) ListBySpecialization(_ context.Context, _ string) ([]*model.DoctorProfile, error) {
	return nil, nil
}

func (stubDoctorRepo) PublicList(_ context.Context) ([]*model.RoleListing, error) { return nil, nil }

func newTestService() (*Service, *fakeAppointmentRepo) {
	repo := newFakeAppointmentRepo()
	availSvc := availability.NewService(stubSlotRepo{}, repo, stubDoctorRepo{})
	return NewService(repo, availSvc, nil), repo
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	svc, repo := newTestService()
	patientID := uuid.New()
	doctorID := uuid.New()

	apt, err := svc.Book(context.Background(), patientID, &model.BookSlotRequest{
		DoctorID: doctorID.String(),
		Date:     "2025-06-01",
		TimeSlot: "09:00 AM",
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, doctorID, apt.DoctorID)
	assert.Equal(t, patientID, apt.PatientID)
	assert.Len(t, repo.appointments, 1)
}

func TestBookRejectsUnknownSlotLabel(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Book(context.Background(), uuid.New(), &model.BookSlotRequest{
		DoctorID: uuid.New().String(),
		Date:     "2025-06-01",
		TimeSlot: "9am",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestBookRejectsBadDate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Book(context.Background(), uuid.New(), &model.BookSlotRequest{
		DoctorID: uuid.New().String(),
		Date:     "01-06-2025",
		TimeSlot: "09:00 AM",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestBookMapsSlotTakenToConflict(t *testing.T) {
	svc, repo := newTestService()
	repo.bookErr = repository.ErrSlotTaken

	_, err := svc.Book(context.Background(), uuid.New(), &model.BookSlotRequest{
		DoctorID: uuid.New().String(),
		Date:     "2025-06-01",
		TimeSlot: "09:00 AM",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestBookMapsUnavailableToConflict(t *testing.T) {
	svc, repo := newTestService()
	repo.bookErr = repository.ErrSlotUnavailable

	_, err := svc.Book(context.Background(), uuid.New(), &model.BookSlotRequest{
		DoctorID: uuid.New().String(),
		Date:     "2025-06-01",
		TimeSlot: "09:00 AM",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func book(t *testing.T, svc *Service, doctorID, patientID uuid.UUID) *model.Appointment {
	t.Helper()
	apt, err := svc.Book(context.Background(), patientID, &model.BookSlotRequest{
		DoctorID: doctorID.String(),
		Date:     "2025-06-01",
		TimeSlot: "09:00 AM",
	})
	require.NoError(t, err)
	return apt
}

func TestCancelByEitherParty(t *testing.T) {
	doctorID, patientID := uuid.New(), uuid.New()

	for _, caller := range []uuid.UUID{doctorID, patientID} {
		svc, repo := newTestService()
		apt := book(t, svc, doctorID, patientID)

		require.NoError(t, svc.Cancel(context.Background(), caller, apt.ID))
		assert.Equal(t, model.AppointmentStatusCanceled, repo.appointments[apt.ID].Status)
	}
}

func TestTransitionRejectsNonParty(t *testing.T) {
	svc, _ := newTestService()
	apt := book(t, svc, uuid.New(), uuid.New())

	err := svc.Cancel(context.Background(), uuid.New(), apt.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestTransitionUnknownAppointment(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Approve(context.Background(), uuid.New(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestApproveConfirmFlow(t *testing.T) {
	svc, repo := newTestService()
	doctorID, patientID := uuid.New(), uuid.New()
	apt := book(t, svc, doctorID, patientID)

	require.NoError(t, svc.Approve(context.Background(), doctorID, apt.ID))
	assert.Equal(t, model.AppointmentStatusApproved, repo.appointments[apt.ID].Status)

	require.NoError(t, svc.Confirm(context.Background(), doctorID, apt.ID))
	assert.Equal(t, model.AppointmentStatusCompleted, repo.appointments[apt.ID].Status)
}

func TestTerminalStatesRejectFurtherTransitions(t *testing.T) {
	svc, _ := newTestService()
	doctorID, patientID := uuid.New(), uuid.New()
	apt := book(t, svc, doctorID, patientID)

	require.NoError(t, svc.Cancel(context.Background(), patientID, apt.ID))

	err := svc.Approve(context.Background(), doctorID, apt.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	err = svc.Cancel(context.Background(), patientID, apt.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}
