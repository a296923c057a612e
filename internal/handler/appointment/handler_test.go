package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
	"github.com/medbook/booking-api/internal/service/appointment"
	"github.com/medbook/booking-api/internal/service/availability"
)

type memAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	bookErr      error
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (m *memAppointmentRepo) Book(_ context.Context, apt *model.Appointment) error {
	if m.bookErr != nil {
		return m.bookErr
	}
	apt.ID = uuid.New()
	apt.Status = model.AppointmentStatusPending
	m.appointments[apt.ID] = apt
	return nil
}

func (m *memAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := m.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *apt
	return &copied, nil
}

func (m *memAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	apt, ok := m.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	apt.Status = status
	return nil
}

func (m *memAppointmentRepo) BookedSlots(_ context.Context, _ uuid.UUID, _ string) ([]string, error) {
	return nil, nil
}

func (m *memAppointmentRepo) ListForDoctor(_ context.Context, _ uuid.UUID, _ *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error) {
	return []*model.AppointmentWithProfile{}, nil
}

func (m *memAppointmentRepo) ListForPatient(_ context.Context, _ uuid.UUID, _ *model.AppointmentFilters) ([]*model.AppointmentWithProfile, error) {
	return []*model.AppointmentWithProfile{}, nil
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

func setupRouter(callerID uuid.UUID) (*gin.Engine, *memAppointmentRepo) {
	return setupRouterWithRepo(callerID, newMemAppointmentRepo())
}

func setupRouterWithRepo(callerID uuid.UUID, repo *memAppointmentRepo) (*gin.Engine, *memAppointmentRepo) {
	gin.SetMode(gin.TestMode)

	availSvc := availability.NewService(stubSlotRepo{}, repo, stubDoctorRepo{})
	svc := appointment.NewService(repo, availSvc, nil)
	h := NewHandler(svc)

	engine := gin.New()
	group := engine.Group("")
	group.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, callerID)
		c.Next()
	})
	h.RegisterRoutes(group)
	return engine, repo
}

func postJSON(engine *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestBookSlot(t *testing.T) {
	patientID := uuid.New()
	engine, repo := setupRouter(patientID)

	w := postJSON(engine, "/book-slot", model.BookSlotRequest{
		DoctorID: uuid.New().String(),
		Date:     "2025-06-01",
		TimeSlot: "09:00 AM",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.appointments, 1)
	for _, apt := range repo.appointments {
		assert.Equal(t, patientID, apt.PatientID)
		assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	}
}

func TestBookSlotConflict(t *testing.T) {
	engine, repo := setupRouter(uuid.New())
	repo.bookErr = repository.ErrSlotTaken

	w := postJSON(engine, "/book-slot", model.BookSlotRequest{
		DoctorID: uuid.New().String(),
		Date:     "2025-06-01",
		TimeSlot: "09:00 AM",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Equal(t, "slot is not available", resp.Message)
}

func TestBookSlotMissingFields(t *testing.T) {
	engine, _ := setupRouter(uuid.New())

	w := postJSON(engine, "/book-slot", gin.H{"date": "2025-06-01"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelAppointment(t *testing.T) {
	patientID := uuid.New()
	engine, repo := setupRouter(patientID)

	booked := postJSON(engine, "/book-slot", model.BookSlotRequest{
		DoctorID: uuid.New().String(),
		Date:     "2025-06-01",
		TimeSlot: "09:00 AM",
	})
	require.Equal(t, http.StatusCreated, booked.Code)

	var aptID uuid.UUID
	for id := range repo.appointments {
		aptID = id
	}

	w := postJSON(engine, "/cancel-appointment", model.AppointmentActionRequest{
		AppointmentID: aptID.String(),
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.AppointmentStatusCanceled, repo.appointments[aptID].Status)
}

func TestCancelAppointmentNotOwned(t *testing.T) {
	owner := uuid.New()
	engine, repo := setupRouter(owner)

	booked := postJSON(engine, "/book-slot", model.BookSlotRequest{
		DoctorID: uuid.New().String(),
		Date:     "2025-06-01",
		TimeSlot: "09:00 AM",
	})
	require.Equal(t, http.StatusCreated, booked.Code)

	var aptID uuid.UUID
	for id := range repo.appointments {
		aptID = id
	}

	// A different caller must not be able to cancel.
	strangerEngine, _ := setupRouterWithRepo(uuid.New(), repo)
	w := postJSON(strangerEngine, "/cancel-appointment", model.AppointmentActionRequest{
		AppointmentID: aptID.String(),
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, model.AppointmentStatusPending, repo.appointments[aptID].Status)
}

func TestApproveAppointmentUnknownID(t *testing.T) {
	engine, _ := setupRouter(uuid.New())

	w := postJSON(engine, "/approve-appointment", model.AppointmentActionRequest{
		AppointmentID: uuid.New().String(),
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListingsRespondOK(t *testing.T) {
	engine, _ := setupRouter(uuid.New())

	paths := []string{
		"/my-appointments",
		"/upcoming-appointments",
		"/approve-appointments",
		"/completed-appointments",
		"/cancelled-appointments",
		"/today-appointment/doctor",
		"/patient-appointments",
		"/upcoming-appointments/patient",
		"/completed-appointments/patient",
		"/cancelled-appointments/patient",
		"/today-appointment/patient",
	}

	for _, path := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
