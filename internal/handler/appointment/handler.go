package appointment

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/handler"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/service/appointment"
	"github.com/medbook/booking-api/pkg/apperror"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/book-slot", h.BookSlot)
	r.POST("/cancel-appointment", h.action(h.service.Cancel))
	r.POST("/approve-appointment", h.action(h.service.Approve))
	r.POST("/confirm-appointment", h.action(h.service.Confirm))

	r.GET("/my-appointments", h.doctorList(nil))
	r.GET("/upcoming-appointments", h.doctorList(&model.AppointmentFilters{Status: model.AppointmentStatusPending}))
	r.GET("/approve-appointments", h.doctorList(&model.AppointmentFilters{Status: model.AppointmentStatusApproved}))
	r.GET("/completed-appointments", h.doctorList(&model.AppointmentFilters{Status: model.AppointmentStatusCompleted}))
	r.GET("/cancelled-appointments", h.doctorList(&model.AppointmentFilters{Status: model.AppointmentStatusCanceled}))
	r.GET("/today-appointment/doctor", h.doctorList(&model.AppointmentFilters{Status: model.AppointmentStatusPending, TodayOnly: true}))

	r.GET("/patient-appointments", h.patientList(nil))
	r.GET("/upcoming-appointments/patient", h.patientList(&model.AppointmentFilters{Status: model.AppointmentStatusPending}))
	r.GET("/completed-appointments/patient", h.patientList(&model.AppointmentFilters{Status: model.AppointmentStatusCompleted}))
	r.GET("/cancelled-appointments/patient", h.patientList(&model.AppointmentFilters{Status: model.AppointmentStatusCanceled}))
	r.GET("/today-appointment/patient", h.patientList(&model.AppointmentFilters{Status: model.AppointmentStatusPending, TodayOnly: true}))
}

func (h *Handler) BookSlot(c *gin.Context) {
	var req model.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperror.Validation("invalid request body", err))
		return
	}

	apt, err := h.service.Book(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

type transitionFunc func(ctx context.Context, callerID, aptID uuid.UUID) error

// action wraps cancel/approve/confirm, which share request shape and response.
func (h *Handler) action(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.AppointmentActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			handler.RespondError(c, apperror.Validation("invalid request body", err))
			return
		}

		aptID, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			handler.RespondError(c, apperror.Validation("invalid appointment ID", err))
			return
		}

		if err := fn(c.Request.Context(), middleware.UserID(c), aptID); err != nil {
			handler.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, handler.NewMessageResponse("appointment updated"))
	}
}

func (h *Handler) doctorList(filters *model.AppointmentFilters) gin.HandlerFunc {
	return func(c *gin.Context) {
		appointments, err := h.service.ListForDoctor(c.Request.Context(), middleware.UserID(c), filters)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
	}
}

func (h *Handler) patientList(filters *model.AppointmentFilters) gin.HandlerFunc {
	return func(c *gin.Context) {
		appointments, err := h.service.ListForPatient(c.Request.Context(), middleware.UserID(c), filters)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
	}
}
