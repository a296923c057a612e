package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/handler"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/service/availability"
	"github.com/medbook/booking-api/pkg/apperror"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/set-unavailability", h.SetUnavailability)
	r.GET("/get-available-slots/:date", h.GetAvailableSlots)
	r.GET("/get-slots/:date", h.GetSlots)
}

// SetUnavailability replaces the caller's blocked slots for one date.
func (h *Handler) SetUnavailability(c *gin.Context) {
	var req model.SetUnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperror.Validation("invalid request body", err))
		return
	}

	if err := h.service.SetUnavailability(c.Request.Context(), middleware.UserID(c), &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("unavailability updated"))
}

// GetAvailableSlots resolves the slot picture for the caller as doctor.
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	slots, err := h.service.AvailableSlots(c.Request.Context(), middleware.UserID(c), c.Param("date"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

// GetSlots resolves the slot picture for an arbitrary doctor.
func (h *Handler) GetSlots(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Query("doctor_id"))
	if err != nil {
		handler.RespondError(c, apperror.Validation("invalid doctor id", err))
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), doctorID, c.Param("date"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}
