package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medbook/booking-api/internal/handler"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/service/prescription"
	"github.com/medbook/booking-api/pkg/apperror"
)

type Handler struct {
	service *prescription.Service
}

func NewHandler(service *prescription.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/add-prescription", h.Upload)
	r.GET("/get-prescription", h.List)
}

// Upload stores a prescription document for the caller's patient.
func (h *Handler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("document")
	if err != nil {
		handler.RespondError(c, apperror.Validation("no document uploaded", err))
		return
	}
	defer file.Close()

	pres, url, err := h.service.Upload(c.Request.Context(), middleware.UserID(c),
		c.PostForm("appointment_id"), c.PostForm("patient_id"), header.Filename, file)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	resp := handler.NewMessageResponse("document uploaded")
	resp.Data = gin.H{"prescription": pres, "document_url": url}
	c.JSON(http.StatusCreated, resp)
}

// List returns the caller's prescriptions with resolved document URLs.
func (h *Handler) List(c *gin.Context) {
	prescriptions, err := h.service.ListForPatient(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}
