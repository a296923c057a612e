package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medbook/booking-api/internal/handler"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/service/profile"
	"github.com/medbook/booking-api/pkg/apperror"
)

type Handler struct {
	service *profile.Service
}

func NewHandler(service *profile.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes attaches the unauthenticated listings.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/PatientsLists", h.PatientsList)
	r.GET("/DoctorLists", h.DoctorsList)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/doctor-profile/Create", h.UpsertDoctor)
	r.POST("/patient-profile/Create", h.UpsertPatient)
	r.GET("/fetch-profile/doctor", h.DoctorCard)
	r.GET("/fetch-profile/patient", h.PatientCard)
	r.GET("/fetch-doctor/profile", h.DoctorProfile)
	r.GET("/fetch-patient/profile", h.PatientProfile)
	r.POST("/fetch-details/doctor", h.DoctorDetails)
	r.GET("/users-by-role", h.UsersByRole)
	r.POST("/edit-profile/img", h.UpdateImage)
}

func (h *Handler) UpsertDoctor(c *gin.Context) {
	var req model.UpsertDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperror.Validation("invalid request body", err))
		return
	}

	doc, err := h.service.UpsertDoctor(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doc))
}

func (h *Handler) UpsertPatient(c *gin.Context) {
	var req model.UpsertPatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperror.Validation("invalid request body", err))
		return
	}

	pat, err := h.service.UpsertPatient(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(pat))
}

// DoctorCard returns the caller's display name and resolved image URL.
func (h *Handler) DoctorCard(c *gin.Context) {
	card, err := h.service.DoctorCard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(card))
}

func (h *Handler) PatientCard(c *gin.Context) {
	card, err := h.service.PatientCard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(card))
}

// DoctorProfile returns the caller's full doctor row.
func (h *Handler) DoctorProfile(c *gin.Context) {
	doc, err := h.service.GetDoctor(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doc))
}

func (h *Handler) PatientProfile(c *gin.Context) {
	pat, err := h.service.GetPatient(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(pat))
}

type doctorDetailsRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
}

// DoctorDetails looks up an arbitrary doctor's profile by user id.
func (h *Handler) DoctorDetails(c *gin.Context) {
	var req doctorDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperror.Validation("invalid request body", err))
		return
	}

	doc, err := h.service.GetDoctor(c.Request.Context(), req.DoctorID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doc))
}

// UsersByRole lists doctors matching the given specialization.
func (h *Handler) UsersByRole(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		handler.RespondError(c, apperror.Validation("role is required", nil))
		return
	}

	doctors, err := h.service.DoctorsBySpecialization(c.Request.Context(), role)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) UpdateImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("profile_img")
	if err != nil {
		handler.RespondError(c, apperror.Validation("no image uploaded", err))
		return
	}
	defer file.Close()

	url, err := h.service.UpdateImage(c.Request.Context(), middleware.UserID(c),
		middleware.UserRole(c), header.Header.Get("Content-Type"), header.Filename, file)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	resp := handler.NewMessageResponse("profile image updated")
	resp.Data = gin.H{"image_url": url}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) PatientsList(c *gin.Context) {
	patients, err := h.service.PublicPatients(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) DoctorsList(c *gin.Context) {
	doctors, err := h.service.PublicDoctors(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}
