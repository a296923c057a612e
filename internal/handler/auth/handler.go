package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medbook/booking-api/internal/handler"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/service/auth"
	"github.com/medbook/booking-api/pkg/apperror"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes attaches the unauthenticated endpoints.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}

// RegisterRoutes attaches the endpoints that require a bearer token.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/user", h.CurrentUser)
	r.POST("/logout", h.Logout)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperror.Validation("invalid request body", err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(resp))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperror.Validation("invalid request body", err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) CurrentUser(c *gin.Context) {
	claims := &model.TokenClaims{
		UserID: middleware.UserID(c),
		Email:  c.GetString(middleware.ContextUserEmail),
		Role:   middleware.UserRole(c),
	}

	user, err := h.service.CurrentUser(c.Request.Context(), claims)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(user.Public()))
}

func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	if token == "" {
		handler.RespondError(c, apperror.Unauthorized("missing token", nil))
		return
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("logged out"))
}
