package handler

import (
	"net/http"

	"story-narrator/internal/models"
	"story-narrator/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const registeredMessage = "User registered successfully."

// AuthHandler serves /auth.
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger.Named("AuthHandler"),
	}
}

// RegisterRoutes mounts the /auth routes. rateLimit may be nil.
func (h *AuthHandler) RegisterRoutes(router gin.IRouter, rateLimit gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	if rateLimit != nil {
		authGroup.Use(rateLimit)
	}
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}
}

// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.RegisterResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusOK, models.RegisterResponse{
		Name:    user.Name,
		Email:   user.Email,
		Message: registeredMessage,
	})
}

// @Summary Log in and obtain a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		loginsTotal.WithLabelValues("failure").Inc()
		handleServiceError(c, err)
		return
	}

	loginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: models.TokenTypeBearer})
}
