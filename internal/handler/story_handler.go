package handler

import (
	"net/http"

	"story-narrator/internal/middleware"
	"story-narrator/internal/models"
	"story-narrator/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StoryHandler serves /stories.
type StoryHandler struct {
	storyService service.StoryService
	logger       *zap.Logger
}

// NewStoryHandler creates a StoryHandler.
func NewStoryHandler(storyService service.StoryService, logger *zap.Logger) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
		logger:       logger.Named("StoryHandler"),
	}
}

// RegisterRoutes mounts the /stories routes behind authMiddleware.
func (h *StoryHandler) RegisterRoutes(router gin.IRouter, authMiddleware gin.HandlerFunc) {
	group := router.Group("/stories")
	group.Use(authMiddleware)
	{
		group.POST("/generate", h.generate)
	}
}

// @Summary Generate a story for the given characters and scenario
// @Tags stories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} models.Story
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /stories/generate [post]
func (h *StoryHandler) generate(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.logger.Error("Authenticated user missing from context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeUnauthorized, Message: "Could not validate credentials"})
		return
	}

	var req models.GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	story, err := h.storyService.Generate(c.Request.Context(), user.ID, req)
	if err != nil {
		storiesGeneratedTotal.WithLabelValues("error").Inc()
		handleServiceError(c, err)
		return
	}

	storiesGeneratedTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusCreated, story)
}
