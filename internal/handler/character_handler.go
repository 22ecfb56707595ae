package handler

import (
	"net/http"

	"story-narrator/internal/models"
	"story-narrator/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CharacterHandler serves /characters.
type CharacterHandler struct {
	characterService service.CharacterService
	logger           *zap.Logger
}

// NewCharacterHandler creates a CharacterHandler.
func NewCharacterHandler(characterService service.CharacterService, logger *zap.Logger) *CharacterHandler {
	return &CharacterHandler{
		characterService: characterService,
		logger:           logger.Named("CharacterHandler"),
	}
}

// RegisterRoutes mounts the /characters routes.
func (h *CharacterHandler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/characters")
	{
		group.POST("", h.create)
		group.GET("/:id", h.get)
	}
}

func (h *CharacterHandler) create(c *gin.Context) {
	var req models.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	character, err := h.characterService.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	charactersCreatedTotal.Inc()
	h.logger.Info("Character created", zap.String("characterID", character.ID.String()))
	c.JSON(http.StatusCreated, character)
}

func (h *CharacterHandler) get(c *gin.Context) {
	character, err := h.characterService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}
