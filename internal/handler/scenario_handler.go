package handler

import (
	"net/http"

	"story-narrator/internal/models"
	"story-narrator/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScenarioHandler serves /scenarios.
type ScenarioHandler struct {
	scenarioService service.ScenarioService
	logger          *zap.Logger
}

// NewScenarioHandler creates a ScenarioHandler.
func NewScenarioHandler(scenarioService service.ScenarioService, logger *zap.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioService: scenarioService,
		logger:          logger.Named("ScenarioHandler"),
	}
}

// RegisterRoutes mounts the /scenarios routes.
func (h *ScenarioHandler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/scenarios")
	{
		group.POST("", h.create)
		group.GET("", h.listAvailable)
		group.GET("/:id", h.get)
	}
}

func (h *ScenarioHandler) create(c *gin.Context) {
	var req models.CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	scenario, err := h.scenarioService.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	scenariosCreatedTotal.Inc()
	c.JSON(http.StatusCreated, scenario)
}

func (h *ScenarioHandler) listAvailable(c *gin.Context) {
	scenarios, err := h.scenarioService.ListAvailable(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if scenarios == nil {
		scenarios = []models.Scenario{}
	}
	c.JSON(http.StatusOK, scenarios)
}

func (h *ScenarioHandler) get(c *gin.Context) {
	scenario, err := h.scenarioService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}
