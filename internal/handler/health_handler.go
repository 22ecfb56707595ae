package handler

import (
	"context"
	"net/http"
	"time"

	"story-narrator/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the root status and liveness endpoints.
type HealthHandler struct {
	db     Pinger
	logger *zap.Logger
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger.Named("HealthHandler")}
}

// RegisterRoutes mounts / and /health.
func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.root)
	router.GET("/health", h.health)
	router.HEAD("/health", h.health)
}

func (h *HealthHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Status: OK"})
}

func (h *HealthHandler) health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("Health check failed: database unreachable", zap.Error(err))
			c.String(http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	}
	c.String(http.StatusOK, "OK")
}
