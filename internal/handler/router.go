package handler

import (
	"time"

	"story-narrator/internal/config"
	"story-narrator/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// RouterDeps bundles everything NewRouter wires together.
type RouterDeps struct {
	Config        *config.Config
	Logger        *zap.Logger
	Auth          *AuthHandler
	Characters    *CharacterHandler
	Scenarios     *ScenarioHandler
	Stories       *StoryHandler
	Health        *HealthHandler
	Authenticator middleware.Authenticator
	// AuthRateLimit guards /auth; nil disables rate limiting.
	AuthRateLimit gin.HandlerFunc
	// Metrics enables the /metrics endpoint and request instrumentation.
	Metrics bool
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(deps.Config, deps.Logger)))

	if deps.Metrics {
		p := ginprometheus.NewPrometheus("gin")
		p.Use(router)
	}

	deps.Health.RegisterRoutes(router)
	deps.Auth.RegisterRoutes(router, deps.AuthRateLimit)
	deps.Characters.RegisterRoutes(router)
	deps.Scenarios.RegisterRoutes(router)
	deps.Stories.RegisterRoutes(router, middleware.AuthMiddleware(deps.Authenticator, deps.Logger))

	return router
}

func corsConfig(cfg *config.Config, logger *zap.Logger) cors.Config {
	corsCfg := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	switch {
	case len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*"):
		corsCfg.AllowAllOrigins = true
		logger.Debug("CORS allows all origins")
	default:
		corsCfg.AllowOrigins = allowedOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}
