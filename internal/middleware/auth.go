package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"story-narrator/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey = "user_id"
	UserKey   = "user"
)

var tokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "story_narrator_token_verifications_total",
		Help: "Total number of bearer token verifications.",
	},
	[]string{"status"},
)

// Authenticator resolves a bearer token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header and
// stores the authenticated user in the gin context.
func AuthMiddleware(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("AuthMiddleware")
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Debug("Authorization header missing")
			abortUnauthorized(c, models.ErrCodeUnauthorized, "Could not validate credentials")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 {
			log.Debug("Malformed Authorization header")
			abortUnauthorized(c, models.ErrCodeUnauthorized, "Could not validate credentials")
			return
		}
		if !strings.EqualFold(parts[0], "bearer") {
			log.Debug("Unsupported authentication scheme", zap.String("scheme", parts[0]))
			abortUnauthorized(c, models.ErrCodeUnauthorized, "Invalid authentication scheme")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			log.Debug("Bearer authentication failed", zap.Error(err))
			switch {
			case errors.Is(err, models.ErrUserInactive):
				c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Code: models.ErrCodeUserInactive, Message: "Inactive user"})
			case errors.Is(err, models.ErrTokenPayloadInvalid):
				abortUnauthorized(c, models.ErrCodeTokenInvalid, "Invalid token payload")
			case errors.Is(err, models.ErrUserNotFound):
				abortUnauthorized(c, models.ErrCodeUserNotFound, "User not found")
			case errors.Is(err, models.ErrTokenInvalid),
				errors.Is(err, models.ErrTokenMalformed),
				errors.Is(err, models.ErrTokenExpired):
				abortUnauthorized(c, models.ErrCodeTokenInvalid, "Invalid token")
			default:
				log.Error("Unexpected error during bearer authentication", zap.Error(err))
				abortUnauthorized(c, models.ErrCodeUnauthorized, "Could not validate credentials")
			}
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: code, Message: message})
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
