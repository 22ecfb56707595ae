package handler

import (
	"errors"
	"net/http"

	"story-narrator/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	invalidBodyMessage      = "Invalid request body"
	generationFailedMessage = "An error occurred while generating the story."
)

// handleServiceError maps service errors to a status code and ErrorResponse.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	message, public := models.PublicMessage(err)

	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeWrongCredentials, Message: "Invalid email or password"}
	case errors.Is(err, models.ErrUserInactive):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeUserInactive, Message: "Inactive user"}
	case errors.Is(err, models.ErrEmailAlreadyExists):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeDuplicateEmail, Message: publicOr(message, public, "Email already registered")}
	case errors.Is(err, models.ErrCharacterNotFound), errors.Is(err, models.ErrScenarioNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeNotFound, Message: publicOr(message, public, "Resource not found")}
	case errors.Is(err, models.ErrScenarioAlreadyExists):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeDuplicateScenario, Message: publicOr(message, public, "Scenario already exists")}
	case errors.Is(err, models.ErrInvalidScenario), errors.Is(err, models.ErrStoryValidation):
		statusCode = http.StatusUnprocessableEntity
		errResp = models.ErrorResponse{Code: models.ErrCodeValidation, Message: publicOr(message, public, "Validation failed")}
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: publicOr(message, public, "Invalid input data")}
	case errors.Is(err, models.ErrStoryGenerationFailed):
		zap.L().Error("Story generation failed", zap.Error(err))
		statusCode = http.StatusBadGateway
		errResp = models.ErrorResponse{Code: models.ErrCodeGenerationFailed, Message: generationFailedMessage}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

func publicOr(message string, ok bool, fallback string) string {
	if ok && message != "" {
		return message
	}
	return fallback
}

func abortInvalidBody(c *gin.Context, err error) {
	zap.L().Debug("Rejected request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: invalidBodyMessage})
}
