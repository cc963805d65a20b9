package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/delivery/http/middleware"
	"github.com/Harsh-BH/gauntlet/internal/domain"
)

const busyMessage = "Server is busy, try again later."

// respondError maps domain errors to HTTP responses. Unknown errors are logged and hidden.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidLanguage),
		errors.Is(err, domain.ErrEmptySourceCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPayloadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProblemNotFound),
		errors.Is(err, domain.ErrWrapperNotFound),
		errors.Is(err, domain.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnsupportedLanguage),
		errors.Is(err, domain.ErrUnresolvedType):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case domain.IsJudgeFailure(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": busyMessage})
	case errors.Is(err, domain.ErrPublishFailed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	case errors.Is(err, domain.ErrPlaceholderNotFound):
		// Broken catalog data, not a caller mistake.
		logger.Error(op+" failed", zap.Error(err), zap.String("request_id", c.GetString(middleware.RequestIDKey)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.ErrPlaceholderNotFound.Error()})
	default:
		logger.Error(op+" failed", zap.Error(err), zap.String("request_id", c.GetString(middleware.RequestIDKey)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindJSON decodes the request body into dst. On failure it writes the response itself:
// 413 when the body ran past the size cap, 400 otherwise.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	switch {
	case err == nil:
		return true
	case middleware.IsPayloadTooLarge(err):
		middleware.AbortPayloadTooLarge(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
	}
	return false
}
