package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/usecase"
)

// ValidateHandler runs synchronous merge, judge and verdict round trips.
type ValidateHandler struct {
	validateUC *usecase.ValidateCodeUsecase
	logger     *zap.Logger
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(validateUC *usecase.ValidateCodeUsecase, logger *zap.Logger) *ValidateHandler {
	return &ValidateHandler{validateUC: validateUC, logger: logger}
}

// Validate handles POST /api/v1/validate
func (h *ValidateHandler) Validate(c *gin.Context) {
	var req domain.ValidateRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.validateUC.Execute(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, "Validate", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
