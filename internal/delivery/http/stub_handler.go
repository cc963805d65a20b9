package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/usecase"
)

// StubHandler serves generated starter code.
type StubHandler struct {
	stubUC *usecase.GenerateStubUsecase
	logger *zap.Logger
}

// NewStubHandler creates a new StubHandler.
func NewStubHandler(stubUC *usecase.GenerateStubUsecase, logger *zap.Logger) *StubHandler {
	return &StubHandler{stubUC: stubUC, logger: logger}
}

// ForProblem handles GET /api/v1/problems/:id/stubs/:language
func (h *StubHandler) ForProblem(c *gin.Context) {
	lang := domain.Language(c.Param("language"))

	stub, err := h.stubUC.ForProblem(c.Request.Context(), c.Param("id"), lang)
	if err != nil {
		respondError(c, h.logger, "Generate stub", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang, "stub": stub})
}

// AllForProblem handles GET /api/v1/problems/:id/stubs
func (h *StubHandler) AllForProblem(c *gin.Context) {
	set, err := h.stubUC.AllForProblem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Generate stubs", err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// Generate handles POST /api/v1/stubs
func (h *StubHandler) Generate(c *gin.Context) {
	var req domain.StubRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Language == "" {
		c.JSON(http.StatusOK, h.stubUC.GenerateAll(req.FunctionSignature))
		return
	}

	stub, err := h.stubUC.Generate(req.FunctionSignature, req.Language)
	if err != nil {
		respondError(c, h.logger, "Generate stub", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": req.Language, "stub": stub})
}
