package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/usecase"
)

// ProblemHandler serves the problem catalog.
type ProblemHandler struct {
	catalogUC *usecase.CatalogUsecase
	logger    *zap.Logger
}

// NewProblemHandler creates a new ProblemHandler.
func NewProblemHandler(catalogUC *usecase.CatalogUsecase, logger *zap.Logger) *ProblemHandler {
	return &ProblemHandler{catalogUC: catalogUC, logger: logger}
}

// List handles GET /api/v1/problems
func (h *ProblemHandler) List(c *gin.Context) {
	problems, err := h.catalogUC.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "List problems", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"problems": problems})
}

// Get handles GET /api/v1/problems/:id
func (h *ProblemHandler) Get(c *gin.Context) {
	problem, err := h.catalogUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Get problem", err)
		return
	}
	c.JSON(http.StatusOK, problem)
}

// Wrapper handles GET /api/v1/problems/:id/wrappers/:language
func (h *ProblemHandler) Wrapper(c *gin.Context) {
	id := c.Param("id")
	lang := domain.Language(c.Param("language"))

	wrapper, err := h.catalogUC.Wrapper(c.Request.Context(), id, lang)
	if err != nil {
		respondError(c, h.logger, "Get wrapper", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"problem_id": id,
		"language":   lang,
		"wrapper":    wrapper,
	})
}
