package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harsh-BH/gauntlet/internal/codegen"
	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/harness"
	"github.com/Harsh-BH/gauntlet/internal/judge"
)

// LanguageHandler handles language listing requests.
type LanguageHandler struct {
	languages []domain.LanguageInfo
}

// NewLanguageHandler creates a new LanguageHandler.
func NewLanguageHandler() *LanguageHandler {
	var infos []domain.LanguageInfo
	for _, lang := range domain.Languages() {
		id, judged := judge.LanguageID(lang)
		_, mergeable := harness.Placeholder(lang)
		infos = append(infos, domain.LanguageInfo{
			Name:        lang,
			Label:       codegen.Label(lang),
			JudgeID:     id,
			Submittable: judged && mergeable,
			Stubs:       codegen.Supports(lang),
		})
	}
	return &LanguageHandler{languages: infos}
}

// List handles GET /api/v1/languages
func (h *LanguageHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": h.languages,
	})
}
