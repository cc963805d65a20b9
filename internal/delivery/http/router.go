package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/delivery/http/middleware"
	"github.com/Harsh-BH/gauntlet/internal/usecase"
)

const maxBodyBytes = 2 << 20 // 2 MB; sources are capped at 1 MB after decoding

// RouterDeps holds everything the router wires into handlers.
type RouterDeps struct {
	CatalogUC  *usecase.CatalogUsecase
	StubUC     *usecase.GenerateStubUsecase
	ValidateUC *usecase.ValidateCodeUsecase
	SubmitUC   *usecase.SubmitSubmissionUsecase
	GetUC      *usecase.GetSubmissionUsecase
	Health     map[string]HealthCheck
	Logger     *zap.Logger

	// RateLimitPerMin limits the read-only catalog and stub routes per client IP.
	// Zero disables limiting.
	RateLimitPerMin int
}

// NewRouter creates and configures the Gin router with all routes and middleware.
// ctx bounds background goroutines owned by middleware.
func NewRouter(ctx context.Context, deps *RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(deps.Logger))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		healthHandler := NewHealthHandler(deps.Health, deps.Logger)
		v1.GET("/health", healthHandler.Health)

		langHandler := NewLanguageHandler()
		v1.GET("/languages", langHandler.List)

		// Read-only catalog and stubs (rate limited)
		catalog := v1.Group("")
		if deps.RateLimitPerMin > 0 {
			catalog.Use(middleware.RateLimiter(ctx, deps.RateLimitPerMin))
		}
		problemHandler := NewProblemHandler(deps.CatalogUC, deps.Logger)
		stubHandler := NewStubHandler(deps.StubUC, deps.Logger)
		catalog.GET("/problems", problemHandler.List)
		catalog.GET("/problems/:id", problemHandler.Get)
		catalog.GET("/problems/:id/wrappers/:language", problemHandler.Wrapper)
		catalog.GET("/problems/:id/stubs", stubHandler.AllForProblem)
		catalog.GET("/problems/:id/stubs/:language", stubHandler.ForProblem)
		catalog.POST("/stubs", middleware.PayloadLimit(maxBodyBytes), stubHandler.Generate)

		validateHandler := NewValidateHandler(deps.ValidateUC, deps.Logger)
		v1.POST("/validate", middleware.PayloadLimit(maxBodyBytes), validateHandler.Validate)

		if deps.SubmitUC != nil && deps.GetUC != nil {
			subHandler := NewSubmissionHandler(deps.SubmitUC, deps.GetUC, deps.Logger)
			v1.POST("/submissions", middleware.PayloadLimit(maxBodyBytes), subHandler.Submit)
			v1.GET("/submissions/:id", subHandler.GetByID)

			wsHandler := NewWebSocketHandler(deps.GetUC, deps.Logger)
			v1.GET("/submissions/:id/stream", wsHandler.Stream)
		}
	}

	return router
}
