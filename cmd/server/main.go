package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/bootstrap"
	"github.com/Harsh-BH/gauntlet/internal/config"
	handler "github.com/Harsh-BH/gauntlet/internal/delivery/http"
	"github.com/Harsh-BH/gauntlet/internal/judge"
	"github.com/Harsh-BH/gauntlet/internal/logging"
	"github.com/Harsh-BH/gauntlet/internal/publisher"
	"github.com/Harsh-BH/gauntlet/internal/repository/postgres"
	"github.com/Harsh-BH/gauntlet/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Gauntlet API server")

	gin.SetMode(cfg.Server.GinMode)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Connect to PostgreSQL
	dbPool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping PostgreSQL", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL")

	// Connect to Redis (health reporting only; the worker owns the locks)
	redisOpts, err := goredis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Fatal("Failed to parse Redis URL", zap.Error(err))
	}
	rdb := goredis.NewClient(redisOpts)
	defer rdb.Close()

	// Initialize RabbitMQ publisher
	pub, err := publisher.NewRabbitMQPublisher(cfg.RabbitMQ.URL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize RabbitMQ publisher", zap.Error(err))
	}
	defer pub.Close()
	logger.Info("Connected to RabbitMQ")

	// Problem catalog and wrapper templates
	sources, err := bootstrap.NewSources(ctx, cfg, dbPool, logger)
	if err != nil {
		logger.Fatal("Failed to initialize problem sources", zap.Error(err))
	}
	logger.Info("Problem sources ready",
		zap.String("problems", cfg.Problems.Source),
		zap.String("wrappers", cfg.Wrappers.Source),
	)
	if cfg.Problems.WatchCatalog {
		go func() {
			if err := sources.WatchCatalog(ctx); err != nil {
				logger.Error("Catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	judgeClient := judge.NewClient(judge.Config{
		BaseURL: cfg.Judge.URL,
		APIKey:  cfg.Judge.APIKey,
		APIHost: cfg.Judge.APIHost,
	}, judge.NewHTTPClient(cfg.Judge.Timeout, cfg.Judge.Tracing), logger)

	// Initialize repository and use cases
	subRepo := postgres.NewPostgresSubmissionRepository(dbPool)

	router := handler.NewRouter(ctx, &handler.RouterDeps{
		CatalogUC:  usecase.NewCatalogUsecase(sources.Problems, sources.Wrappers, logger),
		StubUC:     usecase.NewGenerateStubUsecase(sources.Problems, logger),
		ValidateUC: usecase.NewValidateCodeUsecase(sources.Problems, sources.Wrappers, judgeClient, logger),
		SubmitUC:   usecase.NewSubmitSubmissionUsecase(subRepo, sources.Problems, pub, logger),
		GetUC:      usecase.NewGetSubmissionUsecase(subRepo, logger),
		Health: map[string]handler.HealthCheck{
			"postgres": dbPool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Logger:          logger,
		RateLimitPerMin: cfg.Server.RateLimit,
	})

	var h http.Handler = router
	if cfg.Judge.Tracing {
		h = xray.Handler(xray.NewFixedSegmentNamer("gauntlet-api"), router)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("API server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down API server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("API server stopped")
}
