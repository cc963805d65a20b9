package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Harsh-BH/gauntlet/internal/bootstrap"
	"github.com/Harsh-BH/gauntlet/internal/config"
	amqpdelivery "github.com/Harsh-BH/gauntlet/internal/delivery/amqp"
	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/judge"
	"github.com/Harsh-BH/gauntlet/internal/logging"
	"github.com/Harsh-BH/gauntlet/internal/pool"
	"github.com/Harsh-BH/gauntlet/internal/repository/postgres"
	redisrepo "github.com/Harsh-BH/gauntlet/internal/repository/redis"
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

	logger.Info("Starting Gauntlet submission worker")

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

	// Connect to Redis
	redisOpts, err := goredis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Fatal("Invalid Redis URL", zap.Error(err))
	}
	redisClient := goredis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	sources, err := bootstrap.NewSources(ctx, cfg, dbPool, logger)
	if err != nil {
		logger.Fatal("Failed to initialize problem sources", zap.Error(err))
	}

	judgeClient := judge.NewClient(judge.Config{
		BaseURL: cfg.Judge.URL,
		APIKey:  cfg.Judge.APIKey,
		APIHost: cfg.Judge.APIHost,
	}, judge.NewHTTPClient(cfg.Judge.Timeout, cfg.Judge.Tracing), logger)

	// Initialize repositories and use cases
	subRepo := postgres.NewPostgresSubmissionRepository(dbPool)
	idempotencyStore := redisrepo.NewRedisIdempotencyStore(redisClient)
	validateUC := usecase.NewValidateCodeUsecase(sources.Problems, sources.Wrappers, judgeClient, logger)

	var executor pool.Executor = usecase.NewExecuteSubmissionUsecase(subRepo, idempotencyStore, validateUC, logger)
	if cfg.Judge.Tracing {
		executor = pool.Traced("gauntlet-worker", executor)
	}

	messages := make(chan *domain.SubmissionMessage, cfg.Worker.PoolSize)

	consumer, err := amqpdelivery.NewConsumer(cfg.RabbitMQ.URL, cfg.Worker.PoolSize, messages, logger)
	if err != nil {
		logger.Fatal("Failed to initialize AMQP consumer", zap.Error(err))
	}
	defer consumer.Close()
	logger.Info("Connected to RabbitMQ")

	workerPool := pool.NewWorkerPool(cfg.Worker.PoolSize, messages, executor, logger)
	workerPool.Start(ctx)

	metricsSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Worker.MetricsPort),
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := consumer.Start(gctx); err != nil {
			return fmt.Errorf("amqp consumer: %w", err)
		}
		return nil
	})

	if cfg.Problems.WatchCatalog {
		g.Go(func() error {
			if err := sources.WatchCatalog(gctx); err != nil {
				return fmt.Errorf("catalog watcher: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Metrics server listening", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down worker...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker exited with error", zap.Error(err))
	}

	// Workers stop on ctx; an errgroup failure must stop them too.
	cancel()
	workerPool.Stop()

	logger.Info("Worker stopped")
}
