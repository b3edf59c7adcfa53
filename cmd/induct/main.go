package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/induct-hq/induct/internal/app"
	"github.com/induct-hq/induct/internal/audit"
	audithttp "github.com/induct-hq/induct/internal/audit/http"
	"github.com/induct-hq/induct/internal/observability"
	"github.com/induct-hq/induct/internal/platform/cache"
	"github.com/induct-hq/induct/internal/platform/clock"
	"github.com/induct-hq/induct/internal/platform/db"
	"github.com/induct-hq/induct/internal/providers"
	"github.com/induct-hq/induct/internal/schools"
	"github.com/induct-hq/induct/internal/teachers"
	"github.com/induct-hq/induct/internal/training"
	traininghttp "github.com/induct-hq/induct/internal/training/http"
	"github.com/induct-hq/induct/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	queueClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("queue client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Warn("queue client close", slog.Any("error", err))
		}
	}()

	clk := clock.System{}
	metrics := observability.NewMetrics()

	teacherService := teachers.NewService(teachers.NewRepository(dbpool))
	schoolService := schools.NewService(schools.NewRepository(dbpool))
	providerService := providers.NewService(providers.NewRepository(dbpool))

	recorder := audit.NewRecorder(queueClient, clk, logger)

	engine := training.NewEngine(
		training.NewRepository(dbpool),
		teacherService,
		schoolService,
		providerService,
		recorder,
		clk,
		metrics,
		logger,
	)
	trainingHandler := traininghttp.NewHandler(logger, engine)

	auditCache := audit.NewCache(redisClient, cfg.AuditCacheTTL)
	auditService := audit.NewService(audit.NewRepository(dbpool), auditCache)
	auditHandler := audithttp.NewHandler(logger, auditService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		TrainingHandler: trainingHandler,
		AuditHandler:    auditHandler,
		JobHandler:      jobHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
