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

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/api/swagger"
	"github.com/noah-isme/campus-events-api/internal/handler"
	internalmiddleware "github.com/noah-isme/campus-events-api/internal/middleware"
	"github.com/noah-isme/campus-events-api/internal/repository"
	"github.com/noah-isme/campus-events-api/internal/service"
	"github.com/noah-isme/campus-events-api/pkg/cache"
	"github.com/noah-isme/campus-events-api/pkg/config"
	"github.com/noah-isme/campus-events-api/pkg/database"
	"github.com/noah-isme/campus-events-api/pkg/jobs"
	"github.com/noah-isme/campus-events-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-events-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-events-api/pkg/middleware/requestid"
	"github.com/noah-isme/campus-events-api/pkg/storage"
)

// @title Campus Events API
// @version 1.0.0
// @description College event registration, attendance and feedback.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logr.Fatal("failed to apply schema", zap.Error(err))
		}
		logr.Info("schema applied")
	}

	var (
		redisClient *redis.Client
		cacheRepo   service.CacheRepository
	)
	if cfg.Catalog.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, "campus")
		}
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	tx := database.NewTxRunner(db)

	collegeRepo := repository.NewCollegeRepository(db)
	eventRepo := repository.NewEventRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	reportRepo := repository.NewReportRepository(db)
	exportRepo := repository.NewExportJobRepository(db)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, cacheRepo != nil)
	collegeSvc := service.NewCollegeService(collegeRepo, cacheSvc, validate, logr)
	eventSvc := service.NewEventService(eventRepo, collegeRepo, registrationRepo, tx, cacheSvc, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, collegeRepo, tx, validate, logr)
	registrationSvc := service.NewRegistrationService(registrationRepo, eventRepo, studentRepo, tx, metrics, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, registrationRepo, eventRepo, metrics, logr)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, attendanceRepo, metrics, logr)
	reportSvc := service.NewReportService(reportRepo, metrics, logr)

	var (
		exportHandler *handler.ExportHandler
		exportQueue   *jobs.Queue
	)
	if cfg.Exports.Enabled {
		exportHandler, exportQueue, err = startExports(ctx, cfg, exportRepo, reportSvc, metrics, validate, logr)
		if err != nil {
			logr.Fatal("failed to start exports", zap.Error(err))
		}
	}

	checks := map[string]handler.Pinger{"postgres": db}
	if redisClient != nil {
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}

	h := routes{
		colleges:      handler.NewCollegeHandler(collegeSvc),
		events:        handler.NewEventHandler(eventSvc),
		students:      handler.NewStudentHandler(studentSvc),
		registrations: handler.NewRegistrationHandler(registrationSvc),
		attendance:    handler.NewAttendanceHandler(attendanceSvc),
		feedback:      handler.NewFeedbackHandler(feedbackSvc),
		reports:       handler.NewReportHandler(reportSvc),
		exports:       exportHandler,
		ops:           handler.NewMetricsHandler(metrics, checks),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metrics))

	h.register(r, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		swagger.BasePath = cfg.APIPrefix
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	if exportQueue != nil {
		exportQueue.Stop()
	}
}

// startExports wires the export pipeline and starts its worker queue, recovery and cleanup loops.
// The caller stops the returned queue once the HTTP server has shut down.
func startExports(ctx context.Context, cfg *config.Config, repo *repository.ExportJobRepository, reports *service.ReportService, metrics *service.MetricsService, validate *validator.Validate, logr *zap.Logger) (*handler.ExportHandler, *jobs.Queue, error) {
	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, nil, err
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exporter := service.NewExportService(reports, files, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr)

	worker := service.NewExportWorker(repo, exporter, metrics, logr)
	queue := jobs.NewQueue("exports", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		OnGiveUp:   worker.GiveUp,
		Logger:     logr,
	})
	queue.Start(context.WithoutCancel(ctx))

	jobSvc := service.NewExportJobService(repo, queue, exporter, metrics, validate, logr, service.ExportJobConfig{
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	})
	jobSvc.RecoverPending(ctx)
	jobSvc.StartCleanup(ctx)

	return handler.NewExportHandler(jobSvc), queue, nil
}
