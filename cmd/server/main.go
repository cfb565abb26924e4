package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qubitgyan/qubitgyan-backend/internal/config"
	"github.com/qubitgyan/qubitgyan-backend/internal/database"
	"github.com/qubitgyan/qubitgyan-backend/internal/handler"
	"github.com/qubitgyan/qubitgyan-backend/internal/logger"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
	"github.com/qubitgyan/qubitgyan-backend/internal/router"
	"github.com/qubitgyan/qubitgyan-backend/internal/service"
	"github.com/qubitgyan/qubitgyan-backend/internal/validator"
	"github.com/qubitgyan/qubitgyan-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting QubitGyan Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	nodeRepo := repository.NewNodeRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)
	contextRepo := repository.NewContextRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	admissionRepo := repository.NewAdmissionRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo)
	userService := service.NewUserService(userRepo, authService)
	nodeService := service.NewNodeService(nodeRepo)
	resourceService := service.NewResourceService(resourceRepo, contextRepo)
	quizService := service.NewQuizService(cfg, quizRepo, rdb, log)
	progressService := service.NewProgressService(progressRepo)
	admissionService := service.NewAdmissionService(admissionRepo)

	notifier := service.NewRedisProgressNotifier(rdb)
	submissionService := service.NewSubmissionService(quizRepo, attemptRepo, notifier, cfg.SubmitTimeout, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, userService),
		Node:      handler.NewNodeHandler(nodeService, resourceService),
		Resource:  handler.NewResourceHandler(resourceService),
		Quiz:      handler.NewQuizHandler(quizService),
		Student:   handler.NewStudentHandler(quizService, submissionService, progressService, attemptRepo),
		Admission: handler.NewAdmissionHandler(admissionService),
		User:      handler.NewUserHandler(userService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	progressWorker := worker.NewProgressWorker(progressRepo, rdb, log)
	go progressWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, userRepo, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the worker and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
