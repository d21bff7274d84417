package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-matching-backend/config"
	_ "go-matching-backend/docs" // Important for Swagger
	"go-matching-backend/internal/bootstrap"
	v1 "go-matching-backend/internal/delivery/http/v1"
	"go-matching-backend/internal/scheduler"
	"go-matching-backend/pkg/logger"
	"go-matching-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Mentor Matching API
// @version         1.0
// @description     Scores seekers against candidates and serves ranked matches.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	if err := logger.Init(cfg.LogJSON, cfg.LogDebug); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	if !cfg.LogDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Log.Infow("Starting matching backend", "port", cfg.Port, "storage", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup storage, notifications, metrics and usecases
	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		logger.Log.Errorw("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	// 4. Setup Scheduler
	if cfg.MatchSchedule != "" {
		sched := scheduler.New(app.MatchUC, cfg.MatchSchedule)
		if err := sched.Start(ctx); err != nil {
			logger.Log.Errorw("Failed to start scheduler", "error", err)
			os.Exit(1)
		}
		defer sched.Stop()
	}

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Context:  ctx,
		MatchUC:  app.MatchUC,
		HealthUC: app.HealthUC,
		Validate: validation.New(),
		Gatherer: app.Registry,
		Config:   cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorw("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Infow("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("Server forced to shutdown", "error", err)
	}

	logger.Log.Infow("Server exiting")
}
