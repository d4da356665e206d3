package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lenskeep/camvault-be/internal/api"
	"github.com/lenskeep/camvault-be/internal/auth"
	"github.com/lenskeep/camvault-be/internal/config"
	"github.com/lenskeep/camvault-be/internal/database"
	"github.com/lenskeep/camvault-be/internal/logger"
	"github.com/lenskeep/camvault-be/internal/monitoring"
	"github.com/lenskeep/camvault-be/internal/repository"
	"github.com/lenskeep/camvault-be/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	if cfg.JWTSecret == "changeme" {
		log.Warn().Msg("JWT_SECRET is not set, using insecure default")
	}

	// Ensure the base directory for camera images exists
	if err := os.MkdirAll(cfg.ImagePath, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create image directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up repositories and services
	userRepo := repository.NewUserRepository(db)
	cameraRepo := repository.NewCameraRepository(db)

	hasher := auth.NewHasher(cfg.BcryptCost)
	codec := auth.NewCodec(cfg.JWTSecret)

	authService := services.NewAuthService(userRepo, hasher, codec, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(userRepo, hasher)
	cameraService := services.NewCameraService(cameraRepo, cfg.ImagePath)

	// Set up and run the background valuation tracker
	tracker, err := monitoring.NewValuationTracker(cameraRepo, cfg.ValuationCron)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid valuation schedule")
	}
	tracker.Start()

	// Set up router
	router := api.NewRouter(authService, userService, cameraService, cfg.CORSOrigins, cfg.ImagePath)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	tracker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
