package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/api"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/repository"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/service"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/handler"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/logger"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/middleware"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/worker"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Config
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// 2. Logger
	appLogger := logger.New(cfg)
	appLogger.Info("🚀 [Go] Starting HBnB API...",
		"environment", cfg.AppEnv,
		"storage", cfg.StorageBackend,
	)

	// 3. Repositories
	repos, closeStore, err := openRepositories(cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeStore()

	// 4. Services
	facade := service.NewFacade(repos, appLogger)
	authService := service.NewAuthService(facade, repos.Tokens, cfg, appLogger)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := bootstrapAdmin(facade, service.UserInput{Email: cfg.AdminEmail, Password: cfg.AdminPassword}, appLogger); err != nil {
			return err
		}
	}

	// 5. Rate Limiter
	var rateLimiter middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	} else {
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg, appLogger)
	}
	defer rateLimiter.Close()

	// 6. Background workers
	pool := worker.NewPool(appLogger)
	pool.Every("refresh-token-cleanup", time.Duration(cfg.TokenCleanupInterval)*time.Second, func(ctx context.Context) error {
		_, err := authService.PurgeExpiredTokens()
		return err
	})

	// 7. Handlers, Middleware & Router
	r := api.SetupRouter(
		handler.NewAuthHandler(authService, appLogger),
		handler.NewUserHandler(facade, authService, appLogger),
		handler.NewAmenityHandler(facade, appLogger),
		handler.NewPlaceHandler(facade, appLogger),
		handler.NewReviewHandler(facade, appLogger),
		middleware.NewAuthMiddleware(authService, appLogger),
		rateLimiter,
		appLogger,
	)

	// 8. HTTP Server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ApiServicePort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		pool.Shutdown(shutdownTimeout)
		if err != nil {
			appLogger.Error("❌ HTTP Server failed", "error", err)
		}
		return err
	case <-ctx.Done():
	}

	appLogger.Info("🛑 [Go] Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("❌ HTTP Server shutdown failed", "error", err)
	}
	pool.Shutdown(shutdownTimeout)

	appLogger.Info("👋 [Go] Server stopped")
	return nil
}

// openRepositories builds the configured storage backend and returns a closer for it
func openRepositories(cfg *config.Config, logger *slog.Logger) (*repository.Repositories, func(), error) {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Info("💾 [Storage] Using in-memory repositories")
		return repository.NewMemoryRepositories(), func() {}, nil
	}

	db, err := database.ConnectDatabase(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if err := database.RunMigrations(db, cfg.DatabaseDriver, logger); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("💾 [Storage] Using relational repositories", "driver", cfg.DatabaseDriver)
	return repository.NewGormRepositories(db), closeDB, nil
}

func bootstrapAdmin(facade service.Facade, input service.UserInput, logger *slog.Logger) error {
	admin, created, err := service.EnsureAdmin(facade, input)
	if err != nil {
		logger.Error("❌ [Admin] Failed to bootstrap administrator", "email", input.Email, "error", err)
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		logger.Info("👑 [Admin] Administrator created", "user_id", admin.ID, "email", admin.Email)
	} else {
		logger.Info("👑 [Admin] Administrator ready", "user_id", admin.ID, "email", admin.Email)
	}
	return nil
}
