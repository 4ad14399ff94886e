package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/logger"
)

var errMemoryBackend = errors.New("STORAGE_BACKEND=memory has no database; set STORAGE_BACKEND=database")

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(cfg *config.Config, db *gorm.DB, logger *slog.Logger) error {
			return database.RunMigrations(db, cfg.DatabaseDriver, logger)
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(cfg *config.Config, db *gorm.DB, logger *slog.Logger) error {
			return database.MigrationStatus(db, cfg.DatabaseDriver, logger)
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
}

// withDatabase loads config, connects to the configured database and runs fn
func withDatabase(fn func(cfg *config.Config, db *gorm.DB, logger *slog.Logger) error) error {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.StorageBackend != config.StorageDatabase {
		return errMemoryBackend
	}

	appLogger := logger.New(cfg)
	db, err := database.ConnectDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	return fn(cfg, db, appLogger)
}
