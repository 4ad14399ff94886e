package database

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// ConnectDatabase opens the configured relational database and verifies the connection
func ConnectDatabase(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		return connectPostgres(cfg, logger)
	case config.DriverSQLite:
		dsn := cfg.SQLitePath
		if dsn != ":memory:" && !strings.Contains(dsn, "?") {
			dsn = "file:" + dsn + "?_foreign_keys=on"
		}
		logger.Info("🔌 [Database] Opening SQLite database...", "path", cfg.SQLitePath)
		return OpenSQLite(dsn, logger, cfg.LogLevel)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

func connectPostgres(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		cfg.PostgreSQLHost,
		cfg.PostgreSQLUser,
		cfg.PostgreSQLPassword,
		cfg.PostgreSQLDatabase,
		cfg.PostgreSQLPort,
	)

	logger.Info("🔌 [Database] Connecting to PostgreSQL...",
		"host", cfg.PostgreSQLHost,
		"port", cfg.PostgreSQLPort,
		"database", cfg.PostgreSQLDatabase,
	)

	var db *gorm.DB
	var err error
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig(logger, cfg.LogLevel))
		if err == nil {
			// Test the connection
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				err = sqlDB.Ping()
			} else {
				err = dbErr
			}
			if err == nil {
				break
			}
		}

		if i < maxRetries-1 {
			logger.Warn("⏳ [Database] Connection failed, retrying...",
				"attempt", i+1,
				"max_retries", maxRetries,
				"retry_in", retryDelay,
				"error", err,
			)
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %w", maxRetries, err)
	}

	logger.Info("✅ [Database] Database connection established")

	return db, nil
}

// OpenSQLite opens a SQLite database. An in-memory database is pinned to a
// single connection, otherwise every pooled connection would see its own empty database.
func OpenSQLite(dsn string, logger *slog.Logger, level slog.Level) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(logger, level))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if strings.Contains(dsn, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return db, nil
}

func gormConfig(logger *slog.Logger, level slog.Level) *gorm.Config {
	return &gorm.Config{
		Logger:         NewGormLogger(logger, level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// RunMigrations applies every pending embedded migration
func RunMigrations(gormDB *gorm.DB, driver string, logger *slog.Logger) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := prepareGoose(driver, logger); err != nil {
		return err
	}

	logger.Info("🔄 [Database] Running migrations...", "driver", driver)
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Info("✅ [Database] Migrations completed successfully")
	return nil
}

// MigrationStatus logs the applied state of each embedded migration
func MigrationStatus(gormDB *gorm.DB, driver string, logger *slog.Logger) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := prepareGoose(driver, logger); err != nil {
		return err
	}

	if err := goose.Status(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	return nil
}

func prepareGoose(driver string, logger *slog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&gooseLogger{logger: logger})

	dialect := "postgres"
	if driver == config.DriverSQLite {
		dialect = "sqlite3"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// gooseLogger adapts slog to goose's printf-style logger
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info("🪿 [Goose] " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error("❌ [Goose] " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
