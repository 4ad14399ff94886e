package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends selectable through STORAGE_BACKEND
const (
	StorageMemory   = "memory"
	StorageDatabase = "database"
)

// Database drivers selectable through DATABASE_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppEnv                 string
	LogLevel               slog.Level
	ApiServicePort         string
	StorageBackend         string
	DatabaseDriver         string
	SQLitePath             string
	PostgreSQLHost         string
	PostgreSQLPort         int64
	PostgreSQLUser         string
	PostgreSQLPassword     string
	PostgreSQLDatabase     string
	JWTSecret              string
	AccessTokenExpiration  int64
	RefreshTokenExpiration int64
	RedisHost              string
	RedisPort              int64
	RedisPassword          string
	RedisDatabase          int64
	LoginRateLimit         int64
	LoginRateWindow        int64 // Window length in seconds
	TokenCleanupInterval   int64 // Expired refresh token sweep interval in seconds
	AdminEmail             string
	AdminPassword          string
}

func LoadConfig() *Config {
	// A missing .env file is not an error; real environment variables always win.
	_ = godotenv.Load()

	return &Config{
		AppEnv:                 getEnv("APP_ENV", "development"),   // Default development
		LogLevel:               getLogLevel(),                      // Default INFO
		ApiServicePort:         getEnv("API_SERVICE_PORT", "8080"), // Default 8080
		StorageBackend:         strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		DatabaseDriver:         strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite)),
		SQLitePath:             getEnv("SQLITE_PATH", "hbnb.db"),                  // Default hbnb.db
		PostgreSQLHost:         getEnv("POSTGRESQL_HOST", "db"),                   // Default db
		PostgreSQLPort:         getEnvAsInt64("POSTGRESQL_PORT", 5432),            // Default 5432
		PostgreSQLUser:         getEnv("POSTGRESQL_USER", "hbnb_user"),            // Default user
		PostgreSQLPassword:     getEnv("POSTGRESQL_PASSWORD", "hbnb_password"),    // Default password
		PostgreSQLDatabase:     getEnv("POSTGRESQL_DATABASE", "hbnb_db"),          // Default database name
		JWTSecret:              getEnv("JWT_SECRET", "hbnb_secret"),               // Default secret key
		AccessTokenExpiration:  getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 900),     // Default 15 minutes
		RefreshTokenExpiration: getEnvAsInt64("REFRESH_TOKEN_EXPIRATION", 604800), // Default 7 days
		RedisHost:              getEnv("REDIS_HOST", "redis"),                     // Default redis
		RedisPort:              getEnvAsInt64("REDIS_PORT", 6379),                 // Default 6379
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),                      // Default empty
		RedisDatabase:          getEnvAsInt64("REDIS_DATABASE", 0),                // Default 0
		LoginRateLimit:         getEnvAsInt64("LOGIN_RATE_LIMIT", 10),             // Default 10 attempts
		LoginRateWindow:        getEnvAsInt64("LOGIN_RATE_WINDOW", 60),            // Default 1 minute
		TokenCleanupInterval:   getEnvAsInt64("TOKEN_CLEANUP_INTERVAL", 3600),     // Default 1 hour
		AdminEmail:             getEnv("ADMIN_EMAIL", ""),                         // Default disabled
		AdminPassword:          getEnv("ADMIN_PASSWORD", ""),                      // Default disabled
	}
}

// Validate rejects unknown storage backend or driver names
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory, StorageDatabase:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want %q or %q)", c.StorageBackend, StorageMemory, StorageDatabase)
	}

	if c.StorageBackend == StorageDatabase {
		switch c.DatabaseDriver {
		case DriverPostgres, DriverSQLite:
		default:
			return fmt.Errorf("unknown DATABASE_DRIVER %q (want %q or %q)", c.DatabaseDriver, DriverPostgres, DriverSQLite)
		}
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
