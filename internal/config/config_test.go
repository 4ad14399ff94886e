package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
)

func TestLoadConfig_Success(t *testing.T) {
	t.Setenv("API_SERVICE_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "DATABASE")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("ACCESS_TOKEN_EXPIRATION", "60")
	t.Setenv("LOGIN_RATE_LIMIT", "3")

	cfg := config.LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "9090", cfg.ApiServicePort)
	assert.Equal(t, config.StorageDatabase, cfg.StorageBackend)
	assert.Equal(t, config.DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, int64(60), cfg.AccessTokenExpiration)
	assert.Equal(t, int64(3), cfg.LoginRateLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := config.LoadConfig()

	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ApiServicePort)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, int64(900), cfg.AccessTokenExpiration)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("REFRESH_TOKEN_EXPIRATION", "invalid")

	cfg := config.LoadConfig()

	// Should use default when invalid
	assert.Equal(t, int64(604800), cfg.RefreshTokenExpiration)
}

func TestLoadConfig_LogLevel(t *testing.T) {
	tests := []struct {
		env  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			assert.Equal(t, tt.want, config.LoadConfig().LogLevel)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "memory backend",
			cfg:  config.Config{StorageBackend: config.StorageMemory, JWTSecret: "s"},
		},
		{
			name: "sqlite backend",
			cfg:  config.Config{StorageBackend: config.StorageDatabase, DatabaseDriver: config.DriverSQLite, JWTSecret: "s"},
		},
		{
			name:    "unknown backend",
			cfg:     config.Config{StorageBackend: "files", JWTSecret: "s"},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     config.Config{StorageBackend: config.StorageDatabase, DatabaseDriver: "mysql", JWTSecret: "s"},
			wantErr: true,
		},
		{
			name:    "empty secret",
			cfg:     config.Config{StorageBackend: config.StorageMemory},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
