package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/service"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/logger"
)

func TestOpenRepositories(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"memory", &config.Config{StorageBackend: config.StorageMemory}},
		{"sqlite", &config.Config{StorageBackend: config.StorageDatabase, DatabaseDriver: config.DriverSQLite, SQLitePath: ":memory:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, closeStore, err := openRepositories(tt.cfg, logger.Discard())
			require.NoError(t, err)
			defer closeStore()

			facade := service.NewFacade(repos, logger.Discard())
			require.NoError(t, bootstrapAdmin(facade, service.UserInput{Email: "admin@hbnb.io", Password: "pw"}, logger.Discard()))
			require.NoError(t, bootstrapAdmin(facade, service.UserInput{Email: "admin@hbnb.io", Password: "pw"}, logger.Discard()))

			admin, err := facade.GetUserByEmail("admin@hbnb.io")
			require.NoError(t, err)
			assert.True(t, admin.IsAdmin)
		})
	}
}

func TestOpenRepositories_UnknownDriver(t *testing.T) {
	_, _, err := openRepositories(&config.Config{StorageBackend: config.StorageDatabase, DatabaseDriver: "oracle"}, logger.Discard())
	assert.Error(t, err)
}

func TestBootstrapAdmin_InvalidEmail(t *testing.T) {
	repos, closeStore, err := openRepositories(&config.Config{StorageBackend: config.StorageMemory}, logger.Discard())
	require.NoError(t, err)
	defer closeStore()

	err = bootstrapAdmin(service.NewFacade(repos, logger.Discard()), service.UserInput{Email: "nope", Password: "pw"}, logger.Discard())
	assert.Error(t, err)
}
