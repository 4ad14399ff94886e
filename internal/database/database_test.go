package database_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/logger"
)

func TestConnectDatabase_SQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		SQLitePath:     ":memory:",
		LogLevel:       slog.LevelError,
	}
	log := logger.Discard()

	db, err := database.ConnectDatabase(cfg, log)
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(db, cfg.DatabaseDriver, log))

	for _, table := range []string{"users", "places", "amenities", "place_amenities", "reviews", "refresh_tokens"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}

	// Running again is a no-op
	require.NoError(t, database.RunMigrations(db, cfg.DatabaseDriver, log))
	require.NoError(t, database.MigrationStatus(db, cfg.DatabaseDriver, log))
}

func TestConnectDatabase_UnknownDriver(t *testing.T) {
	_, err := database.ConnectDatabase(&config.Config{DatabaseDriver: "oracle"}, logger.Discard())
	assert.Error(t, err)
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	gl := database.NewGormLogger(log, slog.LevelDebug)

	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Contains(t, buf.String(), "SELECT 1")

	buf.Reset()
	gl.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.NotContains(t, buf.String(), "Query failed")

	buf.Reset()
	gl.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))
	assert.Contains(t, buf.String(), "Query failed")
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	gl.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))
	assert.Empty(t, buf.String())
}

func TestGormLogger_InfoQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	gl := database.NewGormLogger(log, slog.LevelInfo)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
	gl.Info(context.Background(), "hello %s", "gorm")

	assert.Empty(t, buf.String())
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.ParseInt(mr.Port(), 10, 64)
	require.NoError(t, err)

	client, err := database.NewRedisClient(&config.Config{RedisHost: mr.Host(), RedisPort: port}, logger.Discard())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	value, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host := mr.Host()
	port, _ := strconv.ParseInt(mr.Port(), 10, 64)
	mr.Close()

	_, err := database.NewRedisClient(&config.Config{RedisHost: host, RedisPort: port}, logger.Discard())
	assert.Error(t, err)
}
