package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/logger"
)

func TestNewWithWriter_Development(t *testing.T) {
	cfg := &config.Config{AppEnv: "development", LogLevel: slog.LevelDebug}

	var buf bytes.Buffer
	log := logger.NewWithWriter(cfg, &buf)
	log.Debug("test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
}

func TestNewWithWriter_Production(t *testing.T) {
	cfg := &config.Config{AppEnv: "production", LogLevel: slog.LevelInfo}

	var buf bytes.Buffer
	log := logger.NewWithWriter(cfg, &buf)
	log.Info("test message", slog.String("key", "value"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	cfg := &config.Config{AppEnv: "production", LogLevel: slog.LevelInfo}

	var buf bytes.Buffer
	log := logger.NewWithWriter(cfg, &buf)

	log.Debug("debug message")
	log.Info("info message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
}

func TestNew_SetsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	log := logger.New(&config.Config{LogLevel: slog.LevelWarn})

	assert.NotNil(t, log)
	assert.Same(t, log.Handler(), slog.Default().Handler())
}
