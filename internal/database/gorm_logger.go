package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger routes gorm's query log through slog
type gormLogger struct {
	logger        *slog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger maps the application log level onto gorm's: SQL statements at DEBUG,
// slow queries at WARN and failed queries at ERROR
func NewGormLogger(logger *slog.Logger, level slog.Level) gormlogger.Interface {
	gormLevel := gormlogger.Warn
	switch {
	case level <= slog.LevelDebug:
		gormLevel = gormlogger.Info
	case level >= slog.LevelError:
		gormLevel = gormlogger.Error
	}

	return &gormLogger{
		logger:        logger,
		level:         gormLevel,
		slowThreshold: slowQueryThreshold,
	}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cloned := *l
	cloned.level = level
	return &cloned
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.InfoContext(ctx, "ℹ️ [Gorm] "+fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.WarnContext(ctx, "⚠️ [Gorm] "+fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger.ErrorContext(ctx, "❌ [Gorm] "+fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	// Not-found is an expected outcome, the repositories translate it
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.logger.ErrorContext(ctx, "❌ [Gorm] Query failed",
			"sql", sql,
			"rows", rows,
			"elapsed", elapsed,
			"error", err,
		)
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.WarnContext(ctx, "🐢 [Gorm] Slow query",
			"sql", sql,
			"rows", rows,
			"elapsed", elapsed,
			"threshold", l.slowThreshold,
		)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.DebugContext(ctx, "🔍 [Gorm] Query",
			"sql", sql,
			"rows", rows,
			"elapsed", elapsed,
		)
	}
}
