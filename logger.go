package docgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with docgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(id string, err error) {
	if err != nil {
		l.Error("insert failed",
			"id", id,
			"error", err,
		)
	} else {
		l.Debug("insert completed",
			"id", id,
		)
	}
}

// LogFind logs a find operation.
func (l *Logger) LogFind(matched int, err error) {
	if err != nil {
		l.Error("find failed",
			"error", err,
		)
	} else {
		l.Debug("find completed",
			"matched", matched,
		)
	}
}

// LogUpdate logs an update operation.
func (l *Logger) LogUpdate(updated int, err error) {
	if err != nil {
		l.Error("update failed",
			"updated", updated,
			"error", err,
		)
	} else {
		l.Debug("update completed",
			"updated", updated,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(deleted int, err error) {
	if err != nil {
		l.Error("delete failed",
			"deleted", deleted,
			"error", err,
		)
	} else {
		l.Debug("delete completed",
			"deleted", deleted,
		)
	}
}

// LogBackup logs a backup operation.
func (l *Logger) LogBackup(target string, units int, err error) {
	if err != nil {
		l.Error("backup failed",
			"target", target,
			"error", err,
		)
	} else {
		l.Info("backup completed",
			"target", target,
			"units", units,
		)
	}
}

// LogRestore logs a restore operation.
func (l *Logger) LogRestore(source string, units int, err error) {
	if err != nil {
		l.Error("restore failed",
			"source", source,
			"error", err,
		)
	} else {
		l.Info("restore completed",
			"source", source,
			"units", units,
		)
	}
}
