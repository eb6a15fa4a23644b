package lunavdb

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with lunavdb-specific helpers.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogAdd logs a single-item insert.
func (l *Logger) LogAdd(ctx context.Context, id string, key uint64, err error) {
	if err != nil {
		l.WarnContext(ctx, "add failed",
			"id", id,
			"key", key,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "add completed",
			"id", id,
			"key", key,
		)
	}
}

// LogIndex logs a full rebuild.
func (l *Logger) LogIndex(ctx context.Context, items, entries int) {
	l.InfoContext(ctx, "index rebuilt",
		"items", items,
		"entries", entries,
	)
}

// LogRemove logs a remove call. missing is the number of ids not found.
func (l *Logger) LogRemove(ctx context.Context, requested, missing int, err error) {
	if err != nil {
		l.WarnContext(ctx, "remove rejected",
			"requested", requested,
			"missing", missing,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "remove completed",
			"requested", requested,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogDump logs a serialization.
func (l *Logger) LogDump(ctx context.Context, entries, bytes int, codec string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dump failed",
			"entries", entries,
			"codec", codec,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dump completed",
			"entries", entries,
			"bytes", bytes,
			"codec", codec,
		)
	}
}

// LogLoad logs a deserialization.
func (l *Logger) LogLoad(ctx context.Context, entries, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"entries", entries,
			"bytes", bytes,
		)
	}
}

// LogInconsistent reports a tree/map size divergence.
func (l *Logger) LogInconsistent(ctx context.Context, treeSize, mapSize int) {
	l.ErrorContext(ctx, "index inconsistent",
		"tree_size", treeSize,
		"map_size", mapSize,
	)
}
