package opfgo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with opfgo-specific helpers.
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

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000),
		})),
	}
}

// WithDataset adds a dataset name field to the logger.
func (l *Logger) WithDataset(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dataset", name),
	}
}

// LogRead logs a dataset read.
func (l *Logger) LogRead(ctx context.Context, path string, samples, labels, features int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "dataset read",
		"path", path,
		"samples", samples,
		"labels", labels,
		"features", features,
	)
}

// LogWrite logs a dataset write.
func (l *Logger) LogWrite(ctx context.Context, path string, samples, labels, features int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "dataset written",
		"path", path,
		"samples", samples,
		"labels", labels,
		"features", features,
	)
}

// LogExtract logs a prototype extraction.
func (l *Logger) LogExtract(ctx context.Context, nodes, prototypes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "prototype extraction failed",
			"nodes", nodes,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "prototypes extracted",
		"nodes", nodes,
		"prototypes", prototypes,
	)
}

// LogTransfer logs a repository upload or download. The dataset name is
// expected on the logger, see WithDataset.
func (l *Logger) LogTransfer(ctx context.Context, op string, bytes int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, op+" failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, op+" completed",
		"bytes", bytes,
		"duration", duration,
	)
}
