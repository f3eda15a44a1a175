package coclust

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with coclust-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithRunID tags every line with the id of one matrix build or ensemble run.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithN adds the item count.
func (l *Logger) WithN(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("n", n),
	}
}

// WithWorkers adds the worker pool size.
func (l *Logger) WithWorkers(workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", workers),
	}
}

// LogMatrixBuild logs a distance matrix build.
func (l *Logger) LogMatrixBuild(ctx context.Context, n, blocks int, parallel bool, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "matrix build failed",
			"n", n,
			"parallel", parallel,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "matrix build completed",
			"n", n,
			"blocks", blocks,
			"parallel", parallel,
			"duration", duration,
		)
	}
}

// LogIteration logs one ensemble run.
func (l *Logger) LogIteration(ctx context.Context, iteration, k, clusters int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ensemble iteration failed",
			"iteration", iteration,
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "ensemble iteration completed",
			"iteration", iteration,
			"k", k,
			"clusters", clusters,
			"duration", duration,
		)
	}
}

// LogEnsemble logs a finished aggregation.
func (l *Logger) LogEnsemble(ctx context.Context, strategy string, iterations, n int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ensemble failed",
			"strategy", strategy,
			"iterations", iterations,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "ensemble completed",
			"strategy", strategy,
			"iterations", iterations,
			"n", n,
			"duration", duration,
		)
	}
}

// LogScore logs a contingency scoring. Degenerate assignments are warnings.
func (l *Logger) LogScore(ctx context.Context, categories int, accuracy float64, err error) {
	switch {
	case err == nil:
		l.InfoContext(ctx, "score completed",
			"categories", categories,
			"accuracy", accuracy,
		)
	case errorsIsDegenerate(err):
		l.WarnContext(ctx, "score skipped",
			"reason", err,
		)
	default:
		l.ErrorContext(ctx, "score failed",
			"error", err,
		)
	}
}
