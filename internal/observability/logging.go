package observability

import (
	"context"
	"log/slog"
	"os"
)

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// Context keys for logging
const (
	CorrelationID LogContextKey = "correlation_id"
)

// LoggingConfig defines which types of automated logging are enabled.
type LoggingConfig struct {
	EnableStoreLogging bool
}

var (
	// Config holds the current logging configuration.
	Config = LoggingConfig{
		EnableStoreLogging: os.Getenv("STORE_LOGGING") != "off",
	}
)

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// StoreLogger provides structured logging for persistent store operations.
type StoreLogger struct {
	backend string
	logger  *slog.Logger
}

// NewStoreLogger creates a StoreLogger for the given backend.
func NewStoreLogger(logger *slog.Logger, backend string) *StoreLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreLogger{backend: backend, logger: logger}
}

// LogRead logs a store read.
func (l *StoreLogger) LogRead(ctx context.Context, key string, found bool) {
	if !Config.EnableStoreLogging {
		return
	}
	l.logger.DebugContext(ctx, "store read",
		slog.String("backend", l.backend),
		slog.String("operation", "get"),
		slog.String("key", key),
		slog.Bool("found", found),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogUpdate logs a store write.
func (l *StoreLogger) LogUpdate(ctx context.Context, key string) {
	if !Config.EnableStoreLogging {
		return
	}
	l.logger.DebugContext(ctx, "store update",
		slog.String("backend", l.backend),
		slog.String("operation", "update"),
		slog.String("key", key),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogError logs a failed store operation.
func (l *StoreLogger) LogError(ctx context.Context, op, key string, err error) {
	l.logger.ErrorContext(ctx, "store operation failed",
		slog.String("backend", l.backend),
		slog.String("operation", op),
		slog.String("key", key),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}
