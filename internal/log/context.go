package log

import (
	"context"
	"log/slog"
)

type contextKeyType struct{}

var contextKey = contextKeyType{}

// WithContext stores logger, extended with args, in the returned context.
func WithContext(ctx context.Context, logger *slog.Logger, args ...interface{}) context.Context {
	if len(args) > 0 {
		logger = logger.With(args...)
	}
	return context.WithValue(ctx, contextKey, logger)
}

// With extends the logger already carried by ctx.
func With(ctx context.Context, args ...interface{}) context.Context {
	return WithContext(ctx, FromContext(ctx), args...)
}

// FromContext falls back to slog.Default when ctx carries no logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
