package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts a logger from the context.
// Returns zap.NewNop() if no logger is found.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// ForOp returns the context logger tagged with an operation name and optional document id.
func ForOp(ctx context.Context, op, id string) *zap.Logger {
	l := FromContext(ctx).With(zap.String("op", op))
	if id != "" {
		l = l.With(zap.String("document_id", id))
	}
	return l
}
