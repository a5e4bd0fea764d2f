package web

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	traceIDKey ctxKey = iota
	loggerKey
)

// WithTrace stores the trace id and a logger tagged with it.
func WithTrace(ctx context.Context, traceID string, logger *zap.Logger) context.Context {
	ctx = context.WithValue(ctx, traceIDKey, traceID)
	return context.WithValue(ctx, loggerKey, logger.With(zap.String("traceId", traceID)))
}

func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// Logger returns the request logger, or a no-op logger outside a request.
func Logger(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithLogger replaces the request logger, keeping the trace id.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}
