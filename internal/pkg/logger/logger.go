package logger

import (
	"context"

	"go.uber.org/zap"
)

var global *zap.SugaredLogger

func init() {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	global = l.Sugar()
}

// Init replaces the global logger, typically from the composition root.
func Init(l *zap.Logger) {
	global = l.Sugar()
}

type ctxKey struct{}

// WithRequestID returns a context whose log lines carry the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if id, ok := ctx.Value(ctxKey{}).(string); ok {
			return global.With("request_id", id)
		}
	}
	return global
}

func Info(ctx context.Context, args ...interface{}) { fromCtx(ctx).Info(args...) }
func Warn(ctx context.Context, args ...interface{}) { fromCtx(ctx).Warn(args...) }
func Error(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Error(args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Errorf(format, args...)
}

func Fatal(ctx context.Context, args ...interface{}) { fromCtx(ctx).Fatal(args...) }
