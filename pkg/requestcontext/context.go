// Package requestcontext provides HTTP-independent accessors for request-scoped values.
//
// Middleware sets the values; services and stores read them without importing
// net/http. Workers, the CLI, and tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithRequestID(ctx, "req-1")
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	traceIDKey     struct{}
	requestTimeKey struct{}
)

// Exported keys for tests that need context.WithValue directly.
var (
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyTraceID     = traceIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// RequestID returns the request ID, or "" when unset.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// TraceID returns the trace ID, or "" when unset.
func TraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(ContextKeyTraceID).(string); ok {
		return traceID
	}
	return ""
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ContextKeyTraceID, traceID)
}

// Now returns the request-scoped time, falling back to time.Now() outside
// HTTP requests.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
