// Package requestid attaches request and trace identifiers to each request.
package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"unitconv/pkg/requestcontext"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderTraceID   = "X-Trace-Id"
)

// Middleware reuses inbound identifiers when present. The trace ID falls back
// to the active span, then to a fresh UUID. Both are echoed as response headers.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		traceID := strings.TrimSpace(r.Header.Get(HeaderTraceID))
		if traceID == "" {
			if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
				traceID = sc.TraceID().String()
			}
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		ctx = requestcontext.WithTraceID(ctx, traceID)
		w.Header().Set(HeaderRequestID, reqID)
		w.Header().Set(HeaderTraceID, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
