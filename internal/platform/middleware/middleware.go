// Package middleware holds the HTTP middleware shared by every route.
package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"unitconv/internal/platform/metrics"
	dErrors "unitconv/pkg/domain-errors"
	"unitconv/pkg/platform/httputil"
	"unitconv/pkg/platform/middleware/metadata"
	"unitconv/pkg/requestcontext"
)

// Recovery turns a panic into a 500 and logs the stack.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					"request_id", requestcontext.RequestID(r.Context()),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "internal error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Logger writes one access log line per request and records its latency
// under the matched route pattern.
func Logger(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			elapsed := time.Since(start)
			m.ObserveRequest(route, strconv.Itoa(status), elapsed.Seconds())

			ctx := r.Context()
			logger.InfoContext(ctx, "http request",
				"request_id", requestcontext.RequestID(ctx),
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"client_ip", metadata.GetClientIP(ctx),
				"duration_ms", elapsed.Milliseconds(),
			)
		})
	}
}
