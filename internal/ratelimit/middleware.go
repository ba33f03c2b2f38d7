package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	dErrors "unitconv/pkg/domain-errors"
	"unitconv/pkg/platform/httputil"
	"unitconv/pkg/platform/middleware/metadata"
	"unitconv/pkg/requestcontext"
)

// Middleware limits each client IP to limit requests per window. Store
// errors let the request through.
type Middleware struct {
	store  Store
	limit  int
	window time.Duration
	logger *slog.Logger
}

func NewMiddleware(store Store, limit int, window time.Duration, logger *slog.Logger) *Middleware {
	return &Middleware{store: store, limit: limit, window: window, logger: logger}
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := metadata.GetClientIP(ctx)

		result, err := m.store.Allow(ctx, "ip:"+ip, m.limit, m.window)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to check rate limit",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retry := int(math.Ceil(time.Until(result.ResetAt).Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"client_ip", ip,
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
