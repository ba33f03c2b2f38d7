// Package httptransport assembles the public HTTP surface.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"unitconv/internal/platform/metrics"
	"unitconv/internal/platform/middleware"
	"unitconv/pkg/platform/httputil"
	"unitconv/pkg/platform/middleware/metadata"
	"unitconv/pkg/platform/middleware/requestid"
	"unitconv/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Options configures NewRouter. Nil fields are skipped.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Checks  map[string]HealthCheck
	// RateLimit wraps module routes only; /health and /metrics stay open.
	RateLimit func(http.Handler) http.Handler
}

// NewRouter wires shared middleware, /health, /metrics and every module.
func NewRouter(opts Options, modules ...Registrar) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientIP)
	r.Use(middleware.Logger(logger, opts.Metrics))
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/health", healthHandler(opts.Checks))
	r.Handle("/metrics", metrics.Handler())
	r.Group(func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit)
		}
		for _, module := range modules {
			module.Register(r)
		}
	})
	return otelhttp.NewHandler(r, "unitconv.http")
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		if len(names) > 0 {
			resp.Checks = make(map[string]string, len(names))
		}
		status := http.StatusOK
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
