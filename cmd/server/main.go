package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"unitconv/internal/conversion/handler"
	convmetrics "unitconv/internal/conversion/metrics"
	"unitconv/internal/conversion/ports"
	"unitconv/internal/conversion/service"
	"unitconv/internal/conversion/store/cache"
	"unitconv/internal/conversion/store/history"
	"unitconv/internal/platform/config"
	"unitconv/internal/platform/httpserver"
	"unitconv/internal/platform/kafka"
	"unitconv/internal/platform/logger"
	"unitconv/internal/platform/metrics"
	"unitconv/internal/platform/postgres"
	"unitconv/internal/platform/redis"
	"unitconv/internal/platform/tracing"
	"unitconv/internal/ratelimit"
	httptransport "unitconv/internal/transport/http"
	"unitconv/pkg/platform/audit"
	"unitconv/pkg/platform/audit/publisher"
	kafkastore "unitconv/pkg/platform/audit/store/kafka"
	auditmemory "unitconv/pkg/platform/audit/store/memory"
	"unitconv/pkg/platform/circuit"
)

const (
	auditBuffer     = 1024
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

// infra holds the optional backends. Nil fields fall back to memory.
type infra struct {
	redis *redis.Client
	db    *sql.DB
	kafka *kgo.Client
}

func (i *infra) close() {
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
}

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	shutdownTracing := tracing.Init(ctx, log, cfg.ServiceName, cfg.TracingEnabled, os.Stdout)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	backends, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backends.close()

	convMetrics := convmetrics.New(prometheus.DefaultRegisterer)

	memCache := cache.NewInMemory()
	var resultCache ports.Cache = memCache
	if backends.redis != nil {
		resultCache = cache.NewResilient(
			cache.NewRedis(backends.redis),
			memCache,
			circuit.New("conversion-cache"),
			cache.WithLogger(log),
			cache.WithMetrics(convMetrics),
		)
	}

	var historyStore ports.HistoryStore = history.NewInMemory(history.DefaultCapacity)
	if backends.db != nil {
		historyStore = history.NewPostgres(backends.db)
	}

	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if backends.kafka != nil {
		auditStore = kafkastore.New(backends.kafka, cfg.Kafka.Topic)
	}
	auditPublisher := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(auditBuffer),
		publisher.WithLogger(log),
	)
	defer auditPublisher.Close()

	svc, err := service.New(resultCache, historyStore,
		service.WithLogger(log),
		service.WithAuditPublisher(auditPublisher),
		service.WithMetrics(convMetrics),
		service.WithCacheTTL(cfg.CacheTTL),
		service.WithHistoryLimit(cfg.HistoryLimit),
	)
	if err != nil {
		return err
	}

	routerOpts := httptransport.Options{
		Logger:  log,
		Metrics: metrics.New(),
		Checks:  healthChecks(backends),
	}
	var memLimiter *ratelimit.InMemory
	if !cfg.RateLimit.Disabled {
		var limiterStore ratelimit.Store
		if backends.redis != nil {
			limiterStore = ratelimit.NewRedis(backends.redis)
		} else {
			memLimiter = ratelimit.NewInMemory()
			limiterStore = memLimiter
		}
		routerOpts.RateLimit = ratelimit.NewMiddleware(limiterStore, cfg.RateLimit.Requests, cfg.RateLimit.Window, log).Handler
	}
	router := httptransport.NewRouter(routerOpts, handler.New(svc, log))
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting unitconv", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := memCache.Sweep(); n > 0 {
					log.Debug("swept expired cache entries", "count", n)
				}
				if memLimiter != nil {
					memLimiter.Sweep(cfg.RateLimit.Window)
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// connect opens every configured backend. Unconfigured ones stay nil.
func connect(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	backends := &infra{}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	backends.redis = redisClient

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		backends.close()
		return nil, err
	}
	if db != nil {
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			backends.close()
			return nil, err
		}
	}
	backends.db = db

	kafkaClient, err := kafka.New(ctx, cfg.Kafka)
	if err != nil {
		backends.close()
		return nil, err
	}
	backends.kafka = kafkaClient

	log.Info("backends configured",
		"redis", backends.redis != nil,
		"postgres", backends.db != nil,
		"kafka", backends.kafka != nil,
	)
	return backends, nil
}

func healthChecks(b *infra) map[string]httptransport.HealthCheck {
	checks := map[string]httptransport.HealthCheck{}
	if b.redis != nil {
		checks["redis"] = b.redis.Health
	}
	if b.db != nil {
		checks["postgres"] = b.db.PingContext
	}
	if b.kafka != nil {
		checks["kafka"] = b.kafka.Ping
	}
	return checks
}
