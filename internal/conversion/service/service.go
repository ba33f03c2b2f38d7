// Package service implements the conversion operations exposed over HTTP.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"unitconv/internal/conversion/metrics"
	"unitconv/internal/conversion/models"
	"unitconv/internal/conversion/ports"
	"unitconv/internal/platform/config"
	id "unitconv/pkg/domain"
	dErrors "unitconv/pkg/domain-errors"
	"unitconv/pkg/platform/audit"
	"unitconv/pkg/platform/sentinel"
	pstrings "unitconv/pkg/platform/strings"
	"unitconv/pkg/requestcontext"
	"unitconv/pkg/units"
)

const (
	defaultParallelism = 8
	// MaxTargets bounds the targets of one Convert call.
	MaxTargets = 32
)

// Service orchestrates parsing, cached conversion, history and audit.
type Service struct {
	cache          ports.Cache
	history        ports.HistoryStore
	auditPublisher ports.AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	cacheTTL       time.Duration
	historyLimit   int
	parallelism    int
	group          singleflight.Group
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithCacheTTL sets how long converted results stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithHistoryLimit sets the default page size of History.
func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyLimit = min(n, config.MaxHistoryLimit)
		}
	}
}

// WithParallelism bounds concurrent target conversions per request.
func WithParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// New constructs a Service. cache and history are required.
func New(cache ports.Cache, history ports.HistoryStore, opts ...Option) (*Service, error) {
	if cache == nil {
		return nil, errors.New("cache is required")
	}
	if history == nil {
		return nil, errors.New("history store is required")
	}
	s := &Service{
		cache:        cache,
		history:      history,
		logger:       slog.Default(),
		tracer:       otel.Tracer("unitconv/internal/conversion"),
		cacheTTL:     config.DefaultCacheTTL,
		historyLimit: config.DefaultHistoryLimit,
		parallelism:  defaultParallelism,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListUnits returns the catalog of kind in display order.
func (s *Service) ListUnits(ctx context.Context, kind id.Kind) ([]models.UnitInfo, error) {
	_, span := s.tracer.Start(ctx, "conversion.ListUnits",
		trace.WithAttributes(attribute.String("dimension", kind.String())))
	defer span.End()

	switch kind {
	case id.KindLength:
		return unitInfos(units.Lengths()), nil
	case id.KindTime:
		return unitInfos(units.Times()), nil
	case id.KindMass:
		return unitInfos(units.Masses()), nil
	case id.KindSpeed:
		return speedUnitInfos(), nil
	}
	return nil, unsupportedKind(kind)
}

// Convert expresses one value in each requested unit. Unknown targets reject
// the whole request. Results are cached per input text and target unit.
func (s *Service) Convert(ctx context.Context, req models.ConvertRequest) (*models.ConvertResult, error) {
	start := time.Now()
	defer s.metrics.ObserveConvert(start)
	ctx, span := s.tracer.Start(ctx, "conversion.Convert",
		trace.WithAttributes(attribute.String("dimension", req.Kind.String())))
	defer span.End()

	v, err := s.parse(ctx, req.Kind, req.Value)
	if err != nil {
		return nil, err
	}

	targets := pstrings.DedupeFold(req.Targets)
	if len(targets) == 0 {
		targets = v.units
	}
	if len(targets) > MaxTargets {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d targets are allowed", MaxTargets))
	}

	jobs := make([]resolved, 0, len(targets))
	seen := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		r, ok := v.resolve(target)
		if !ok {
			s.reject(ctx, req.Kind, target, "unknown unit")
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown %s unit %q", req.Kind, target))
		}
		if _, dup := seen[r.unit]; dup {
			continue
		}
		seen[r.unit] = struct{}{}
		jobs = append(jobs, r)
	}
	span.SetAttributes(attribute.Int("targets", len(jobs)))

	conversions := make([]models.Conversion, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, job := range jobs {
		g.Go(func() error {
			c, err := s.convertCached(gctx, cacheKey(req.Kind, v.text, job.unit), job.convert)
			if err != nil {
				return err
			}
			conversions[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "conversion failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "conversion failed")
	}

	s.record(ctx, req.Kind, v.text, conversions)
	s.metrics.IncrementConversions(req.Kind.String(), "convert", len(conversions))
	s.logger.InfoContext(ctx, "value converted",
		"request_id", requestcontext.RequestID(ctx),
		"dimension", req.Kind,
		"input", v.text,
		"targets", len(conversions),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &models.ConvertResult{Kind: req.Kind, Input: v.text, Conversions: conversions}, nil
}

// Compare reports whether two quantities of the same kind are physically
// equal and how they order.
func (s *Service) Compare(ctx context.Context, req models.CompareRequest) (*models.CompareResult, error) {
	ctx, span := s.tracer.Start(ctx, "conversion.Compare",
		trace.WithAttributes(attribute.String("dimension", req.Kind.String())))
	defer span.End()

	left, err := s.parse(ctx, req.Kind, req.Left)
	if err != nil {
		return nil, err
	}
	right, err := s.parse(ctx, req.Kind, req.Right)
	if err != nil {
		return nil, err
	}
	cmp, equal, ok := left.compare(right)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "values are not comparable")
	}

	s.metrics.IncrementConversions(req.Kind.String(), "compare", 1)
	s.emit(ctx, audit.Event{
		Action:    audit.EventComparisonPerformed,
		Dimension: req.Kind.String(),
		Input:     left.text,
		Target:    right.text,
		Result:    fmt.Sprintf("%t", equal),
	})
	return &models.CompareResult{
		Kind:  req.Kind,
		Left:  left.text,
		Right: right.text,
		Equal: equal,
		Cmp:   cmp,
	}, nil
}

// Travel derives the distance covered in a duration, or the duration needed
// to cover a distance, at a constant speed.
func (s *Service) Travel(ctx context.Context, req models.TravelRequest) (*models.TravelResult, error) {
	ctx, span := s.tracer.Start(ctx, "conversion.Travel")
	defer span.End()

	speed, ok := units.ParseSpeed(req.Speed)
	if !ok {
		return nil, s.rejectInput(ctx, id.KindSpeed, req.Speed)
	}
	hasDuration := strings.TrimSpace(req.Duration) != ""
	hasDistance := strings.TrimSpace(req.Distance) != ""
	if hasDuration == hasDistance {
		return nil, dErrors.New(dErrors.CodeValidation, "exactly one of duration or distance is required")
	}

	result := &models.TravelResult{Speed: speed.String()}
	if hasDuration {
		d, ok := units.ParseDuration(req.Duration)
		if !ok {
			return nil, s.rejectInput(ctx, id.KindTime, req.Duration)
		}
		result.Duration = d.String()
		result.Distance = speed.DistanceAfter(d).String()
	} else {
		dist, ok := units.ParseDistance(req.Distance)
		if !ok {
			return nil, s.rejectInput(ctx, id.KindLength, req.Distance)
		}
		d, err := speed.TimeTaken(dist)
		if errors.Is(err, units.ErrZeroSpeed) {
			return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "a zero speed never covers a distance")
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to derive travel time")
		}
		result.Distance = dist.String()
		result.Duration = d.String()
	}

	s.metrics.IncrementConversions(id.KindSpeed.String(), "travel", 1)
	s.emit(ctx, audit.Event{
		Action:    audit.EventTravelComputed,
		Dimension: id.KindSpeed.String(),
		Input:     result.Speed,
		Result:    result.Distance + " in " + result.Duration,
	})
	return result, nil
}

// Accelerate applies a constant rate in meters per second squared to a
// speed for a duration. The result keeps the speed's unit.
func (s *Service) Accelerate(ctx context.Context, req models.AccelerateRequest) (*models.AccelerateResult, error) {
	ctx, span := s.tracer.Start(ctx, "conversion.Accelerate")
	defer span.End()

	speed, ok := units.ParseSpeed(req.Speed)
	if !ok {
		return nil, s.rejectInput(ctx, id.KindSpeed, req.Speed)
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(req.Rate))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("cannot parse rate %q", req.Rate))
	}
	d, ok := units.ParseDuration(req.Duration)
	if !ok {
		return nil, s.rejectInput(ctx, id.KindTime, req.Duration)
	}

	a := units.AccelerationOf(rate)
	final := a.Accelerate(speed, d)

	s.metrics.IncrementConversions(id.KindSpeed.String(), "accelerate", 1)
	s.emit(ctx, audit.Event{
		Action:    audit.EventAccelerationComputed,
		Dimension: id.KindSpeed.String(),
		Input:     speed.String(),
		Target:    a.String() + " for " + d.String(),
		Result:    final.String(),
	})
	return &models.AccelerateResult{
		Initial: speed.String(),
		Rate:    a.String(),
		Final:   final.String(),
		Long:    final.LongString(),
	}, nil
}

// History returns recent conversions, newest first. A non-positive limit
// selects the configured default.
func (s *Service) History(ctx context.Context, limit int) ([]models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "conversion.History")
	defer span.End()

	if limit <= 0 {
		limit = s.historyLimit
	}
	if limit > config.MaxHistoryLimit {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("limit must be at most %d", config.MaxHistoryLimit))
	}
	records, err := s.history.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load history")
	}
	return records, nil
}

func (s *Service) parse(ctx context.Context, kind id.Kind, text string) (value, error) {
	if !kind.IsValid() {
		return value{}, unsupportedKind(kind)
	}
	v, ok := parseValue(kind, text)
	if !ok {
		return value{}, s.rejectInput(ctx, kind, text)
	}
	return v, nil
}

func (s *Service) rejectInput(ctx context.Context, kind id.Kind, text string) error {
	s.reject(ctx, kind, text, "unparseable")
	return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("cannot parse %s %q", kind, text))
}

func (s *Service) reject(ctx context.Context, kind id.Kind, text, reason string) {
	s.metrics.IncrementRejected(kind.String())
	s.emit(ctx, audit.Event{
		Action:    audit.EventInputRejected,
		Dimension: kind.String(),
		Input:     text,
		Reason:    reason,
	})
}

// convertCached serves a conversion from cache, computing and storing it on a
// miss. Cache failures degrade to computing; they never fail the request.
func (s *Service) convertCached(ctx context.Context, key string, compute func() models.Conversion) (models.Conversion, error) {
	raw, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var c models.Conversion
		if jsonErr := json.Unmarshal([]byte(raw), &c); jsonErr == nil {
			s.metrics.IncrementCache("hit")
			return c, nil
		}
		s.logger.WarnContext(ctx, "discarding malformed cache entry", "key", key)
		s.metrics.IncrementCache("miss")
	case errors.Is(err, sentinel.ErrNotFound):
		s.metrics.IncrementCache("miss")
	default:
		s.metrics.IncrementCache("error")
		s.logger.WarnContext(ctx, "cache lookup failed", "key", key, "error", err)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		c := compute()
		encoded, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encode conversion: %w", err)
		}
		if err := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "cache store failed", "key", key, "error", err)
		}
		return c, nil
	})
	if err != nil {
		return models.Conversion{}, err
	}
	return v.(models.Conversion), nil
}

// record appends history and emits one audit event per conversion. Failures
// are logged; the caller already has its answer.
func (s *Service) record(ctx context.Context, kind id.Kind, input string, conversions []models.Conversion) {
	now := requestcontext.Now(ctx)
	requestID := requestcontext.RequestID(ctx)
	records := make([]models.Record, 0, len(conversions))
	for _, c := range conversions {
		records = append(records, models.Record{
			ID:        id.NewConversionID(),
			Kind:      kind,
			Input:     input,
			Target:    c.Target,
			Result:    c.Result,
			RequestID: requestID,
			CreatedAt: now,
		})
	}
	if err := s.history.Append(ctx, records...); err != nil {
		s.logger.ErrorContext(ctx, "failed to record conversion history",
			"request_id", requestID,
			"error", err,
		)
	}
	for _, c := range conversions {
		s.emit(ctx, audit.Event{
			Action:    audit.EventConversionPerformed,
			Dimension: kind.String(),
			Input:     input,
			Target:    c.Target,
			Result:    c.Result,
		})
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}

func cacheKey(kind id.Kind, input, unit string) string {
	return kind.String() + ":" + input + "->" + unit
}

func unsupportedKind(kind id.Kind) error {
	return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unsupported dimension %q", string(kind)))
}
