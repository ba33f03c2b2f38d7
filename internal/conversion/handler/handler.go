// Package handler exposes the conversion service over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"unitconv/internal/conversion/models"
	id "unitconv/pkg/domain"
	dErrors "unitconv/pkg/domain-errors"
	"unitconv/pkg/platform/httputil"
	"unitconv/pkg/requestcontext"
)

// Service defines the interface for conversion operations.
type Service interface {
	ListUnits(ctx context.Context, kind id.Kind) ([]models.UnitInfo, error)
	Convert(ctx context.Context, req models.ConvertRequest) (*models.ConvertResult, error)
	Compare(ctx context.Context, req models.CompareRequest) (*models.CompareResult, error)
	Travel(ctx context.Context, req models.TravelRequest) (*models.TravelResult, error)
	Accelerate(ctx context.Context, req models.AccelerateRequest) (*models.AccelerateResult, error)
	History(ctx context.Context, limit int) ([]models.Record, error)
}

// Handler wires conversion endpoints to the conversion service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts conversion endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/units/{dimension}", h.HandleListUnits)
	r.Post("/convert", h.HandleConvert)
	r.Post("/compare", h.HandleCompare)
	r.Post("/speed/travel", h.HandleTravel)
	r.Post("/speed/accelerate", h.HandleAccelerate)
	r.Get("/history", h.HandleHistory)
}

// HandleListUnits handles GET /units/{dimension}.
func (h *Handler) HandleListUnits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind, err := id.ParseKind(chi.URLParam(r, "dimension"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	infos, err := h.service.ListUnits(ctx, kind)
	if err != nil {
		h.fail(ctx, "failed to list units", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &UnitsResponse{Dimension: kind.String(), Units: infos})
}

// HandleConvert handles POST /convert.
func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ConvertRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Convert(ctx, req.toModel())
	if err != nil {
		h.fail(ctx, "conversion failed", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "conversion served",
		"request_id", requestID,
		"dimension", result.Kind,
		"targets", len(result.Conversions),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleCompare handles POST /compare.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CompareRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	result, err := h.service.Compare(ctx, req.toModel())
	if err != nil {
		h.fail(ctx, "comparison failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleTravel handles POST /speed/travel.
func (h *Handler) HandleTravel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[TravelRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	result, err := h.service.Travel(ctx, req.toModel())
	if err != nil {
		h.fail(ctx, "travel computation failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleAccelerate handles POST /speed/accelerate.
func (h *Handler) HandleAccelerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[AccelerateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	result, err := h.service.Accelerate(ctx, req.toModel())
	if err != nil {
		h.fail(ctx, "acceleration failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleHistory handles GET /history?limit=N.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	records, err := h.service.History(ctx, limit)
	if err != nil {
		h.fail(ctx, "failed to load history", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

// fail logs client errors at warn and everything else at error.
func (h *Handler) fail(ctx context.Context, msg string, err error) {
	level := slog.LevelError
	if httputil.StatusFor(dErrors.CodeOf(err)) < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
