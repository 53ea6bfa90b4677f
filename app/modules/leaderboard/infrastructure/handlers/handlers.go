package leaderboardhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	leaderboardservice "github.com/sh4ner/streamerpulse/app/modules/leaderboard/application"
	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	"github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/upstream"
	"github.com/sh4ner/streamerpulse/app/shared/httpjson"
	"go.opentelemetry.io/otel/trace"
)

// Handlers exposes the leaderboard HTTP endpoints.
type Handlers interface {
	HandleGetLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleClearCache(w http.ResponseWriter, r *http.Request)
	HandleSnapshot(w http.ResponseWriter, r *http.Request)
	HandleChart(w http.ResponseWriter, r *http.Request)
	HandleProxy(w http.ResponseWriter, r *http.Request)
}

// statusClientClosedRequest is recorded when the caller disconnects before a response.
const statusClientClosedRequest = 499

// LeaderboardHandlers implements Handlers.
type LeaderboardHandlers struct {
	service  leaderboardservice.Service
	imageURL string
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewLeaderboardHandlers creates the leaderboard handlers.
func NewLeaderboardHandlers(
	service leaderboardservice.Service,
	imageURL string,
	logger *slog.Logger,
	tracer trace.Tracer,
) *LeaderboardHandlers {
	return &LeaderboardHandlers{
		service:  service,
		imageURL: imageURL,
		logger:   logger,
		tracer:   tracer,
	}
}

// LeaderboardResponse is the public read model.
type LeaderboardResponse struct {
	Timestamp string                               `json:"timestamp"`
	Tier      leaderboarddomain.Tier               `json:"tier"`
	Data      []leaderboarddomain.LeaderboardEntry `json:"data"`
}

// SnapshotResponse is the admin view of a persisted cycle.
type SnapshotResponse struct {
	PeriodKey   string                               `json:"periodKey"`
	PeriodStart time.Time                            `json:"periodStart"`
	PeriodEnd   time.Time                            `json:"periodEnd"`
	Tier        string                               `json:"tier"`
	FetchedAt   time.Time                            `json:"fetchedAt"`
	Entries     []leaderboarddomain.LeaderboardEntry `json:"entries"`
}

func (h *LeaderboardHandlers) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HandleGetLeaderboard")
	defer span.End()

	period := r.URL.Query().Get("period")
	result, err := h.service.GetLeaderboard(ctx, period)
	if err != nil {
		if errors.Is(err, leaderboarddomain.ErrUnknownPeriod) {
			httpjson.Message(w, http.StatusBadRequest, "Unknown period")
			return
		}
		if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
			// The shared load keeps running and fills the cache for the next reader.
			h.logger.DebugContext(ctx, "Client went away before the leaderboard loaded", "period", period)
			w.WriteHeader(statusClientClosedRequest)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load leaderboard", "period", period, "error", err)
		httpjson.Write(w, http.StatusInternalServerError, map[string]any{
			"message": "Failed to fetch leaderboard",
			"data":    leaderboarddomain.Placeholder(h.imageURL),
		})
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	httpjson.Write(w, http.StatusOK, LeaderboardResponse{
		Timestamp: result.FetchedAt.UTC().Format(time.RFC3339),
		Tier:      result.Tier,
		Data:      result.Entries,
	})
}

func (h *LeaderboardHandlers) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.service.ClearCache(ctx)
	httpjson.Message(w, http.StatusOK, "Cache cleared")
}

func (h *LeaderboardHandlers) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap, err := h.service.LatestSnapshot(ctx, r.URL.Query().Get("period"))
	switch {
	case errors.Is(err, leaderboarddomain.ErrUnknownPeriod):
		httpjson.Message(w, http.StatusBadRequest, "Unknown period")
		return
	case errors.Is(err, leaderboardservice.ErrNoSnapshot):
		httpjson.Message(w, http.StatusNotFound, "No snapshot persisted yet")
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "Failed to load snapshot", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to load snapshot")
		return
	}

	httpjson.Write(w, http.StatusOK, SnapshotResponse{
		PeriodKey:   snap.PeriodKey,
		PeriodStart: snap.PeriodStart,
		PeriodEnd:   snap.PeriodEnd,
		Tier:        snap.Tier,
		FetchedAt:   snap.FetchedAt,
		Entries:     snap.Entries,
	})
}

func (h *LeaderboardHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	png, err := h.service.RenderChart(ctx, r.URL.Query().Get("period"))
	if err != nil {
		if errors.Is(err, leaderboarddomain.ErrUnknownPeriod) {
			httpjson.Message(w, http.StatusBadRequest, "Unknown period")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to render leaderboard chart", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *LeaderboardHandlers) HandleProxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req upstream.PageRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Missing required fields in request body")
		return
	}

	body, err := h.service.ProxyPage(ctx, req)
	if err != nil {
		if errors.Is(err, leaderboardservice.ErrProxyFieldsMissing) {
			h.logger.WarnContext(ctx, "Proxy request missing fields", "remote_addr", r.RemoteAddr)
			httpjson.Message(w, http.StatusBadRequest, "Missing required fields in request body")
			return
		}
		h.logger.ErrorContext(ctx, "Proxy request failed", "error", err)
		httpjson.Write(w, http.StatusBadGateway, map[string]string{
			"message": "Failed to fetch leaderboard data from bc.game",
			"details": err.Error(),
		})
		return
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		httpjson.Write(w, http.StatusBadGateway, map[string]string{
			"message": "Invalid response from bc.game",
			"details": string(body),
		})
		return
	}
	if !isJSONArray(parsed["data"]) {
		h.logger.WarnContext(ctx, "Upstream returned non-array data")
		parsed = map[string]json.RawMessage{"data": json.RawMessage("[]")}
	}
	httpjson.Write(w, http.StatusOK, parsed)
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
