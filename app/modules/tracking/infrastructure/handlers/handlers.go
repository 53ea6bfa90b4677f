package trackinghandlers

import (
	"errors"
	"log/slog"
	"net/http"

	trackingservice "github.com/sh4ner/streamerpulse/app/modules/tracking/application"
	"github.com/sh4ner/streamerpulse/app/shared/httpjson"
)

type TrackingHandlers struct {
	service trackingservice.Service
	logger  *slog.Logger
}

func NewTrackingHandlers(service trackingservice.Service, logger *slog.Logger) *TrackingHandlers {
	return &TrackingHandlers{service: service, logger: logger}
}

func (h *TrackingHandlers) HandleTrackVisitor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if err := httpjson.Decode(r, &req); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		httpjson.Error(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	err := h.service.TrackVisitor(r.Context(), req.SessionID)
	switch {
	case errors.Is(err, trackingservice.ErrSessionIDRequired):
		httpjson.Error(w, http.StatusBadRequest, "Session ID is required")
	case err != nil:
		h.logger.ErrorContext(r.Context(), "Failed to track visitor", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
	default:
		httpjson.Message(w, http.StatusCreated, "Visitor tracked")
	}
}

func (h *TrackingHandlers) HandleTrackLinkClick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := httpjson.Decode(r, &req); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		httpjson.Error(w, http.StatusBadRequest, "URL is required")
		return
	}

	err := h.service.TrackLinkClick(r.Context(), req.URL)
	switch {
	case errors.Is(err, trackingservice.ErrURLRequired):
		httpjson.Error(w, http.StatusBadRequest, "URL is required")
	case err != nil:
		h.logger.ErrorContext(r.Context(), "Failed to track link click", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
	default:
		httpjson.Message(w, http.StatusCreated, "Link click tracked")
	}
}

func (h *TrackingHandlers) HandleListVisitors(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.service.ListVisitors(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list visitors", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Write(w, http.StatusOK, visitors)
}

func (h *TrackingHandlers) HandleListLinkClicks(w http.ResponseWriter, r *http.Request) {
	clicks, err := h.service.ListLinkClicks(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list link clicks", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Write(w, http.StatusOK, clicks)
}
