package giveawayhandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	giveawayservice "github.com/sh4ner/streamerpulse/app/modules/giveaway/application"
	giveawaydomain "github.com/sh4ner/streamerpulse/app/modules/giveaway/domain"
	"github.com/sh4ner/streamerpulse/app/shared/httpjson"
	"go.opentelemetry.io/otel/trace"
)

// GiveawayHandlers implements the Handlers interface.
type GiveawayHandlers struct {
	service giveawayservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// NewGiveawayHandlers creates a new GiveawayHandlers instance.
func NewGiveawayHandlers(
	service giveawayservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &GiveawayHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		now:     time.Now,
	}
}

func (h *GiveawayHandlers) HandleSubmitEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GiveawayHandlers.HandleSubmitEntry")
	defer span.End()

	var sub giveawaydomain.Submission
	if err := httpjson.Decode(r, &sub); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	_, err := h.service.SubmitEntry(ctx, sub)
	switch {
	case errors.Is(err, giveawaydomain.ErrMissingFields):
		httpjson.Message(w, http.StatusBadRequest, "All fields are required.")
	case errors.Is(err, giveawaydomain.ErrInvalidEmail):
		httpjson.Message(w, http.StatusBadRequest, "Invalid email format.")
	case errors.Is(err, giveawayservice.ErrAlreadyRegistered):
		httpjson.Message(w, http.StatusBadRequest, "Email or BC User ID already registered.")
	case err != nil:
		h.logger.ErrorContext(ctx, "Failed to submit giveaway entry", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error. Please try again.")
	default:
		httpjson.Write(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Entry submitted successfully!",
		})
	}
}

func (h *GiveawayHandlers) HandleSpinResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GiveawayHandlers.HandleSpinResult")
	defer span.End()

	var spin giveawaydomain.SpinResult
	if err := httpjson.Decode(r, &spin); err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Email and prize are required.")
		return
	}

	prize, err := h.service.RecordSpin(ctx, spin)
	switch {
	case errors.Is(err, giveawaydomain.ErrMissingFields):
		httpjson.Message(w, http.StatusBadRequest, "Email and prize are required.")
	case errors.Is(err, giveawaydomain.ErrInvalidEmail):
		httpjson.Message(w, http.StatusBadRequest, "Invalid email format.")
	case errors.Is(err, giveawayservice.ErrEntryNotFound):
		httpjson.Message(w, http.StatusNotFound, "No entry found for this email.")
	case errors.Is(err, giveawayservice.ErrAlreadySpun):
		httpjson.Message(w, http.StatusBadRequest, "You have already spun the wheel.")
	case err != nil:
		h.logger.ErrorContext(ctx, "Failed to record spin", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error. Please try again.")
	default:
		httpjson.Write(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Prize recorded!",
			"prize":   prize,
		})
	}
}

func (h *GiveawayHandlers) HandleGetContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.service.ListContent(ctx, r.URL.Query().Get("type"))
	if err != nil {
		if errors.Is(err, giveawaydomain.ErrInvalidContentType) {
			httpjson.Message(w, http.StatusBadRequest, `Invalid type. Use "rewards" or "rules".`)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to list giveaway content", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"items": items})
}

func (h *GiveawayHandlers) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries, err := h.service.ListEntries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list giveaway entries", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(entries),
		"entries": entries,
	})
}

func (h *GiveawayHandlers) HandleExportEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, err := h.service.ExportEntries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to export giveaway entries", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
		return
	}

	filename := fmt.Sprintf("giveaway-entries-%s.xlsx", h.now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *GiveawayHandlers) HandleCreateContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in giveawaydomain.ContentInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	content, err := h.service.CreateContent(ctx, in)
	switch {
	case errors.Is(err, giveawaydomain.ErrInvalidContentType):
		httpjson.Message(w, http.StatusBadRequest, `Invalid type. Use "rewards" or "rules".`)
	case errors.Is(err, giveawaydomain.ErrMissingFields):
		httpjson.Message(w, http.StatusBadRequest, "Title and description are required.")
	case err != nil:
		h.logger.ErrorContext(ctx, "Failed to create giveaway content", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
	default:
		httpjson.Write(w, http.StatusCreated, content)
	}
}

func (h *GiveawayHandlers) HandleDeleteContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid id")
		return
	}

	err = h.service.DeleteContent(ctx, id)
	switch {
	case errors.Is(err, giveawayservice.ErrContentNotFound):
		httpjson.Message(w, http.StatusNotFound, "Content not found")
	case err != nil:
		h.logger.ErrorContext(ctx, "Failed to delete giveaway content", "id", id, "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
	default:
		httpjson.Message(w, http.StatusOK, "Content deleted")
	}
}
