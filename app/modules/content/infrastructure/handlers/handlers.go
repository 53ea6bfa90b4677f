package contenthandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	contentservice "github.com/sh4ner/streamerpulse/app/modules/content/application"
	contentdomain "github.com/sh4ner/streamerpulse/app/modules/content/domain"
	mediahandlers "github.com/sh4ner/streamerpulse/app/modules/media/infrastructure/handlers"
	"github.com/sh4ner/streamerpulse/app/shared/httpjson"
	"github.com/sh4ner/streamerpulse/app/shared/validation"
	"go.opentelemetry.io/otel/trace"
)

// ContentHandlers implements the Handlers interface.
type ContentHandlers struct {
	service contentservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewContentHandlers creates a new ContentHandlers instance.
func NewContentHandlers(service contentservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &ContentHandlers{service: service, logger: logger, tracer: tracer}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// --- news ---

func (h *ContentHandlers) HandleListNews(w http.ResponseWriter, r *http.Request) {
	news, err := h.service.ListNews(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list news", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"news": news})
}

func (h *ContentHandlers) HandleCreateNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ContentHandlers.HandleCreateNews")
	defer span.End()

	var in contentdomain.NewsInput
	if err := httpjson.Decode(r, &in); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.service.CreateNews(ctx, in)
	var errs validation.Errors
	switch {
	case errors.As(err, &errs):
		httpjson.Invalid(w, errs)
	case err != nil:
		h.logger.ErrorContext(ctx, "Error creating news", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to add news")
	default:
		httpjson.Write(w, http.StatusCreated, map[string]any{"message": "News item added successfully!", "news": n})
	}
}

func (h *ContentHandlers) HandleDeleteNews(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	err := h.service.DeleteNews(r.Context(), id)
	switch {
	case errors.Is(err, contentservice.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "News item not found")
	case err != nil:
		h.logger.ErrorContext(r.Context(), "Failed to delete news", "id", id, "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to delete news")
	default:
		httpjson.Message(w, http.StatusOK, "News item deleted")
	}
}

// --- reviews ---

var reviewMessages = []struct {
	err error
	msg string
}{
	{contentdomain.ErrReviewFieldsMissing, "All fields are required"},
	{contentdomain.ErrInvalidReviewType, "Invalid review type"},
	{contentdomain.ErrRatingOutOfRange, "Rating must be between 1 and 5"},
	{contentdomain.ErrTitleTooLong, "Title cannot exceed 100 characters"},
	{contentdomain.ErrDescriptionTooLong, "Description cannot exceed 1000 characters"},
	{contentdomain.ErrInvalidImageURL, "Invalid image URL"},
}

func reviewInputMessage(err error) (string, bool) {
	for _, m := range reviewMessages {
		if errors.Is(err, m.err) {
			return m.msg, true
		}
	}
	return mediahandlers.ValidationMessage(err)
}

func (h *ContentHandlers) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewType := r.URL.Query().Get("type")

	reviews, err := h.service.ListReviews(ctx, reviewType)
	switch {
	case errors.Is(err, contentdomain.ErrInvalidReviewType):
		httpjson.Message(w, http.StatusBadRequest, "Invalid or missing review type")
	case err != nil:
		h.logger.ErrorContext(ctx, "Error fetching reviews", "type", reviewType, "error", err)
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"message": "Error fetching reviews", "details": err.Error()})
	default:
		httpjson.Write(w, http.StatusOK, map[string]any{"reviews": reviews})
	}
}

func (h *ContentHandlers) decodeReview(w http.ResponseWriter, r *http.Request) (contentdomain.ReviewInput, bool) {
	var in contentdomain.ReviewInput
	err := httpjson.Decode(r, &in)
	switch {
	case err == nil, errors.Is(err, httpjson.ErrEmptyBody):
		return in, true
	case errors.Is(err, contentdomain.ErrRatingOutOfRange):
		httpjson.Message(w, http.StatusBadRequest, "Rating must be between 1 and 5")
	default:
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
	}
	return in, false
}

func (h *ContentHandlers) HandleCreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ContentHandlers.HandleCreateReview")
	defer span.End()

	in, ok := h.decodeReview(w, r)
	if !ok {
		return
	}

	rv, err := h.service.CreateReview(ctx, in)
	if err != nil {
		if msg, ok := reviewInputMessage(err); ok {
			httpjson.Message(w, http.StatusBadRequest, msg)
			return
		}
		h.logger.ErrorContext(ctx, "Error creating review", "error", err)
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"message": "Error creating review", "details": err.Error()})
		return
	}
	httpjson.Write(w, http.StatusCreated, map[string]any{"message": "Review created successfully", "review": rv})
}

func (h *ContentHandlers) HandleUpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ContentHandlers.HandleUpdateReview")
	defer span.End()

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	in, ok := h.decodeReview(w, r)
	if !ok {
		return
	}

	rv, err := h.service.UpdateReview(ctx, id, in)
	if err != nil {
		if msg, ok := reviewInputMessage(err); ok {
			httpjson.Message(w, http.StatusBadRequest, msg)
			return
		}
		if errors.Is(err, contentservice.ErrNotFound) {
			httpjson.Message(w, http.StatusNotFound, "Review not found")
			return
		}
		h.logger.ErrorContext(ctx, "Error updating review", "id", id, "error", err)
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"message": "Error updating review", "details": err.Error()})
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"message": "Review updated successfully", "review": rv})
}

func (h *ContentHandlers) HandleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	err := h.service.DeleteReview(r.Context(), id)
	switch {
	case errors.Is(err, contentservice.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Review not found")
	case err != nil:
		h.logger.ErrorContext(r.Context(), "Error deleting review", "id", id, "error", err)
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"message": "Error deleting review", "details": err.Error()})
	default:
		httpjson.Message(w, http.StatusOK, "Review deleted successfully")
	}
}

// --- schedule ---

func (h *ContentHandlers) HandleListSchedule(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListSchedule(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list schedule", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Write(w, http.StatusOK, events)
}

func (h *ContentHandlers) HandleCreateScheduleEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in contentdomain.ScheduleInput
	if err := httpjson.Decode(r, &in); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		httpjson.Message(w, http.StatusBadRequest, "Title and date are required")
		return
	}

	e, err := h.service.CreateScheduleEvent(ctx, in)
	switch {
	case errors.Is(err, contentdomain.ErrScheduleFieldsMissing):
		httpjson.Message(w, http.StatusBadRequest, "Title and date are required")
	case errors.Is(err, contentdomain.ErrUnrecognizedDate), errors.Is(err, contentdomain.ErrInvalidTimezone):
		httpjson.Message(w, http.StatusBadRequest, capitalize(err.Error()))
	case err != nil:
		h.logger.ErrorContext(ctx, "Failed to schedule event", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
	default:
		httpjson.Write(w, http.StatusCreated, map[string]any{"message": "Event scheduled", "event": e})
	}
}

func (h *ContentHandlers) HandleDeleteScheduleEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	err := h.service.DeleteScheduleEvent(r.Context(), id)
	switch {
	case errors.Is(err, contentservice.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Event not found")
	case err != nil:
		h.logger.ErrorContext(r.Context(), "Failed to delete event", "id", id, "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
	default:
		httpjson.Message(w, http.StatusOK, "Event deleted")
	}
}

// --- shorts and videos ---

func (h *ContentHandlers) listClips(w http.ResponseWriter, r *http.Request, kind contentdomain.ClipKind) {
	plural := string(kind) + "s"
	clips, err := h.service.ListClips(r.Context(), kind)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error fetching clips", "kind", kind, "error", err)
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch " + plural, "details": err.Error()})
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{plural: clips})
}

func (h *ContentHandlers) createClip(w http.ResponseWriter, r *http.Request, kind contentdomain.ClipKind) {
	ctx := r.Context()

	var in contentdomain.ClipInput
	if err := httpjson.Decode(r, &in); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		httpjson.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	_, err := h.service.CreateClip(ctx, kind, in)
	switch {
	case errors.Is(err, contentdomain.ErrClipFieldsMissing):
		httpjson.Error(w, http.StatusBadRequest, "Missing required fields")
	case err != nil:
		h.logger.ErrorContext(ctx, "Error adding clip", "kind", kind, "error", err)
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"error": "Failed to add " + string(kind), "details": err.Error()})
	default:
		httpjson.Message(w, http.StatusCreated, kind.Label()+" added successfully")
	}
}

func (h *ContentHandlers) deleteClip(w http.ResponseWriter, r *http.Request, kind contentdomain.ClipKind) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	err := h.service.DeleteClip(r.Context(), kind, id)
	switch {
	case errors.Is(err, contentservice.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, kind.Label()+" not found")
	case err != nil:
		h.logger.ErrorContext(r.Context(), "Error deleting clip", "kind", kind, "id", id, "error", err)
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete " + string(kind), "details": err.Error()})
	default:
		httpjson.Message(w, http.StatusOK, kind.Label()+" deleted successfully")
	}
}

func (h *ContentHandlers) HandleListShorts(w http.ResponseWriter, r *http.Request) {
	h.listClips(w, r, contentdomain.KindShort)
}

func (h *ContentHandlers) HandleCreateShort(w http.ResponseWriter, r *http.Request) {
	h.createClip(w, r, contentdomain.KindShort)
}

func (h *ContentHandlers) HandleDeleteShort(w http.ResponseWriter, r *http.Request) {
	h.deleteClip(w, r, contentdomain.KindShort)
}

func (h *ContentHandlers) HandleListVideos(w http.ResponseWriter, r *http.Request) {
	h.listClips(w, r, contentdomain.KindVideo)
}

func (h *ContentHandlers) HandleCreateVideo(w http.ResponseWriter, r *http.Request) {
	h.createClip(w, r, contentdomain.KindVideo)
}

func (h *ContentHandlers) HandleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	h.deleteClip(w, r, contentdomain.KindVideo)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
