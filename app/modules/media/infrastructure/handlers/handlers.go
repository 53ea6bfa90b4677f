package mediahandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	mediaservice "github.com/sh4ner/streamerpulse/app/modules/media/application"
	mediadomain "github.com/sh4ner/streamerpulse/app/modules/media/domain"
	"github.com/sh4ner/streamerpulse/app/modules/media/infrastructure/cloudinary"
	"github.com/sh4ner/streamerpulse/app/shared/httpjson"
	"go.opentelemetry.io/otel/trace"
)

// Handlers serves the media endpoints.
type Handlers interface {
	HandleUploadImage(w http.ResponseWriter, r *http.Request)
	HandleListJobs(w http.ResponseWriter, r *http.Request)
}

type MediaHandlers struct {
	service mediaservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewMediaHandlers(service mediaservice.Service, logger *slog.Logger, tracer trace.Tracer) *MediaHandlers {
	return &MediaHandlers{service: service, logger: logger, tracer: tracer}
}

type uploadRequest struct {
	Image string `json:"image"`
}

var validationMessages = map[error]string{
	mediadomain.ErrNoImage:          "No image provided",
	mediadomain.ErrNotImage:         "Invalid image format",
	mediadomain.ErrInvalidHeader:    "Invalid base64 image header",
	mediadomain.ErrInvalidBase64:    "Invalid base64 data",
	mediadomain.ErrEmptyImageBuffer: "Empty image buffer",
}

// ValidationMessage returns the client message for a data URI error, if it is one.
func ValidationMessage(err error) (string, bool) {
	for target, msg := range validationMessages {
		if errors.Is(err, target) {
			return msg, true
		}
	}
	return "", false
}

func (h *MediaHandlers) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "MediaHandlers.HandleUploadImage")
	defer span.End()

	var req uploadRequest
	if err := httpjson.Decode(r, &req); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		httpjson.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	up, err := h.service.UploadImage(ctx, req.Image, "")
	if err != nil {
		if msg, ok := ValidationMessage(err); ok {
			httpjson.Message(w, http.StatusBadRequest, msg)
			return
		}

		h.logger.ErrorContext(ctx, "Error uploading image", "error", err, "ip", r.RemoteAddr, "user_agent", r.UserAgent())

		status, msg := http.StatusInternalServerError, "Failed to upload image"
		var apiErr *cloudinary.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusUnauthorized:
				status, msg = http.StatusUnauthorized, "Unauthorized: Invalid Cloudinary credentials"
			case http.StatusBadRequest:
				msg = "Bad request: Check image data or Cloudinary configuration"
			case 420, http.StatusTooManyRequests:
				msg = "Rate limit exceeded: Try again later"
			}
		}
		httpjson.Write(w, status, map[string]string{"message": msg, "details": err.Error()})
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"message":   "Image uploaded successfully",
		"url":       up.URL,
		"public_id": up.PublicID,
	})
}

func (h *MediaHandlers) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httpjson.Message(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	jobs, err := h.service.ListJobs(ctx, limit)
	if err != nil {
		if errors.Is(err, mediaservice.ErrQueueDisabled) {
			httpjson.Message(w, http.StatusServiceUnavailable, "Media queue is disabled")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to list media jobs", "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"jobs": jobs})
}
