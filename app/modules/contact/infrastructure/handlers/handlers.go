package contacthandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	contactservice "github.com/sh4ner/streamerpulse/app/modules/contact/application"
	contactdomain "github.com/sh4ner/streamerpulse/app/modules/contact/domain"
	"github.com/sh4ner/streamerpulse/app/shared/httpjson"
	"github.com/sh4ner/streamerpulse/app/shared/validation"
)

// ContactHandlers serves /api/contact.
type ContactHandlers struct {
	service contactservice.Service
	logger  *slog.Logger
}

func NewContactHandlers(service contactservice.Service, logger *slog.Logger) *ContactHandlers {
	return &ContactHandlers{service: service, logger: logger}
}

func (h *ContactHandlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var sub contactdomain.Submission
	if err := httpjson.Decode(r, &sub); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.service.Submit(ctx, sub)
	var errs validation.Errors
	switch {
	case errors.As(err, &errs):
		httpjson.Invalid(w, errs)
	case err != nil:
		h.logger.ErrorContext(ctx, "Failed to store contact message", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to send message")
	default:
		httpjson.Message(w, http.StatusCreated, "Message sent successfully!")
	}
}

func (h *ContactHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contacts, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list contacts", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	httpjson.Write(w, http.StatusOK, contacts)
}

func (h *ContactHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Message(w, http.StatusBadRequest, "Invalid id")
		return
	}

	err = h.service.Delete(ctx, id)
	switch {
	case errors.Is(err, contactservice.ErrNotFound):
		httpjson.Message(w, http.StatusNotFound, "Contact not found")
	case err != nil:
		h.logger.ErrorContext(ctx, "Failed to delete contact", "id", id, "error", err)
		httpjson.Message(w, http.StatusInternalServerError, "Server error")
	default:
		httpjson.Message(w, http.StatusOK, "Contact deleted")
	}
}
