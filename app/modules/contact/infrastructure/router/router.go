package contactrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	contacthandlers "github.com/sh4ner/streamerpulse/app/modules/contact/infrastructure/handlers"
)

// RegisterRoutes mounts /api/contact. Posting is public and rate limited; reading and deleting need admin.
func RegisterRoutes(r chi.Router, h *contacthandlers.ContactHandlers, admin, submitLimit func(http.Handler) http.Handler) {
	r.Route("/api/contact", func(r chi.Router) {
		r.With(submitLimit).Post("/", h.HandleSubmit)
		r.With(admin).Get("/", h.HandleList)
		r.With(admin).Delete("/{id}", h.HandleDelete)
	})
}
