package giveawayrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	giveawayhandlers "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/handlers"
)

// RegisterRoutes mounts /api/giveaway and /api/giveaway-content. submitLimit guards the
// public write endpoints.
func RegisterRoutes(r chi.Router, h giveawayhandlers.Handlers, admin, submitLimit func(http.Handler) http.Handler) {
	r.Route("/api/giveaway", func(r chi.Router) {
		r.Get("/content", h.HandleGetContent)
		r.With(submitLimit).Post("/submit-entry", h.HandleSubmitEntry)
		r.With(submitLimit).Post("/spin-result", h.HandleSpinResult)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Get("/entries", h.HandleListEntries)
			r.Get("/entries/export", h.HandleExportEntries)
		})
	})

	r.Route("/api/giveaway-content", func(r chi.Router) {
		r.Get("/", h.HandleGetContent)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.HandleCreateContent)
			r.Delete("/{id}", h.HandleDeleteContent)
		})
	})
}
