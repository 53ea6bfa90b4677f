package trackingrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	trackinghandlers "github.com/sh4ner/streamerpulse/app/modules/tracking/infrastructure/handlers"
)

func RegisterRoutes(r chi.Router, h *trackinghandlers.TrackingHandlers, admin func(http.Handler) http.Handler) {
	r.Route("/api/tracking", func(r chi.Router) {
		r.Post("/trackVisitor", h.HandleTrackVisitor)
		r.Post("/trackLinkClick", h.HandleTrackLinkClick)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Get("/visitors", h.HandleListVisitors)
			r.Get("/link-clicks", h.HandleListLinkClicks)
		})
	})
}
