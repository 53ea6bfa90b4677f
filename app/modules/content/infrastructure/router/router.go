package contentrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	contenthandlers "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/handlers"
)

// RegisterRoutes mounts the content collections. Reads are public; writes go through admin.
func RegisterRoutes(r chi.Router, h contenthandlers.Handlers, admin func(http.Handler) http.Handler) {
	r.Route("/api/news", func(r chi.Router) {
		r.Get("/", h.HandleListNews)
		r.With(admin).Post("/", h.HandleCreateNews)
		r.With(admin).Delete("/{id}", h.HandleDeleteNews)
	})

	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/", h.HandleListReviews)
		r.With(admin).Post("/", h.HandleCreateReview)
		r.With(admin).Put("/{id}", h.HandleUpdateReview)
		r.With(admin).Delete("/{id}", h.HandleDeleteReview)
	})

	r.Route("/api/schedule", func(r chi.Router) {
		r.Get("/", h.HandleListSchedule)
		r.With(admin).Post("/", h.HandleCreateScheduleEvent)
		r.With(admin).Delete("/{id}", h.HandleDeleteScheduleEvent)
	})

	r.Route("/api/shorts", func(r chi.Router) {
		r.Get("/", h.HandleListShorts)
		r.With(admin).Post("/", h.HandleCreateShort)
		r.With(admin).Delete("/{id}", h.HandleDeleteShort)
	})

	r.Route("/api/videos", func(r chi.Router) {
		r.Get("/", h.HandleListVideos)
		r.With(admin).Post("/", h.HandleCreateVideo)
		r.With(admin).Delete("/{id}", h.HandleDeleteVideo)
	})
}
