package leaderboardrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	leaderboardhandlers "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/handlers"
)

// Middleware is a chi-compatible HTTP middleware.
type Middleware = func(http.Handler) http.Handler

// RegisterRoutes mounts the leaderboard endpoints under /api/leaderboard.
func RegisterRoutes(r chi.Router, h leaderboardhandlers.Handlers, admin Middleware) {
	r.Route("/api/leaderboard", func(r chi.Router) {
		r.Get("/", h.HandleGetLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/clear-cache", h.HandleClearCache)
			r.Get("/snapshot", h.HandleSnapshot)
			r.Get("/chart.png", h.HandleChart)
			r.Post("/proxy/bcgame", h.HandleProxy)
		})
	})
}
