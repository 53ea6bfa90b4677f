package mediarouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mediahandlers "github.com/sh4ner/streamerpulse/app/modules/media/infrastructure/handlers"
)

// RegisterRoutes mounts the upload endpoint behind uploadLimit and the admin job view.
func RegisterRoutes(r chi.Router, h mediahandlers.Handlers, admin, uploadLimit func(http.Handler) http.Handler) {
	r.With(uploadLimit).Post("/api/upload-image", h.HandleUploadImage)
	r.With(admin).Get("/api/media/jobs", h.HandleListJobs)
}
