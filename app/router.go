package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sh4ner/streamerpulse/app/observability"
	"github.com/sh4ner/streamerpulse/app/shared/httpjson"
)

const healthMessage = "SH4NER Backend is running! 🚀"

// newRouter builds the root router with the shared middleware, the health check and the
// JSON 404 for unknown API paths. Modules mount their routes onto it.
func newRouter(logger *slog.Logger, metrics *observability.HTTPMetrics, cors func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors)
	r.Use(observability.Middleware(logger, metrics))
	r.Use(recoverJSON(logger))

	health := func(w http.ResponseWriter, r *http.Request) {
		httpjson.Message(w, http.StatusOK, healthMessage)
	}
	r.Get("/api", health)
	r.Get("/api/", health)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api") {
			httpjson.Message(w, http.StatusNotFound, "API endpoint not found")
			return
		}
		http.NotFound(w, r)
	})
	return r
}

// recoverJSON turns handler panics into a 500 JSON body.
func recoverJSON(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "Server error",
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", middleware.GetReqID(r.Context()),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				httpjson.Write(w, http.StatusInternalServerError, map[string]string{
					"message": "Something went wrong!",
					"details": fmt.Sprint(rec),
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
