package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lost-hosts/lost/src/internal/metrics"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)
	r.Use(PrivateSubnetOnly)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(JSONContentType)

			r.Get("/sources", h.GetSources)
			r.Post("/sources", h.CreateSource)
			r.Delete("/sources", h.DeleteSource)
			r.Post("/sources/update", h.UpdateSource)
			r.Post("/sources/update-all", h.UpdateAllSources)

			r.Get("/status", h.GetStatus)
			r.Post("/save", h.Save)
			r.Get("/health", h.CheckHealth)
		})

		// Raw hosts text, not JSON
		r.Post("/validate", h.Validate)

		r.Handle("/metrics", metrics.Handler())
	})

	return r
}
