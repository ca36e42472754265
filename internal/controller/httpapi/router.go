// Package httpapi is the console's HTTP surface: teacher directory lookup,
// synchronous grid builds, and session-backed incremental grid views.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// NewRouter wires all console routes onto a chi router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(120, time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/teachers", h.ListTeachers)
		r.Post("/schedule/grid", h.BuildGrid)
		r.Route("/schedule/sessions/{sessionID}", func(r chi.Router) {
			r.Put("/", h.SetSessionQuery)
			r.Get("/", h.SessionSnapshot)
		})
	})

	return r
}
