// Package http wires the API routes and request middleware.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	SearchHandler http.Handler
	HealthHandler http.Handler
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", deps.HealthHandler)
		r.Method(http.MethodPost, "/search", deps.SearchHandler)
	})

	return r
}
