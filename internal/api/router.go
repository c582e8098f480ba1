package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the Chi router with all routes configured.
// Rate limiting is applied globally: 120 requests per minute per IP, which
// leaves room for a wizard sending one event per click.
func NewRouter(handlers *Handlers, db, redis Pinger, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(httprate.LimitByIP(120, time.Minute))

	r.Get("/api/v1/health", HealthHandlerFunc(db, redis, log))
	r.Post("/api/v1/catalog/refresh", handlers.RefreshCatalog)

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", handlers.CreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", handlers.GetSession)
			r.Delete("/", handlers.DeleteSession)
			r.Get("/locations", handlers.ListLocations)
			r.Get("/activities", handlers.ListActivities)
			r.Get("/rates", handlers.GetRates)
			r.With(RequireJSON).Post("/events", handlers.ApplyEvent)
		})
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
