package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the HTTP surface: the calculator endpoint, health
// probes and the metrics scrape handler.
func NewRouter(quote *QuoteHandler, health *HealthHandler, metrics http.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(Correlation)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Post("/calculator/mortgage-calculator", quote.Calculate)

	health.RegisterRoutes(r)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}

	return r
}
