package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/katalvlaran/tlp/internal/metrics"
	"github.com/katalvlaran/tlp/internal/service"
)

func NewRouter(svc *service.SolveService, maxBodyBytes int64, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))

	solutions := NewSolutionsHandler(svc, maxBodyBytes)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/solve", solutions.Solve)
		r.Get("/solutions", solutions.List)
		r.Get("/solutions/{id}", solutions.Get)
		r.Get("/solutions/{id}/report", solutions.Report)
	})

	return r
}

// NewMetricsRouter serves /health and, when m is set, /metrics.
func NewMetricsRouter(m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}
	return r
}
