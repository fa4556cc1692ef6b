package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the HTTP surface.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ingest/bouts", h.IngestBouts)

		r.Post("/predict", h.PredictBout)
		r.Post("/predict/narrative", h.PredictBoutNarrative)
		r.Get("/compare/{redId}/{blueId}", h.CompareFighters)

		r.Route("/ratings", func(r chi.Router) {
			r.Get("/fighter/{fighterId}", h.GetFighterRatings)
			r.Get("/rankings", h.GetRankings)
			r.Post("/rebuild", h.RebuildRatings)
			r.Get("/replay", h.GetReplayReport)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/fighter/{fighterId}/finishes", h.GetFinishProfile)
			r.Get("/fighter/{fighterId}/career", h.GetCareerStats)
		})

		r.Post("/backtest", h.RunBacktest)
		r.Get("/predictions", h.ListTrackedPredictions)
		r.Post("/predictions/reconcile", h.ReconcilePredictions)
	})

	return r
}
