package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lhgjose/ufc-prediction-fights/internal/logic"
)

// GetFighterRatings handles GET /api/v1/ratings/fighter/{fighterId},
// returning the ten-dimension profile settled to now.
func (h *Handler) GetFighterRatings(w http.ResponseWriter, r *http.Request) {
	fighterID := chi.URLParam(r, "fighterId")
	if fighterID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Fighter ID is required")
		return
	}

	fr, err := h.ratings.FighterRatings(r.Context(), fighterID, time.Now().UTC())
	if errors.Is(err, logic.ErrFighterUnrated) {
		h.errorResponse(w, http.StatusNotFound, "Fighter has no rated bouts")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to get fighter ratings", "error", err, "fighterID", fighterID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get ratings")
		return
	}

	h.jsonResponse(w, http.StatusOK, fr)
}

// GetRankings handles GET /api/v1/ratings/rankings?limit=N.
func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	limit := 25
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			h.errorResponse(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	ranks, err := h.ratings.Rankings(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Failed to get rankings", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get rankings")
		return
	}

	h.jsonResponse(w, http.StatusOK, ranks)
}

// RebuildRatings handles POST /api/v1/ratings/rebuild: a full
// chronological replay from the record store. Runs synchronously; the
// response carries the replay report.
func (h *Handler) RebuildRatings(w http.ResponseWriter, r *http.Request) {
	report, err := h.ratings.Rebuild(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to rebuild ratings", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to rebuild ratings")
		return
	}

	h.jsonResponse(w, http.StatusOK, report)
}

// GetReplayReport handles GET /api/v1/ratings/replay: the report from
// the most recent rebuild, if any.
func (h *Handler) GetReplayReport(w http.ResponseWriter, r *http.Request) {
	report := h.ratings.LastReplay()
	if report == nil {
		h.errorResponse(w, http.StatusNotFound, "No replay has run yet")
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}
