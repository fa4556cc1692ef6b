package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetFinishProfile handles GET /api/v1/stats/fighter/{fighterId}/finishes.
func (h *Handler) GetFinishProfile(w http.ResponseWriter, r *http.Request) {
	fighterID := chi.URLParam(r, "fighterId")
	if fighterID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Fighter ID is required")
		return
	}

	prof, err := h.fighterStats.FinishProfile(r.Context(), fighterID)
	if err != nil {
		h.logger.Errorw("Failed to get finish profile", "error", err, "fighterID", fighterID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get finish profile")
		return
	}

	h.jsonResponse(w, http.StatusOK, prof)
}

// GetCareerStats handles GET /api/v1/stats/fighter/{fighterId}/career.
func (h *Handler) GetCareerStats(w http.ResponseWriter, r *http.Request) {
	fighterID := chi.URLParam(r, "fighterId")
	if fighterID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Fighter ID is required")
		return
	}

	stats, err := h.fighterStats.CareerStats(r.Context(), fighterID)
	if err != nil {
		h.logger.Errorw("Failed to get career stats", "error", err, "fighterID", fighterID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get career stats")
		return
	}

	h.jsonResponse(w, http.StatusOK, stats)
}
