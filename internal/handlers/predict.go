package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// PredictBout handles POST /api/v1/predict. A valid request always gets
// a structured answer: a full pick, or an explicit refusal with the
// reason when either side lacks rated history.
func (h *Handler) PredictBout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	pred, err := h.prediction.Predict(r.Context(), &req)
	if err != nil {
		h.logger.Errorw("Failed to predict bout", "error", err, "redID", req.RedID, "blueID", req.BlueID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to predict bout")
		return
	}

	if pred.Refused {
		// Refusal is a valid answer, not an error
		h.jsonResponse(w, http.StatusUnprocessableEntity, pred)
		return
	}
	h.jsonResponse(w, http.StatusOK, pred)
}

// PredictBoutNarrative handles POST /api/v1/predict/narrative, returning
// the plain-text report alongside the structured pick.
func (h *Handler) PredictBoutNarrative(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	pred, err := h.prediction.Predict(r.Context(), &req)
	if err != nil {
		h.logger.Errorw("Failed to predict bout", "error", err, "redID", req.RedID, "blueID", req.BlueID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to predict bout")
		return
	}

	narrative, err := h.prediction.Narrative(r.Context(), pred)
	if err != nil {
		h.logger.Errorw("Failed to build narrative", "error", err, "predictionID", pred.ID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to build narrative")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"prediction": pred,
		"narrative":  narrative,
	})
}

// CompareFighters handles GET /api/v1/compare/{redId}/{blueId}: the raw
// matchup evaluation with no pick made.
func (h *Handler) CompareFighters(w http.ResponseWriter, r *http.Request) {
	redID := chi.URLParam(r, "redId")
	blueID := chi.URLParam(r, "blueId")
	if redID == "" || blueID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Both fighter IDs are required")
		return
	}
	if redID == blueID {
		h.errorResponse(w, http.StatusBadRequest, "Fighters must differ")
		return
	}

	m, err := h.prediction.Compare(r.Context(), redID, blueID)
	if err != nil {
		h.logger.Errorw("Failed to compare fighters", "error", err, "redID", redID, "blueID", blueID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to compare fighters")
		return
	}

	h.jsonResponse(w, http.StatusOK, m)
}
