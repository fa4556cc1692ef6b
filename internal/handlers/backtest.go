package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/lhgjose/ufc-prediction-fights/internal/backtest"
	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// RunBacktest handles POST /api/v1/backtest: replay before the cutoff,
// predict and score the bouts after it.
func (h *Handler) RunBacktest(w http.ResponseWriter, r *http.Request) {
	var req models.BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	cutoff, err := time.Parse("2006-01-02", req.Cutoff)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "cutoff must be YYYY-MM-DD")
		return
	}

	report, err := h.backtest.Run(r.Context(), cutoff, req.Limit)
	if errors.Is(err, backtest.ErrNoTestableBouts) {
		h.errorResponse(w, http.StatusUnprocessableEntity, "No bouts after cutoff")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to run backtest", "error", err, "cutoff", req.Cutoff)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to run backtest")
		return
	}

	h.jsonResponse(w, http.StatusOK, report)
}

// ListTrackedPredictions handles GET /api/v1/predictions?limit=N.
func (h *Handler) ListTrackedPredictions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	preds, err := h.tracking.List(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Failed to list tracked predictions", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list predictions")
		return
	}

	h.jsonResponse(w, http.StatusOK, preds)
}

// ReconcilePredictions handles POST /api/v1/predictions/reconcile,
// matching pending predictions against recorded results.
func (h *Handler) ReconcilePredictions(w http.ResponseWriter, r *http.Request) {
	count, err := h.tracking.Reconcile(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to reconcile predictions", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to reconcile predictions")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"reconciled": count,
	})
}
