package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// IngestBouts handles POST /api/v1/ingest/bouts: a batch of normalized
// bout records from the scraper. Records are validated here and queued;
// the worker pool owns all database writes. Re-sent bouts are accepted
// as corrections; the record store keeps every version and reads resolve
// latest-wins.
func (h *Handler) IngestBouts(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.IngestBoutsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	accepted := 0
	for i := range req.Bouts {
		bout := &req.Bouts[i]
		if bout.ID == "" {
			h.logger.Warnw("Skipping bout without id", "index", i)
			continue
		}
		if !h.pool.Enqueue(bout) {
			h.logger.Warn("Worker pool queue full, dropping remaining bouts in batch")
			break
		}
		accepted++
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "accepted",
		"accepted": accepted,
		"received": len(req.Bouts),
	})
}
