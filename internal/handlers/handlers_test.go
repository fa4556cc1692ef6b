package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/backtest"
	"github.com/lhgjose/ufc-prediction-fights/internal/logic"
	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

func testHandler() *Handler {
	return &Handler{
		logger:    zap.NewNop().Sugar(),
		validator: validator.New(),
	}
}

func TestPredictBout(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockFunc       func(ctx context.Context, req *models.PredictRequest) (*models.Prediction, error)
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"red_id": "f-1", "blue_id": "f-2", "scheduled_rounds": 3}`,
			expectedStatus: http.StatusOK,
		},
		{
			name: "Refusal",
			body: `{"red_id": "f-1", "blue_id": "f-unknown"}`,
			mockFunc: func(ctx context.Context, req *models.PredictRequest) (*models.Prediction, error) {
				return &models.Prediction{Refused: true, RefusalReason: "blue corner has no rated bouts"}, nil
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "Invalid JSON",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing blue",
			body:           `{"red_id": "f-1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Same fighter both corners",
			body:           `{"red_id": "f-1", "blue_id": "f-1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid round count",
			body:           `{"red_id": "f-1", "blue_id": "f-2", "scheduled_rounds": 4}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Service error",
			body: `{"red_id": "f-1", "blue_id": "f-2"}`,
			mockFunc: func(ctx context.Context, req *models.PredictRequest) (*models.Prediction, error) {
				return nil, fmt.Errorf("state unavailable")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler()
			h.prediction = &MockPredictionService{PredictFunc: tt.mockFunc}

			req := httptest.NewRequest("POST", "/api/v1/predict", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.PredictBout(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestPredictBoutNarrative(t *testing.T) {
	h := testHandler()
	h.prediction = &MockPredictionService{
		NarrativeFunc: func(ctx context.Context, pred *models.Prediction) (string, error) {
			return "Fighter One vs Fighter Two\nPick: Fighter One by decision\n", nil
		},
	}

	body := `{"red_id": "f-1", "blue_id": "f-2"}`
	req := httptest.NewRequest("POST", "/api/v1/predict/narrative", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.PredictBoutNarrative(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if _, ok := resp["prediction"]; !ok {
		t.Error("response missing prediction")
	}
	if _, ok := resp["narrative"]; !ok {
		t.Error("response missing narrative")
	}
}

func TestCompareFighters(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"Success", "/compare/f-1/f-2", http.StatusOK},
		{"Same fighter", "/compare/f-1/f-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler()
			h.prediction = &MockPredictionService{}

			r := chi.NewRouter()
			r.Get("/compare/{redId}/{blueId}", h.CompareFighters)

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestIngestBouts(t *testing.T) {
	h := testHandler()
	queue := &MockIngestQueue{}
	h.pool = queue

	body := `{"bouts": [
		{"id": "b-1", "date": "2024-03-01T00:00:00Z", "red_id": "f-1", "blue_id": "f-2", "winner_id": "f-1", "method": "KO/TKO", "round_finished": 1, "scheduled_rounds": 3},
		{"id": "b-2", "date": "2024-03-01T00:00:00Z", "red_id": "f-3", "blue_id": "f-4", "winner_id": "f-4", "method": "Decision", "round_finished": 3, "scheduled_rounds": 3},
		{"id": "", "date": "2024-03-01T00:00:00Z", "red_id": "f-5", "blue_id": "f-6"}
	]}`

	req := httptest.NewRequest("POST", "/api/v1/ingest/bouts", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.IngestBouts(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %v, want 202 (body %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Status   string `json:"status"`
		Accepted int    `json:"accepted"`
		Received int    `json:"received"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Accepted != 2 {
		t.Errorf("accepted = %d, want 2 (bout without id skipped)", resp.Accepted)
	}
	if resp.Received != 3 {
		t.Errorf("received = %d, want 3", resp.Received)
	}
	if len(queue.Enqueued) != 2 {
		t.Errorf("enqueued = %d, want 2", len(queue.Enqueued))
	}
}

func TestIngestBoutsQueueFull(t *testing.T) {
	h := testHandler()
	h.pool = &MockIngestQueue{
		EnqueueFunc: func(bout *models.Bout) bool { return false },
	}

	body := `{"bouts": [{"id": "b-1", "date": "2024-03-01T00:00:00Z", "red_id": "f-1", "blue_id": "f-2"}]}`
	req := httptest.NewRequest("POST", "/api/v1/ingest/bouts", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.IngestBouts(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %v, want 202", w.Code)
	}
	var resp struct {
		Accepted int `json:"accepted"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Accepted != 0 {
		t.Errorf("accepted = %d, want 0 when the queue rejects", resp.Accepted)
	}
}

func TestIngestBoutsEmptyBatch(t *testing.T) {
	h := testHandler()
	h.pool = &MockIngestQueue{}

	req := httptest.NewRequest("POST", "/api/v1/ingest/bouts", strings.NewReader(`{"bouts": []}`))
	w := httptest.NewRecorder()

	h.IngestBouts(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %v, want 400 for empty batch", w.Code)
	}
}

func TestGetFighterRatings(t *testing.T) {
	tests := []struct {
		name           string
		mockFunc       func(ctx context.Context, fighterID string, asOf time.Time) (*models.FighterRatings, error)
		expectedStatus int
	}{
		{
			name:           "Success",
			expectedStatus: http.StatusOK,
		},
		{
			name: "Unrated",
			mockFunc: func(ctx context.Context, fighterID string, asOf time.Time) (*models.FighterRatings, error) {
				return nil, logic.ErrFighterUnrated
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Service error",
			mockFunc: func(ctx context.Context, fighterID string, asOf time.Time) (*models.FighterRatings, error) {
				return nil, fmt.Errorf("cache down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler()
			h.ratings = &MockRatingsService{FighterRatingsFunc: tt.mockFunc}

			r := chi.NewRouter()
			r.Get("/ratings/fighter/{fighterId}", h.GetFighterRatings)

			req := httptest.NewRequest("GET", "/ratings/fighter/f-1", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestGetRankingsLimit(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantLimit      int
		expectedStatus int
	}{
		{"Default", "", 25, http.StatusOK},
		{"Explicit", "?limit=10", 10, http.StatusOK},
		{"Too large", "?limit=9999", 0, http.StatusBadRequest},
		{"Zero", "?limit=0", 0, http.StatusBadRequest},
		{"Garbage", "?limit=ten", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			h := testHandler()
			h.ratings = &MockRatingsService{
				RankingsFunc: func(ctx context.Context, limit int) ([]models.FighterRank, error) {
					gotLimit = limit
					return []models.FighterRank{}, nil
				},
			}

			req := httptest.NewRequest("GET", "/ratings/rankings"+tt.query, nil)
			w := httptest.NewRecorder()
			h.GetRankings(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusOK && gotLimit != tt.wantLimit {
				t.Errorf("limit passed = %d, want %d", gotLimit, tt.wantLimit)
			}
		})
	}
}

func TestGetReplayReport(t *testing.T) {
	h := testHandler()
	h.ratings = &MockRatingsService{}

	req := httptest.NewRequest("GET", "/ratings/replay", nil)
	w := httptest.NewRecorder()
	h.GetReplayReport(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status before any replay = %v, want 404", w.Code)
	}

	h.ratings = &MockRatingsService{
		LastReplayFunc: func() *models.ReplayReport {
			return &models.ReplayReport{BoutsProcessed: 12}
		},
	}
	w = httptest.NewRecorder()
	h.GetReplayReport(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %v, want 200", w.Code)
	}
}

func TestRunBacktest(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockFunc       func(ctx context.Context, cutoff time.Time, limit int) (*models.BacktestReport, error)
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"cutoff": "2023-01-01", "limit": 100}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Bad date format",
			body:           `{"cutoff": "01/02/2023"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing cutoff",
			body:           `{"limit": 10}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Nothing to test",
			body: `{"cutoff": "2030-01-01"}`,
			mockFunc: func(ctx context.Context, cutoff time.Time, limit int) (*models.BacktestReport, error) {
				return nil, backtest.ErrNoTestableBouts
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler()
			h.backtest = &MockBacktestService{RunFunc: tt.mockFunc}

			req := httptest.NewRequest("POST", "/api/v1/backtest", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.RunBacktest(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestReconcilePredictions(t *testing.T) {
	h := testHandler()
	h.tracking = &MockTrackingService{
		ReconcileFunc: func(ctx context.Context) (int, error) { return 7, nil },
	}

	req := httptest.NewRequest("POST", "/api/v1/predictions/reconcile", nil)
	w := httptest.NewRecorder()
	h.ReconcilePredictions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Code)
	}
	var resp struct {
		Reconciled int `json:"reconciled"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Reconciled != 7 {
		t.Errorf("reconciled = %d, want 7", resp.Reconciled)
	}
}

func TestGetFinishProfile(t *testing.T) {
	h := testHandler()
	h.fighterStats = &MockFighterStatsService{
		FinishProfileFunc: func(ctx context.Context, fighterID string) (*models.FinishProfile, error) {
			return &models.FinishProfile{FighterID: fighterID, Wins: 10, KOWins: 6}, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/stats/fighter/{fighterId}/finishes", h.GetFinishProfile)

	req := httptest.NewRequest("GET", "/stats/fighter/f-9/finishes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Code)
	}
	var prof models.FinishProfile
	if err := json.Unmarshal(w.Body.Bytes(), &prof); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if prof.FighterID != "f-9" || prof.KOWins != 6 {
		t.Errorf("profile = %+v", prof)
	}
}
