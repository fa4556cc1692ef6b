package handlers

import (
	"context"
	"time"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// MockRatingsService
type MockRatingsService struct {
	RebuildFunc        func(ctx context.Context) (*models.ReplayReport, error)
	FighterRatingsFunc func(ctx context.Context, fighterID string, asOf time.Time) (*models.FighterRatings, error)
	RankingsFunc       func(ctx context.Context, limit int) ([]models.FighterRank, error)
	LastReplayFunc     func() *models.ReplayReport
}

func (m *MockRatingsService) Rebuild(ctx context.Context) (*models.ReplayReport, error) {
	if m.RebuildFunc != nil {
		return m.RebuildFunc(ctx)
	}
	return &models.ReplayReport{}, nil
}

func (m *MockRatingsService) FighterRatings(ctx context.Context, fighterID string, asOf time.Time) (*models.FighterRatings, error) {
	if m.FighterRatingsFunc != nil {
		return m.FighterRatingsFunc(ctx, fighterID, asOf)
	}
	return models.NewFighterRatings(fighterID), nil
}

func (m *MockRatingsService) Rankings(ctx context.Context, limit int) ([]models.FighterRank, error) {
	if m.RankingsFunc != nil {
		return m.RankingsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockRatingsService) LastReplay() *models.ReplayReport {
	if m.LastReplayFunc != nil {
		return m.LastReplayFunc()
	}
	return nil
}

// MockPredictionService
type MockPredictionService struct {
	PredictFunc   func(ctx context.Context, req *models.PredictRequest) (*models.Prediction, error)
	CompareFunc   func(ctx context.Context, redID, blueID string) (*models.Matchup, error)
	NarrativeFunc func(ctx context.Context, pred *models.Prediction) (string, error)
}

func (m *MockPredictionService) Predict(ctx context.Context, req *models.PredictRequest) (*models.Prediction, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, req)
	}
	return &models.Prediction{ID: "mock", RedID: req.RedID, BlueID: req.BlueID, WinnerID: req.RedID}, nil
}

func (m *MockPredictionService) Compare(ctx context.Context, redID, blueID string) (*models.Matchup, error) {
	if m.CompareFunc != nil {
		return m.CompareFunc(ctx, redID, blueID)
	}
	return &models.Matchup{RedID: redID, BlueID: blueID}, nil
}

func (m *MockPredictionService) Narrative(ctx context.Context, pred *models.Prediction) (string, error) {
	if m.NarrativeFunc != nil {
		return m.NarrativeFunc(ctx, pred)
	}
	return "mock narrative", nil
}

// MockFighterStatsService
type MockFighterStatsService struct {
	FinishProfileFunc func(ctx context.Context, fighterID string) (*models.FinishProfile, error)
	CareerStatsFunc   func(ctx context.Context, fighterID string) (*models.CareerStats, error)
}

func (m *MockFighterStatsService) FinishProfile(ctx context.Context, fighterID string) (*models.FinishProfile, error) {
	if m.FinishProfileFunc != nil {
		return m.FinishProfileFunc(ctx, fighterID)
	}
	return &models.FinishProfile{FighterID: fighterID}, nil
}

func (m *MockFighterStatsService) CareerStats(ctx context.Context, fighterID string) (*models.CareerStats, error) {
	if m.CareerStatsFunc != nil {
		return m.CareerStatsFunc(ctx, fighterID)
	}
	return &models.CareerStats{FighterID: fighterID}, nil
}

// MockTrackingService
type MockTrackingService struct {
	LogFunc       func(ctx context.Context, pred *models.Prediction) error
	ReconcileFunc func(ctx context.Context) (int, error)
	ListFunc      func(ctx context.Context, limit int) ([]models.TrackedPrediction, error)
}

func (m *MockTrackingService) Log(ctx context.Context, pred *models.Prediction) error {
	if m.LogFunc != nil {
		return m.LogFunc(ctx, pred)
	}
	return nil
}

func (m *MockTrackingService) Reconcile(ctx context.Context) (int, error) {
	if m.ReconcileFunc != nil {
		return m.ReconcileFunc(ctx)
	}
	return 0, nil
}

func (m *MockTrackingService) List(ctx context.Context, limit int) ([]models.TrackedPrediction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit)
	}
	return nil, nil
}

// MockBacktestService
type MockBacktestService struct {
	RunFunc func(ctx context.Context, cutoff time.Time, limit int) (*models.BacktestReport, error)
}

func (m *MockBacktestService) Run(ctx context.Context, cutoff time.Time, limit int) (*models.BacktestReport, error) {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, cutoff, limit)
	}
	return &models.BacktestReport{Cutoff: cutoff}, nil
}

// MockIngestQueue
type MockIngestQueue struct {
	EnqueueFunc func(bout *models.Bout) bool
	Enqueued    []*models.Bout
}

func (m *MockIngestQueue) Enqueue(bout *models.Bout) bool {
	if m.EnqueueFunc != nil && !m.EnqueueFunc(bout) {
		return false
	}
	m.Enqueued = append(m.Enqueued, bout)
	return true
}

func (m *MockIngestQueue) QueueDepth() int {
	return len(m.Enqueued)
}
