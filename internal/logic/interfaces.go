package logic

import (
	"context"
	"time"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// RatingsService owns the replayed rating state and its lifecycle.
type RatingsService interface {
	// Rebuild replays the full bout history from the record store into a
	// fresh state and persists a snapshot.
	Rebuild(ctx context.Context) (*models.ReplayReport, error)
	// FighterRatings returns a fighter's ratings settled to asOf. The
	// returned value is a copy; mutating it never touches the state.
	FighterRatings(ctx context.Context, fighterID string, asOf time.Time) (*models.FighterRatings, error)
	// Rankings lists the top fighters by average rating.
	Rankings(ctx context.Context, limit int) ([]models.FighterRank, error)
	LastReplay() *models.ReplayReport
}

// PredictionService evaluates matchups and produces picks.
type PredictionService interface {
	Predict(ctx context.Context, req *models.PredictRequest) (*models.Prediction, error)
	Compare(ctx context.Context, redID, blueID string) (*models.Matchup, error)
	Narrative(ctx context.Context, pred *models.Prediction) (string, error)
}

// FighterStatsService serves per-fighter aggregates from the stat
// warehouse.
type FighterStatsService interface {
	FinishProfile(ctx context.Context, fighterID string) (*models.FinishProfile, error)
	CareerStats(ctx context.Context, fighterID string) (*models.CareerStats, error)
}

// TrackingService logs predictions and reconciles them against results.
type TrackingService interface {
	Log(ctx context.Context, pred *models.Prediction) error
	Reconcile(ctx context.Context) (int, error)
	List(ctx context.Context, limit int) ([]models.TrackedPrediction, error)
}

// BacktestService replays history up to a cutoff and scores predictions
// for the bouts that follow.
type BacktestService interface {
	Run(ctx context.Context, cutoff time.Time, limit int) (*models.BacktestReport, error)
}
