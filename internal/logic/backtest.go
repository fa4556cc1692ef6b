package logic

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/backtest"
	"github.com/lhgjose/ufc-prediction-fights/internal/models"
	"github.com/lhgjose/ufc-prediction-fights/internal/predict"
	"github.com/lhgjose/ufc-prediction-fights/internal/ratings"
)

type backtestService struct {
	bouts         BoutReader
	ratingParams  ratings.Params
	predictParams predict.Params
	logger        *zap.Logger
}

// NewBacktestService returns the historical accuracy runner. Each run
// loads the full history fresh from the record store, so results always
// reflect the latest ingested corrections.
func NewBacktestService(bouts BoutReader, rp ratings.Params, pp predict.Params, logger *zap.Logger) BacktestService {
	return &backtestService{bouts: bouts, ratingParams: rp, predictParams: pp, logger: logger}
}

func (s *backtestService) Run(ctx context.Context, cutoff time.Time, limit int) (*models.BacktestReport, error) {
	fighters, err := s.bouts.ListFighters(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fighters: %w", err)
	}
	bouts, err := s.bouts.ListBouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bouts: %w", err)
	}

	runner := backtest.NewRunner(s.ratingParams, s.predictParams, fighters, s.logger)
	return runner.Run(bouts, cutoff, limit)
}
