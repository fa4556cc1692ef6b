package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
	"github.com/lhgjose/ufc-prediction-fights/internal/predict"
	"github.com/lhgjose/ufc-prediction-fights/internal/store"
)

type predictionService struct {
	ratings  RatingsService
	stats    FighterStatsService
	tracking TrackingService
	fighters FighterReader

	evaluator *predict.Evaluator
	engine    *predict.Engine
	logger    *zap.SugaredLogger
}

// FighterReader resolves fighter profiles for narrative names.
type FighterReader interface {
	GetFighter(ctx context.Context, id string) (*models.Fighter, error)
}

// NewPredictionService wires the matchup evaluator and pick engine to
// the rating state and stat warehouse. tracking may be nil to disable
// prediction logging.
func NewPredictionService(ratingsSvc RatingsService, stats FighterStatsService, tracking TrackingService, fighters FighterReader, params predict.Params, logger *zap.Logger) PredictionService {
	return &predictionService{
		ratings:   ratingsSvc,
		stats:     stats,
		tracking:  tracking,
		fighters:  fighters,
		evaluator: predict.NewEvaluator(params),
		engine:    predict.NewEngine(params),
		logger:    logger.Sugar(),
	}
}

func (s *predictionService) Predict(ctx context.Context, req *models.PredictRequest) (*models.Prediction, error) {
	now := time.Now().UTC()

	var (
		red, blue         *models.FighterRatings
		redProf, blueProf *models.FinishProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		red, err = s.sideRatings(gctx, req.RedID, now)
		return err
	})
	g.Go(func() error {
		var err error
		blue, err = s.sideRatings(gctx, req.BlueID, now)
		return err
	})
	g.Go(func() error {
		redProf = s.sideProfile(gctx, req.RedID)
		blueProf = s.sideProfile(gctx, req.BlueID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mctx := contextFromRequest(req)
	if mctx.RedWeightClass == "" {
		mctx.RedWeightClass = s.fighterDivision(ctx, req.RedID)
	}
	if mctx.BlueWeightClass == "" {
		mctx.BlueWeightClass = s.fighterDivision(ctx, req.BlueID)
	}

	m := s.evaluator.Evaluate(red, blue, mctx)
	m.RedID = req.RedID
	m.BlueID = req.BlueID

	pred := s.engine.Predict(m, red, blue, redProf, blueProf)

	if s.tracking != nil && !pred.Refused {
		if err := s.tracking.Log(ctx, pred); err != nil {
			// Logging failure never blocks the pick itself
			s.logger.Errorw("Failed to log prediction", "error", err, "predictionID", pred.ID)
		}
	}
	return pred, nil
}

func (s *predictionService) Compare(ctx context.Context, redID, blueID string) (*models.Matchup, error) {
	now := time.Now().UTC()

	var red, blue *models.FighterRatings
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		red, err = s.sideRatings(gctx, redID, now)
		return err
	})
	g.Go(func() error {
		var err error
		blue, err = s.sideRatings(gctx, blueID, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := s.evaluator.Evaluate(red, blue, models.MatchupContext{
		ScheduledRounds: 3,
		RedWeightClass:  s.fighterDivision(ctx, redID),
		BlueWeightClass: s.fighterDivision(ctx, blueID),
	})
	m.RedID = redID
	m.BlueID = blueID
	return m, nil
}

func (s *predictionService) Narrative(ctx context.Context, pred *models.Prediction) (string, error) {
	redName := s.fighterName(ctx, pred.RedID)
	blueName := s.fighterName(ctx, pred.BlueID)
	return predict.Narrative(pred, redName, blueName), nil
}

// sideRatings loads one side's settled ratings. An unrated fighter maps
// to nil so the evaluator can refuse with its own reason instead of the
// call failing.
func (s *predictionService) sideRatings(ctx context.Context, fighterID string, asOf time.Time) (*models.FighterRatings, error) {
	fr, err := s.ratings.FighterRatings(ctx, fighterID, asOf)
	if errors.Is(err, ErrFighterUnrated) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ratings for %s: %w", fighterID, err)
	}
	return fr, nil
}

// sideProfile loads a finish profile, degrading to nil on any failure.
// The round picker falls back to priors without one.
func (s *predictionService) sideProfile(ctx context.Context, fighterID string) *models.FinishProfile {
	if s.stats == nil {
		return nil
	}
	prof, err := s.stats.FinishProfile(ctx, fighterID)
	if err != nil {
		s.logger.Warnw("Failed to load finish profile", "error", err, "fighterID", fighterID)
		return nil
	}
	return prof
}

func (s *predictionService) fighterName(ctx context.Context, id string) string {
	if s.fighters == nil {
		return ""
	}
	f, err := s.fighters.GetFighter(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warnw("Failed to resolve fighter name", "error", err, "fighterID", id)
		}
		return ""
	}
	return f.Name
}

// fighterDivision resolves the fighter's registered division, used as
// the weight class when the request does not carry one.
func (s *predictionService) fighterDivision(ctx context.Context, id string) string {
	if s.fighters == nil {
		return ""
	}
	f, err := s.fighters.GetFighter(ctx, id)
	if err != nil || f == nil {
		return ""
	}
	return f.Division
}

func contextFromRequest(req *models.PredictRequest) models.MatchupContext {
	rounds := req.ScheduledRounds
	if rounds == 0 {
		rounds = 3
	}
	return models.MatchupContext{
		ScheduledRounds: rounds,
		TitleFight:      req.TitleFight,
		RedWeightClass:  req.RedWeightClass,
		BlueWeightClass: req.BlueWeightClass,
		RedNoticeDays:   req.RedNoticeDays,
		BlueNoticeDays:  req.BlueNoticeDays,
		Venue:           req.Venue,
		HomeFighterID:   req.HomeFighterID,
	}
}
