package logic

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
	"github.com/lhgjose/ufc-prediction-fights/internal/store"
)

type trackingService struct {
	pg     store.PgPool
	logger *zap.SugaredLogger
}

// NewTrackingService returns the prediction ledger, backed by Postgres.
func NewTrackingService(pg store.PgPool, logger *zap.Logger) TrackingService {
	return &trackingService{pg: pg, logger: logger.Sugar()}
}

func (s *trackingService) Log(ctx context.Context, pred *models.Prediction) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO tracked_predictions (
			prediction_id, red_id, blue_id,
			predicted_winner, predicted_method, predicted_round,
			logged_at, outcome
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (prediction_id) DO NOTHING
	`, pred.ID, pred.RedID, pred.BlueID,
		pred.WinnerID, pred.Method, pred.Round,
		pred.CreatedAt, models.OutcomePending)
	if err != nil {
		return fmt.Errorf("log prediction %s: %w", pred.ID, err)
	}
	return nil
}

// Reconcile matches pending predictions against bouts recorded since,
// marking each correct or incorrect. A prediction matches a bout when
// both fighter ids line up regardless of corner, and the bout happened
// after the prediction was logged. Returns the number reconciled.
func (s *trackingService) Reconcile(ctx context.Context) (int, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT tp.prediction_id, tp.predicted_winner, b.id, b.winner_id, b.method, b.no_contest, b.draw
		FROM tracked_predictions tp
		JOIN LATERAL (
			SELECT DISTINCT ON (id) id, winner_id, method, no_contest, draw, bout_date, ingested_at
			FROM bouts
			WHERE ((red_id = tp.red_id AND blue_id = tp.blue_id)
				OR (red_id = tp.blue_id AND blue_id = tp.red_id))
				AND bout_date >= tp.logged_at::date
			ORDER BY id, ingested_at DESC
		) b ON true
		WHERE tp.outcome = $1
	`, models.OutcomePending)
	if err != nil {
		return 0, fmt.Errorf("reconcile query: %w", err)
	}
	defer rows.Close()

	type resolution struct {
		predictionID string
		boutID       string
		outcome      models.TrackedOutcome
		winner       string
		method       string
	}
	var resolutions []resolution

	for rows.Next() {
		var (
			predictionID, predictedWinner string
			boutID, winnerID, method      string
			noContest, draw               bool
		)
		if err := rows.Scan(&predictionID, &predictedWinner, &boutID, &winnerID, &method, &noContest, &draw); err != nil {
			return 0, fmt.Errorf("scan reconcile row: %w", err)
		}

		res := resolution{predictionID: predictionID, boutID: boutID, winner: winnerID, method: method}
		switch {
		case noContest:
			res.outcome = models.OutcomeNoContest
		case draw || winnerID == "":
			res.outcome = models.OutcomeIncorrect
		case winnerID == predictedWinner:
			res.outcome = models.OutcomeCorrect
		default:
			res.outcome = models.OutcomeIncorrect
		}
		resolutions = append(resolutions, res)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("reconcile rows: %w", err)
	}

	for _, res := range resolutions {
		_, err := s.pg.Exec(ctx, `
			UPDATE tracked_predictions
			SET outcome = $1, bout_id = $2, actual_winner = $3, actual_method = $4
			WHERE prediction_id = $5
		`, res.outcome, res.boutID, res.winner, res.method, res.predictionID)
		if err != nil {
			return 0, fmt.Errorf("update prediction %s: %w", res.predictionID, err)
		}
	}

	if len(resolutions) > 0 {
		s.logger.Infow("Reconciled predictions", "count", len(resolutions))
	}
	return len(resolutions), nil
}

func (s *trackingService) List(ctx context.Context, limit int) ([]models.TrackedPrediction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := s.pg.Query(ctx, `
		SELECT prediction_id, COALESCE(bout_id, ''), red_id, blue_id,
			predicted_winner, predicted_method, predicted_round,
			logged_at, outcome, COALESCE(actual_winner, ''), COALESCE(actual_method, '')
		FROM tracked_predictions
		ORDER BY logged_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	defer rows.Close()

	var out []models.TrackedPrediction
	for rows.Next() {
		var tp models.TrackedPrediction
		if err := rows.Scan(
			&tp.PredictionID, &tp.BoutID, &tp.RedID, &tp.BlueID,
			&tp.PredictedWinner, &tp.PredictedMethod, &tp.PredictedRound,
			&tp.LoggedAt, &tp.Outcome, &tp.ActualWinner, &tp.ActualMethod,
		); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		out = append(out, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return out, nil
}
