package logic

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"golang.org/x/sync/errgroup"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

type fighterStatsService struct {
	ch driver.Conn
}

func NewFighterStatsService(ch driver.Conn) FighterStatsService {
	return &fighterStatsService{ch: ch}
}

// FinishProfile aggregates how this fighter's wins arrive: counts per
// method and, for stoppages, per round.
func (s *fighterStatsService) FinishProfile(ctx context.Context, fighterID string) (*models.FinishProfile, error) {
	prof := &models.FinishProfile{FighterID: fighterID}

	// bout_results is append-only: corrections land as new rows, and a
	// changed winner changes the sort key, so the table alone never
	// supersedes. Collapse to the latest version per bout first.
	rows, err := s.ch.Query(ctx, `
		SELECT method, round_finished, count() AS wins
		FROM (
			SELECT
				bout_id,
				argMax(winner_id, ingested_at) AS winner_id,
				argMax(method, ingested_at) AS method,
				argMax(round_finished, ingested_at) AS round_finished,
				argMax(no_contest, ingested_at) AS no_contest,
				argMax(draw, ingested_at) AS draw
			FROM ufc_stats.bout_results
			GROUP BY bout_id
		)
		WHERE winner_id = ? AND no_contest = 0 AND draw = 0
		GROUP BY method, round_finished
	`, fighterID)
	if err != nil {
		return nil, fmt.Errorf("finish profile for %s: %w", fighterID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawMethod string
			round     uint8
			wins      uint64
		)
		if err := rows.Scan(&rawMethod, &round, &wins); err != nil {
			return nil, fmt.Errorf("scan finish profile row: %w", err)
		}
		for i := 0; i < int(wins); i++ {
			prof.AddWin(models.NormalizeMethod(rawMethod), int(round))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("finish profile for %s: %w", fighterID, err)
	}
	return prof, nil
}

// CareerStats aggregates volume and grappling output across every stat
// row recorded for the fighter. The two halves of the query run
// concurrently and join before returning.
func (s *fighterStatsService) CareerStats(ctx context.Context, fighterID string) (*models.CareerStats, error) {
	stats := &models.CareerStats{FighterID: fighterID}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.fillOutputStats(ctx, fighterID, stats); err != nil {
			return fmt.Errorf("output stats: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := s.fillAbsorbedStats(ctx, fighterID, stats); err != nil {
			return fmt.Errorf("absorbed stats: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *fighterStatsService) fillOutputStats(ctx context.Context, fighterID string, out *models.CareerStats) error {
	var (
		bouts, sigLanded, sigAttempts    uint64
		tdLanded, tdAttempted            uint64
		subAttempts, control, knockdowns uint64
	)
	// Latest version per (bout, fighter); re-ingested rows never double
	// the sums. fighter_id is part of the dedupe key, so filtering it
	// inside the subquery is version-safe.
	err := s.ch.QueryRow(ctx, `
		SELECT
			count() AS bouts,
			sum(sig_strikes_landed) AS sig_landed,
			sum(sig_strikes_attempts) AS sig_attempts,
			sum(takedowns_landed) AS td_landed,
			sum(takedowns_attempted) AS td_attempted,
			sum(sub_attempts) AS sub_attempts,
			sum(control_seconds) AS control,
			sum(knockdowns) AS knockdowns
		FROM (
			SELECT
				bout_id,
				fighter_id,
				argMax(sig_strikes_landed, ingested_at) AS sig_strikes_landed,
				argMax(sig_strikes_attempts, ingested_at) AS sig_strikes_attempts,
				argMax(takedowns_landed, ingested_at) AS takedowns_landed,
				argMax(takedowns_attempted, ingested_at) AS takedowns_attempted,
				argMax(sub_attempts, ingested_at) AS sub_attempts,
				argMax(control_seconds, ingested_at) AS control_seconds,
				argMax(knockdowns, ingested_at) AS knockdowns
			FROM ufc_stats.bout_stats
			WHERE fighter_id = ?
			GROUP BY bout_id, fighter_id
		)
	`, fighterID).Scan(&bouts, &sigLanded, &sigAttempts, &tdLanded, &tdAttempted,
		&subAttempts, &control, &knockdowns)
	if err != nil {
		return err
	}

	out.Bouts = int(bouts)
	out.SigStrikesLanded = int(sigLanded)
	out.TakedownsLanded = int(tdLanded)
	out.SubAttempts = int(subAttempts)
	out.ControlSeconds = int(control)
	out.Knockdowns = int(knockdowns)
	if sigAttempts > 0 {
		out.StrikeAccuracy = float64(sigLanded) / float64(sigAttempts)
	}
	if tdAttempted > 0 {
		out.TakedownAccuracy = float64(tdLanded) / float64(tdAttempted)
	}
	return nil
}

func (s *fighterStatsService) fillAbsorbedStats(ctx context.Context, fighterID string, out *models.CareerStats) error {
	var absorbed uint64
	// opponent_id is not in the dedupe key, so a correction can move it:
	// resolve the latest version first, then filter.
	err := s.ch.QueryRow(ctx, `
		SELECT sum(sig_landed) AS absorbed
		FROM (
			SELECT
				bout_id,
				fighter_id,
				argMax(sig_strikes_landed, ingested_at) AS sig_landed,
				argMax(opponent_id, ingested_at) AS opponent_id
			FROM ufc_stats.bout_stats
			GROUP BY bout_id, fighter_id
		)
		WHERE opponent_id = ?
	`, fighterID).Scan(&absorbed)
	if err != nil {
		return err
	}
	out.SigStrikesAbsorbed = int(absorbed)
	return nil
}
