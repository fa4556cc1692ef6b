package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// BoutStore is the Postgres system of record for bouts and fighters.
// Re-ingested bouts keep every version; reads take the latest ingested
// row per bout so corrections win without losing the audit trail.
type BoutStore struct {
	pg PgPool
}

func NewBoutStore(pg PgPool) *BoutStore {
	return &BoutStore{pg: pg}
}

// UpsertBout records a bout version. ingested_at orders versions of the
// same bout id.
func (s *BoutStore) UpsertBout(ctx context.Context, b *models.Bout) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO bouts (
			id, event_id, bout_date, red_id, blue_id, winner_id,
			no_contest, draw, weight_class, title_fight,
			method, method_detail, round_finished, scheduled_rounds,
			red_notice_days, blue_notice_days, venue, commission, ingested_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17, $18, NOW()
		)
	`, b.ID, b.EventID, b.Date, b.RedID, b.BlueID, b.WinnerID,
		b.NoContest, b.Draw, b.WeightClass, b.TitleFight,
		b.Method, b.MethodDetail, b.RoundFinished, b.ScheduledRounds,
		b.RedNoticeDays, b.BlueNoticeDays, b.Venue, b.Commission)
	if err != nil {
		return fmt.Errorf("upsert bout %s: %w", b.ID, err)
	}
	return nil
}

// ListBouts returns the latest version of every bout, oldest first. Ties
// on date break on bout id, which is the ordering the replay engine
// relies on.
func (s *BoutStore) ListBouts(ctx context.Context) ([]models.Bout, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT DISTINCT ON (id)
			id, event_id, bout_date, red_id, blue_id, winner_id,
			no_contest, draw, weight_class, title_fight,
			method, method_detail, round_finished, scheduled_rounds,
			red_notice_days, blue_notice_days, venue, commission, ingested_at
		FROM bouts
		ORDER BY id, ingested_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list bouts: %w", err)
	}
	defer rows.Close()

	var bouts []models.Bout
	for rows.Next() {
		var b models.Bout
		if err := rows.Scan(
			&b.ID, &b.EventID, &b.Date, &b.RedID, &b.BlueID, &b.WinnerID,
			&b.NoContest, &b.Draw, &b.WeightClass, &b.TitleFight,
			&b.Method, &b.MethodDetail, &b.RoundFinished, &b.ScheduledRounds,
			&b.RedNoticeDays, &b.BlueNoticeDays, &b.Venue, &b.Commission, &b.IngestedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bout: %w", err)
		}
		bouts = append(bouts, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bouts: %w", err)
	}

	// DISTINCT ON forces id ordering; re-sort chronologically here so
	// callers get replay order directly.
	sort.SliceStable(bouts, func(i, j int) bool {
		if !bouts[i].Date.Equal(bouts[j].Date) {
			return bouts[i].Date.Before(bouts[j].Date)
		}
		return bouts[i].ID < bouts[j].ID
	})
	return bouts, nil
}

// UpsertFighter inserts or refreshes a fighter profile.
func (s *BoutStore) UpsertFighter(ctx context.Context, f *models.Fighter) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO fighters (
			id, name, gender, division, stance, height_in, reach_in,
			birth_date, debut_date, wins, losses, draws, no_contests
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			gender = EXCLUDED.gender,
			division = EXCLUDED.division,
			stance = EXCLUDED.stance,
			height_in = EXCLUDED.height_in,
			reach_in = EXCLUDED.reach_in,
			birth_date = EXCLUDED.birth_date,
			debut_date = EXCLUDED.debut_date,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			draws = EXCLUDED.draws,
			no_contests = EXCLUDED.no_contests
	`, f.ID, f.Name, f.Gender, f.Division, f.Stance, f.HeightIn, f.ReachIn,
		f.BirthDate, f.DebutDate, f.Wins, f.Losses, f.Draws, f.NoContest)
	if err != nil {
		return fmt.Errorf("upsert fighter %s: %w", f.ID, err)
	}
	return nil
}

// GetFighter fetches one fighter profile.
func (s *BoutStore) GetFighter(ctx context.Context, id string) (*models.Fighter, error) {
	var f models.Fighter
	err := s.pg.QueryRow(ctx, `
		SELECT id, name, gender, division, stance, height_in, reach_in,
			birth_date, debut_date, wins, losses, draws, no_contests
		FROM fighters WHERE id = $1
	`, id).Scan(
		&f.ID, &f.Name, &f.Gender, &f.Division, &f.Stance, &f.HeightIn, &f.ReachIn,
		&f.BirthDate, &f.DebutDate, &f.Wins, &f.Losses, &f.Draws, &f.NoContest,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get fighter %s: %w", id, err)
	}
	return &f, nil
}

// ListFighters returns all fighter profiles keyed by id.
func (s *BoutStore) ListFighters(ctx context.Context) (map[string]*models.Fighter, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, name, gender, division, stance, height_in, reach_in,
			birth_date, debut_date, wins, losses, draws, no_contests
		FROM fighters
	`)
	if err != nil {
		return nil, fmt.Errorf("list fighters: %w", err)
	}
	defer rows.Close()

	fighters := make(map[string]*models.Fighter)
	for rows.Next() {
		var f models.Fighter
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Gender, &f.Division, &f.Stance, &f.HeightIn, &f.ReachIn,
			&f.BirthDate, &f.DebutDate, &f.Wins, &f.Losses, &f.Draws, &f.NoContest,
		); err != nil {
			return nil, fmt.Errorf("scan fighter: %w", err)
		}
		fighters[f.ID] = &f
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fighters: %w", err)
	}
	return fighters, nil
}
