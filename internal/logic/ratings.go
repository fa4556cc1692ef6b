package logic

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
	"github.com/lhgjose/ufc-prediction-fights/internal/ratings"
)

// ErrFighterUnrated is returned when a fighter has no rated history.
var ErrFighterUnrated = errors.New("fighter has no rated bouts")

// BoutReader is the slice of the record store the ratings service needs.
type BoutReader interface {
	ListBouts(ctx context.Context) ([]models.Bout, error)
	ListFighters(ctx context.Context) (map[string]*models.Fighter, error)
}

// SnapshotStore persists and restores rating snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, fighters map[string]*models.FighterRatings, report *models.ReplayReport) error
	LoadSnapshot(ctx context.Context) (map[string]*models.FighterRatings, error)
	GetFighter(ctx context.Context, fighterID string) (*models.FighterRatings, error)
}

type ratingsService struct {
	bouts  BoutReader
	cache  SnapshotStore
	params ratings.Params
	logger *zap.SugaredLogger

	mu         sync.RWMutex
	current    map[string]*models.FighterRatings
	fighters   map[string]*models.Fighter
	lastReplay *models.ReplayReport
}

// NewRatingsService returns the rating state owner. On construction it
// warm-starts from the snapshot cache when one exists; the first Rebuild
// replaces it with a fresh full replay.
func NewRatingsService(bouts BoutReader, cache SnapshotStore, params ratings.Params, logger *zap.Logger) RatingsService {
	s := &ratingsService{
		bouts:  bouts,
		cache:  cache,
		params: params,
		logger: logger.Sugar(),
	}

	if cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if snap, err := cache.LoadSnapshot(ctx); err != nil {
			s.logger.Warnw("Failed to warm-start from ratings snapshot", "error", err)
		} else if len(snap) > 0 {
			s.current = snap
			s.logger.Infow("Warm-started from ratings snapshot", "fighters", len(snap))
		}
	}
	return s
}

func (s *ratingsService) Rebuild(ctx context.Context) (*models.ReplayReport, error) {
	fighters, err := s.bouts.ListFighters(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fighters: %w", err)
	}
	bouts, err := s.bouts.ListBouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bouts: %w", err)
	}

	engine := ratings.NewEngine(s.params, fighters, s.logger.Desugar())
	state, report := engine.Replay(bouts)
	snapshot := state.Snapshot()

	s.mu.Lock()
	s.current = snapshot
	s.fighters = fighters
	s.lastReplay = report
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SaveSnapshot(ctx, snapshot, report); err != nil {
			// Serving continues from memory; only the warm start is lost
			s.logger.Errorw("Failed to persist ratings snapshot", "error", err)
		}
	}
	return report, nil
}

func (s *ratingsService) FighterRatings(ctx context.Context, fighterID string, asOf time.Time) (*models.FighterRatings, error) {
	s.mu.RLock()
	fr, ok := s.current[fighterID]
	var age float64
	if f, okf := s.fighters[fighterID]; okf && f != nil {
		age = f.Age(asOf)
	}
	s.mu.RUnlock()

	if !ok {
		// Fall back to the cache for fighters rated before a restart
		if s.cache != nil {
			cached, err := s.cache.GetFighter(ctx, fighterID)
			if err == nil && cached != nil {
				fr = cached
				ok = true
			}
		}
		if !ok {
			return nil, ErrFighterUnrated
		}
	}

	cp := fr.Clone()
	ratings.DecayFighter(s.params, cp, asOf, age)
	return cp, nil
}

func (s *ratingsService) Rankings(ctx context.Context, limit int) ([]models.FighterRank, error) {
	s.mu.RLock()
	ranks := make([]models.FighterRank, 0, len(s.current))
	for id, fr := range s.current {
		rank := models.FighterRank{
			FighterID: id,
			Average:   fr.Average(),
			BoutCount: fr.BoutCount,
			Deviation: fr.AggregateDeviation(),
		}
		if f, ok := s.fighters[id]; ok && f != nil {
			rank.Name = f.Name
		}
		ranks = append(ranks, rank)
	}
	s.mu.RUnlock()

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Average != ranks[j].Average {
			return ranks[i].Average > ranks[j].Average
		}
		return ranks[i].FighterID < ranks[j].FighterID
	})

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks, nil
}

func (s *ratingsService) LastReplay() *models.ReplayReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReplay
}
