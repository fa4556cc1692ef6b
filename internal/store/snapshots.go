package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

const (
	ratingsKey    = "ratings:current"
	replayMetaKey = "ratings:replay_meta"

	// StaleKey is set by the ingest pipeline when new bouts land and
	// cleared by the next snapshot save.
	StaleKey = "ratings:stale"
)

// SnapshotCache persists the last replayed rating state in Redis so a
// restarted process can serve lookups before its first full rebuild.
// The in-memory state is authoritative; the cache is only a warm start.
type SnapshotCache struct {
	redis RedisClient
}

func NewSnapshotCache(rc RedisClient) *SnapshotCache {
	return &SnapshotCache{redis: rc}
}

// replayMeta is the small replay summary kept alongside the snapshot.
type replayMeta struct {
	BoutsProcessed int       `json:"bouts_processed"`
	BoutsSkipped   int       `json:"bouts_skipped"`
	FightersRated  int       `json:"fighters_rated"`
	FinishedAt     time.Time `json:"finished_at"`
}

// SaveSnapshot replaces the cached rating state wholesale. One pipeline
// round trip regardless of roster size.
func (c *SnapshotCache) SaveSnapshot(ctx context.Context, fighters map[string]*models.FighterRatings, report *models.ReplayReport) error {
	pipe := c.redis.Pipeline()
	pipe.Del(ctx, ratingsKey, StaleKey)

	for id, fr := range fighters {
		data, err := json.Marshal(fr)
		if err != nil {
			return fmt.Errorf("marshal ratings for %s: %w", id, err)
		}
		pipe.HSet(ctx, ratingsKey, id, data)
	}

	if report != nil {
		meta, err := json.Marshal(replayMeta{
			BoutsProcessed: report.BoutsProcessed,
			BoutsSkipped:   report.BoutsSkipped,
			FightersRated:  report.FightersRated,
			FinishedAt:     report.FinishedAt,
		})
		if err != nil {
			return fmt.Errorf("marshal replay meta: %w", err)
		}
		pipe.Set(ctx, replayMetaKey, meta, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save ratings snapshot: %w", err)
	}
	return nil
}

// GetFighter reads one fighter's cached ratings.
func (c *SnapshotCache) GetFighter(ctx context.Context, fighterID string) (*models.FighterRatings, error) {
	data, err := c.redis.HGet(ctx, ratingsKey, fighterID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached ratings for %s: %w", fighterID, err)
	}

	var fr models.FighterRatings
	if err := json.Unmarshal(data, &fr); err != nil {
		return nil, fmt.Errorf("decode cached ratings for %s: %w", fighterID, err)
	}
	return &fr, nil
}

// LoadSnapshot reads the whole cached state, keyed by fighter id. An
// empty cache yields an empty map, not an error.
func (c *SnapshotCache) LoadSnapshot(ctx context.Context) (map[string]*models.FighterRatings, error) {
	entries, err := c.redis.HGetAll(ctx, ratingsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("load ratings snapshot: %w", err)
	}

	fighters := make(map[string]*models.FighterRatings, len(entries))
	for id, raw := range entries {
		var fr models.FighterRatings
		if err := json.Unmarshal([]byte(raw), &fr); err != nil {
			return nil, fmt.Errorf("decode cached ratings for %s: %w", id, err)
		}
		fighters[id] = &fr
	}
	return fighters, nil
}
