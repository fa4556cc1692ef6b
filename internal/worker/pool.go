// Package worker implements the buffered worker pool for async bout
// ingestion. It decouples HTTP request handling from database writes:
// batched inserts into the ClickHouse stat warehouse, versioned upserts
// into the Postgres record store, and a staleness marker in Redis so the
// rating state knows a rebuild is due.
package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
	"github.com/lhgjose/ufc-prediction-fights/internal/store"
)

// Prometheus metrics
var (
	boutsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ufc_bouts_ingested_total",
		Help: "Total number of bout records accepted into the queue",
	})

	boutsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ufc_bouts_processed_total",
		Help: "Total number of bout records written by workers",
	})

	boutsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ufc_bouts_failed_total",
		Help: "Total number of bout records that failed processing",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ufc_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ufc_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	boutsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ufc_bouts_dropped_total",
		Help: "Total number of bout records dropped during shutdown",
	})
)

// Job represents one bout record moving through the pipeline.
type Job struct {
	Bout      *models.Bout
	RawJSON   string
	Timestamp time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Bouts         BoutWriter
	Redis         RedisMarker
	Logger        *zap.Logger
}

// BoutWriter is the record-store surface the pool writes through.
type BoutWriter interface {
	UpsertBout(ctx context.Context, b *models.Bout) error
}

// RedisMarker is the minimal Redis surface for the staleness flag.
type RedisMarker interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Pool manages a pool of workers for async bout processing
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool, flushing queued work.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	// Close the queue first so workers drain whatever is buffered before
	// exiting, then cancel once they are done.
	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds a bout to the queue.
func (p *Pool) Enqueue(bout *models.Bout) bool {
	rawJSON, _ := json.Marshal(bout)

	job := Job{
		Bout:      bout,
		RawJSON:   string(rawJSON),
		Timestamp: time.Now(),
	}

	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue bout (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- job:
		boutsIngested.Inc()
		return true
	case <-p.ctx.Done():
		p.logger.Warn("Worker pool context canceled, dropping bout")
		boutsDropped.Inc()
		return false
	default:
		// Queue full: shed load rather than block the ingest handler
		boutsDropped.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			boutsFailed.Add(float64(len(batch)))
		} else {
			boutsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}

			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch writes one batch everywhere it needs to go: stat rows and
// results into ClickHouse, versioned bout records into Postgres, and the
// staleness marker into Redis.
func (p *Pool) processBatch(batch []Job) error {
	if len(batch) == 0 {
		return nil
	}

	ctx := context.Background()

	if err := p.insertStatRows(ctx, batch); err != nil {
		return err
	}
	if err := p.insertResults(ctx, batch); err != nil {
		return err
	}

	// Postgres record store: per-bout versioned upsert. One failed bout
	// does not abort the batch.
	for _, job := range batch {
		if err := p.config.Bouts.UpsertBout(ctx, job.Bout); err != nil {
			p.logger.Errorw("Failed to upsert bout record", "error", err, "boutID", job.Bout.ID)
		}
	}

	if p.config.Redis != nil {
		if err := p.config.Redis.Set(ctx, store.StaleKey, time.Now().UTC().Format(time.RFC3339), 0).Err(); err != nil {
			p.logger.Warnw("Failed to mark ratings stale", "error", err)
		}
	}

	return nil
}

// insertStatRows appends one warehouse row per fighter side carrying the
// bout stat line, skipping sides with no recorded stats.
func (p *Pool) insertStatRows(ctx context.Context, batch []Job) error {
	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO ufc_stats.bout_stats (
			bout_id, event_id, bout_date, fighter_id, opponent_id, weight_class,
			knockdowns, sig_strikes_landed, sig_strikes_attempts, total_strikes_landed,
			takedowns_landed, takedowns_attempted, sub_attempts, reversals,
			control_seconds, raw_json, ingested_at
		)
	`)
	if err != nil {
		return err
	}

	appendSide := func(job Job, fighterID, opponentID string, stats *models.BoutStats) error {
		if stats == nil {
			return nil
		}
		b := job.Bout
		return chBatch.Append(
			b.ID, b.EventID, b.Date, fighterID, opponentID, b.WeightClass,
			uint32(stats.Knockdowns),
			uint32(stats.SigStrikesLanded), uint32(stats.SigStrikesAttempts),
			uint32(stats.TotalStrikesLanded),
			uint32(stats.TakedownsLanded), uint32(stats.TakedownsAttempted),
			uint32(stats.SubAttempts), uint32(stats.Reversals),
			uint32(stats.ControlSeconds),
			job.RawJSON, job.Timestamp,
		)
	}

	for _, job := range batch {
		b := job.Bout
		if err := appendSide(job, b.RedID, b.BlueID, b.RedStats); err != nil {
			p.logger.Warnw("Failed to append stat row", "error", err, "boutID", b.ID, "fighterID", b.RedID)
		}
		if err := appendSide(job, b.BlueID, b.RedID, b.BlueStats); err != nil {
			p.logger.Warnw("Failed to append stat row", "error", err, "boutID", b.ID, "fighterID", b.BlueID)
		}
	}

	return chBatch.Send()
}

// insertResults appends one warehouse row per bout with the outcome, the
// source for finish profiles.
func (p *Pool) insertResults(ctx context.Context, batch []Job) error {
	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO ufc_stats.bout_results (
			bout_id, bout_date, winner_id, method, round_finished,
			scheduled_rounds, no_contest, draw, ingested_at
		)
	`)
	if err != nil {
		return err
	}

	for _, job := range batch {
		b := job.Bout
		if err := chBatch.Append(
			b.ID, b.Date, b.WinnerID, string(b.NormalizedMethod()),
			uint8(b.RoundFinished), uint8(b.ScheduledRounds),
			boolToUInt8(b.NoContest), boolToUInt8(b.Draw),
			job.Timestamp,
		); err != nil {
			p.logger.Warnw("Failed to append result row", "error", err, "boutID", b.ID)
		}
	}

	return chBatch.Send()
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
