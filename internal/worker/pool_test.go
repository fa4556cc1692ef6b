package worker

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

func testBout(id string) *models.Bout {
	return &models.Bout{
		ID:              id,
		Date:            time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		RedID:           "f-1",
		BlueID:          "f-2",
		WinnerID:        "f-1",
		Method:          "KO/TKO",
		RoundFinished:   1,
		ScheduledRounds: 3,
		RedStats:        &models.BoutStats{FighterID: "f-1", SigStrikesLanded: 30, SigStrikesAttempts: 50},
		BlueStats:       &models.BoutStats{FighterID: "f-2", SigStrikesLanded: 12, SigStrikesAttempts: 40},
	}
}

func TestEnqueueFull(t *testing.T) {
	// Build the pool by hand to avoid external dependencies
	cfg := PoolConfig{
		QueueSize: 1,
		Logger:    zap.NewNop(),
	}

	pool := &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.ctx = ctx
	pool.cancel = cancel
	defer cancel()

	if !pool.Enqueue(testBout("b-1")) {
		t.Fatal("failed to enqueue first bout")
	}

	start := time.Now()
	enqueued := pool.Enqueue(testBout("b-2"))
	duration := time.Since(start)

	if enqueued {
		t.Error("Enqueue should have returned false when queue is full")
	}
	if duration > 10*time.Millisecond {
		t.Errorf("Enqueue took too long (%v), expected immediate return", duration)
	}
}

func TestEnqueueAfterStop(t *testing.T) {
	ch := &MockClickHouseConn{}
	bw := &MockBoutWriter{}

	pool := NewPool(PoolConfig{
		WorkerCount: 1,
		QueueSize:   10,
		ClickHouse:  ch,
		Bouts:       bw,
		Logger:      zap.NewNop(),
	})
	pool.Start(context.Background())
	pool.Stop()

	// Channel is closed: the recover path must turn the panic into false
	if pool.Enqueue(testBout("b-late")) {
		t.Error("Enqueue after Stop should fail")
	}
}

func TestStopFlushesQueuedWork(t *testing.T) {
	ch := &MockClickHouseConn{}
	bw := &MockBoutWriter{}

	pool := NewPool(PoolConfig{
		WorkerCount:   2,
		QueueSize:     100,
		BatchSize:     50, // larger than the workload: only Stop flushes
		FlushInterval: time.Hour,
		ClickHouse:    ch,
		Bouts:         bw,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())

	for i := 0; i < 10; i++ {
		if !pool.Enqueue(testBout("b-" + string(rune('a'+i)))) {
			t.Fatalf("enqueue %d failed", i)
		}
	}

	pool.Stop()

	if got := bw.Count(); got != 10 {
		t.Errorf("record store received %d bouts, want 10", got)
	}
	// Two warehouse rows per bout: one stat line per corner
	if got := ch.AppendedRows("bout_stats"); got != 20 {
		t.Errorf("bout_stats rows = %d, want 20", got)
	}
	if got := ch.AppendedRows("bout_results"); got != 10 {
		t.Errorf("bout_results rows = %d, want 10", got)
	}
}

func TestBatchSizeTriggersFlush(t *testing.T) {
	ch := &MockClickHouseConn{}
	bw := &MockBoutWriter{}

	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     100,
		BatchSize:     5,
		FlushInterval: time.Hour,
		ClickHouse:    ch,
		Bouts:         bw,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())
	defer pool.Stop()

	for i := 0; i < 5; i++ {
		pool.Enqueue(testBout("b-" + string(rune('a'+i))))
	}

	deadline := time.After(2 * time.Second)
	for bw.Count() < 5 {
		select {
		case <-deadline:
			t.Fatalf("batch not flushed: %d bouts written", bw.Count())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStatRowsSkipMissingSides(t *testing.T) {
	ch := &MockClickHouseConn{}
	bw := &MockBoutWriter{}

	pool := NewPool(PoolConfig{
		WorkerCount: 1,
		QueueSize:   10,
		ClickHouse:  ch,
		Bouts:       bw,
		Logger:      zap.NewNop(),
	})
	pool.Start(context.Background())

	b := testBout("b-thin")
	b.BlueStats = nil
	pool.Enqueue(b)
	pool.Stop()

	if got := ch.AppendedRows("bout_stats"); got != 1 {
		t.Errorf("bout_stats rows = %d, want 1 (missing corner skipped)", got)
	}
	if got := ch.AppendedRows("bout_results"); got != 1 {
		t.Errorf("bout_results rows = %d, want 1", got)
	}
}

func TestQueueDepth(t *testing.T) {
	cfg := PoolConfig{QueueSize: 5, Logger: zap.NewNop()}
	pool := &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool.ctx = ctx
	pool.cancel = cancel
	defer cancel()

	if pool.QueueDepth() != 0 {
		t.Errorf("empty depth = %d", pool.QueueDepth())
	}
	pool.Enqueue(testBout("b-1"))
	pool.Enqueue(testBout("b-2"))
	if pool.QueueDepth() != 2 {
		t.Errorf("depth = %d, want 2", pool.QueueDepth())
	}
}
