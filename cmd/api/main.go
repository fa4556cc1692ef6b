package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/config"
	"github.com/lhgjose/ufc-prediction-fights/internal/handlers"
	"github.com/lhgjose/ufc-prediction-fights/internal/logic"
	"github.com/lhgjose/ufc-prediction-fights/internal/store"
	"github.com/lhgjose/ufc-prediction-fights/internal/worker"
)

func main() {
	// .env is a local-dev convenience; absence is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres: system of record for bouts, fighters and the prediction ledger
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to create Postgres pool", "error", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		sugar.Fatalw("Failed to ping Postgres", "error", err)
	}

	// ClickHouse: stat warehouse for per-bout stat lines and results
	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Failed to parse ClickHouse URL", "error", err)
	}
	ch, err := clickhouse.Open(chOpts)
	if err != nil {
		sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
	}
	defer ch.Close()
	if err := ch.Ping(ctx); err != nil {
		sugar.Fatalw("Failed to ping ClickHouse", "error", err)
	}

	// Redis: rating snapshot cache and staleness marker
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Failed to parse Redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sugar.Fatalw("Failed to ping Redis", "error", err)
	}

	boutStore := store.NewBoutStore(pg)
	snapshots := store.NewSnapshotCache(rdb)

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		ClickHouse:    ch,
		Bouts:         boutStore,
		Redis:         rdb,
		Logger:        logger,
	})
	pool.Start(ctx)
	defer pool.Stop()

	ratingsSvc := logic.NewRatingsService(boutStore, snapshots, cfg.Ratings, logger)
	statsSvc := logic.NewFighterStatsService(ch)
	trackingSvc := logic.NewTrackingService(pg, logger)
	predictionSvc := logic.NewPredictionService(ratingsSvc, statsSvc, trackingSvc, boutStore, cfg.Predict, logger)
	backtestSvc := logic.NewBacktestService(boutStore, cfg.Ratings, cfg.Predict, logger)

	// First replay at boot so predictions are live without an operator
	// trigger. Failure is survivable: a warm-started snapshot still
	// serves, and /ratings/rebuild can retry.
	if _, err := ratingsSvc.Rebuild(ctx); err != nil {
		sugar.Errorw("Initial rating replay failed", "error", err)
	}

	h := handlers.New(handlers.Config{
		WorkerPool:   pool,
		Postgres:     pg,
		ClickHouse:   ch,
		Redis:        rdb,
		Logger:       logger,
		Ratings:      ratingsSvc,
		Prediction:   predictionSvc,
		FighterStats: statsSvc,
		Tracking:     trackingSvc,
		Backtest:     backtestSvc,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}
}
