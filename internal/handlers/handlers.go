package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lhgjose/ufc-prediction-fights/internal/logic"
	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// MaxBodySize limits the size of request bodies to 4MB; event-card
// batches with full stat lines run large.
const MaxBodySize = 4 << 20

// IngestQueue defines the interface for the bout ingestion worker pool
type IngestQueue interface {
	Enqueue(bout *models.Bout) bool
	QueueDepth() int
}

type Config struct {
	WorkerPool IngestQueue
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Ratings      logic.RatingsService
	Prediction   logic.PredictionService
	FighterStats logic.FighterStatsService
	Tracking     logic.TrackingService
	Backtest     logic.BacktestService
}

type Handler struct {
	pool         IngestQueue
	pg           *pgxpool.Pool
	ch           driver.Conn
	redis        *redis.Client
	logger       *zap.SugaredLogger
	validator    *validator.Validate
	ratings      logic.RatingsService
	prediction   logic.PredictionService
	fighterStats logic.FighterStatsService
	tracking     logic.TrackingService
	backtest     logic.BacktestService
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:         cfg.WorkerPool,
		pg:           cfg.Postgres,
		ch:           cfg.ClickHouse,
		redis:        cfg.Redis,
		logger:       cfg.Logger.Sugar(),
		validator:    validator.New(),
		ratings:      cfg.Ratings,
		prediction:   cfg.Prediction,
		fighterStats: cfg.FighterStats,
		tracking:     cfg.Tracking,
		backtest:     cfg.Backtest,
	}
}
