package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lhgjose/ufc-prediction-fights/internal/predict"
	"github.com/lhgjose/ufc-prediction-fights/internal/ratings"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Database URLs
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string

	// Worker pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration

	// Rating engine tuning. Defaults match the calibrated values; env
	// overrides exist for experimentation, not routine operation.
	Ratings ratings.Params
	Predict predict.Params
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		WorkerCount:   getEnvInt("WORKER_COUNT", 8),
		QueueSize:     getEnvInt("QUEUE_SIZE", 10000),
		BatchSize:     getEnvInt("BATCH_SIZE", 500),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),

		Ratings: loadRatingParams(),
		Predict: loadPredictParams(),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadRatingParams() ratings.Params {
	p := ratings.DefaultParams()

	p.KBase = getEnvFloat("ELO_K_BASE", p.KBase)
	p.ProvisionalBouts = getEnvInt("ELO_PROVISIONAL_BOUTS", p.ProvisionalBouts)
	p.FormWindow = getEnvInt("ELO_FORM_WINDOW", p.FormWindow)
	p.DecayGraceMonths = getEnvFloat("DECAY_GRACE_MONTHS", p.DecayGraceMonths)
	p.DecayRatePerMonth = getEnvFloat("DECAY_RATE_PER_MONTH", p.DecayRatePerMonth)
	p.ChinPenaltyPerKO = getEnvFloat("CHIN_PENALTY_PER_KO", p.ChinPenaltyPerKO)

	return p
}

func loadPredictParams() predict.Params {
	p := predict.DefaultParams()

	p.CloseFightThreshold = getEnvFloat("PREDICT_CLOSE_THRESHOLD", p.CloseFightThreshold)
	p.SignificantAdvantage = getEnvFloat("PREDICT_SIGNIFICANT_ADVANTAGE", p.SignificantAdvantage)
	p.MinBouts = getEnvInt("PREDICT_MIN_BOUTS", p.MinBouts)
	p.ShortNoticeDays = getEnvInt("PREDICT_SHORT_NOTICE_DAYS", p.ShortNoticeDays)

	return p
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
