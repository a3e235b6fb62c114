package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Upstream reference price API
	CurrencyAPIURL     string
	CurrencyAPIToken   string
	CurrencyAPITimeout time.Duration

	// Redis job store; empty addr means the in-process store is used.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Seed pipeline
	SeedPacingDelay time.Duration

	// Job queue
	JobWorkerCount int
	JobRetention   time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CURRENCY_API_URL", "")
	viper.SetDefault("CURRENCY_API_TOKEN", "")
	viper.SetDefault("CURRENCY_API_TIMEOUT", "15s")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SEED_PACING_DELAY", "1s")
	viper.SetDefault("JOB_WORKER_COUNT", 2)
	viper.SetDefault("JOB_RETENTION", "24h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%w: PGSQL_URL environment variable not set", apperrors.ErrConfig)
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.CurrencyAPIURL = viper.GetString("CURRENCY_API_URL")
	if cfg.CurrencyAPIURL == "" {
		return nil, fmt.Errorf("%w: CURRENCY_API_URL environment variable not set", apperrors.ErrConfig)
	}
	cfg.CurrencyAPIToken = viper.GetString("CURRENCY_API_TOKEN")
	if cfg.CurrencyAPIToken == "" {
		// Seeding will fail without it, reads still work.
		log.Println("Warning: CURRENCY_API_TOKEN not set. Seed endpoints will be rejected upstream.")
	}
	cfg.CurrencyAPITimeout = durationOrDefault("CURRENCY_API_TIMEOUT", 15*time.Second)

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Job status will be kept in process memory.")
	}

	cfg.SeedPacingDelay = durationOrDefault("SEED_PACING_DELAY", time.Second)
	cfg.JobWorkerCount = viper.GetInt("JOB_WORKER_COUNT")
	if cfg.JobWorkerCount <= 0 {
		cfg.JobWorkerCount = 2
	}
	cfg.JobRetention = durationOrDefault("JOB_RETENTION", 24*time.Hour)

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
