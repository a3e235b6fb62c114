package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mmexchange/price_tracker_app/internal/adapters/database/pgsql"
	"github.com/mmexchange/price_tracker_app/internal/adapters/refapi"
	portssvc "github.com/mmexchange/price_tracker_app/internal/core/ports/services"
	"github.com/mmexchange/price_tracker_app/internal/core/services"
	"github.com/mmexchange/price_tracker_app/internal/handlers"
	"github.com/mmexchange/price_tracker_app/internal/middleware"
	"github.com/mmexchange/price_tracker_app/internal/platform/config"
	"github.com/mmexchange/price_tracker_app/internal/platform/queue"
	"github.com/mmexchange/price_tracker_app/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories, upstream client and services
	repos := pgsql.NewRepositoryProvider(dbPool)
	upstream := refapi.NewClient(cfg.CurrencyAPIURL, cfg.CurrencyAPIToken, cfg.CurrencyAPITimeout)
	serviceContainer := services.NewServiceContainer(repos, upstream, cfg.SeedPacingDelay)

	// Job status store: Redis when configured, process memory otherwise
	jobStore := newJobStore(cfg, logger)
	jobs := queue.New(jobStore, logger, cfg.JobWorkerCount, 64)
	registerJobHandlers(jobs, serviceContainer)
	jobs.Start()
	defer jobs.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, jobs)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// registerJobHandlers binds each seed operation to its queue job type.
func registerJobHandlers(jobs *queue.Queue, sc *portssvc.ServiceContainer) {
	jobs.Register(handlers.JobSeedLatest, func(ctx context.Context, job queue.Job, progress func(int)) (string, error) {
		return sc.Seed.SeedLatest(ctx)
	})
	jobs.Register(handlers.JobSeedGoldLatest, func(ctx context.Context, job queue.Job, progress func(int)) (string, error) {
		return sc.Seed.SeedGoldLatest(ctx)
	})
	jobs.Register(handlers.JobSeedTransactions, func(ctx context.Context, job queue.Job, progress func(int)) (string, error) {
		return sc.Seed.SeedTransactions(ctx)
	})
	jobs.Register(handlers.JobSeedAllHistorical, func(ctx context.Context, job queue.Job, progress func(int)) (string, error) {
		return sc.Seed.SeedAllHistorical(ctx, job.Payload["startDate"], job.Payload["endDate"], progress)
	})
}

// newJobStore picks the job status backend. Redis keeps status across
// restarts; without it, status lives in process memory.
func newJobStore(cfg *config.Config, logger *slog.Logger) queue.Store {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, using in-memory job store")
		return queue.NewMemoryStore(cfg.JobRetention)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unreachable, falling back to in-memory job store", slog.String("error", err.Error()))
		return queue.NewMemoryStore(cfg.JobRetention)
	}

	logger.Info("Redis job store connected", slog.String("addr", cfg.RedisAddr))
	return queue.NewRedisStore(client, cfg.JobRetention)
}

// runMigrations applies all pending "up" migrations from the migrations
// directory before the server accepts traffic.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
