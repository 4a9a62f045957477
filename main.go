package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/sendurway/signalwise/internal/aggregate"
	"github.com/sendurway/signalwise/internal/api"
	"github.com/sendurway/signalwise/internal/cache"
	"github.com/sendurway/signalwise/internal/carrier"
	"github.com/sendurway/signalwise/internal/clicklog"
	"github.com/sendurway/signalwise/internal/config"
	"github.com/sendurway/signalwise/internal/handler"
	infraconfig "github.com/sendurway/signalwise/internal/infrastructure/config"
	"github.com/sendurway/signalwise/internal/infrastructure/logger"
	"github.com/sendurway/signalwise/internal/infrastructure/profiling"
	"github.com/sendurway/signalwise/internal/metrics"
	"github.com/sendurway/signalwise/internal/storage"

	_ "github.com/lib/pq"
)

// Database connection timeout.
const dbPingTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	// Optional profiling
	profiling.StartPprofServer(cfg.Profiling, log)
	profiler, err := profiling.StartPyroscope(cfg.Profiling, cfg.Service.Name, cfg.Service.Version, log)
	if err != nil {
		log.Warn("Continuous profiling disabled", logger.Error(err))
	}
	defer func() { _ = profiler.Stop() }()

	// Click store. Redirects must keep working without it.
	store, closeStore := openStore(cfg, log)
	defer closeStore()

	// Optional dashboard cache
	redisClient := connectRedis(cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	return runServer(cfg, log, store, redisClient)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := infraconfig.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// openStore returns the PostgreSQL click store, or an unconfigured store
// when credentials are missing. A failed ping is logged but the pool is kept
// so the store recovers once the database is reachable.
func openStore(cfg *config.Config, log logger.Logger) (storage.ClickStore, func()) {
	if !cfg.Database.HasCredentials() {
		log.Warn("Database credentials missing, clicks will not be stored",
			logger.Bool("has_host", cfg.Database.HasHost()),
			logger.Bool("has_password", cfg.Database.HasPassword()),
		)
		return storage.NewUnconfiguredStore(), func() {}
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Error("Failed to open database, clicks will not be stored", logger.Error(err))
		return storage.NewUnconfiguredStore(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		log.Warn("Database not reachable at startup", logger.Error(pingErr))
	} else {
		log.Info("Database connected",
			logger.String("host", cfg.Database.Host),
			logger.Int("port", cfg.Database.Port),
			logger.String("database", cfg.Database.Database),
		)
	}

	return storage.NewPostgresStore(db), func() { _ = db.Close() }
}

// connectRedis returns nil when Redis is disabled or unreachable.
func connectRedis(cfg *config.Config, log logger.Logger) *redis.Client {
	if !cfg.Redis.Enabled() {
		return nil
	}

	client, err := cache.NewClient(cache.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, dashboard cache disabled", logger.Error(err))
		return nil
	}

	log.Info("Redis connected", logger.String("address", cfg.Redis.Address))
	return client
}

// runServer creates all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger, store storage.ClickStore, redisClient *redis.Client) int {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	directory := carrier.NewDirectory(cfg.Carriers.Overrides(), cfg.Carriers.Fallback)
	clicks := clicklog.New(store, log, m, cfg.Click.LogTimeout)

	deps := api.Dependencies{Store: store}
	var summaryCache aggregate.Cache
	if redisClient != nil {
		summaryCache = cache.NewJSONCache(redisClient, cfg.Dashboard.CacheTTL)
		deps.RedisPing = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	summaries := aggregate.NewService(store, summaryCache, log, m, cfg.Dashboard.TableRows)

	env := handler.EnvStatus{
		HasDatabaseHost:     cfg.Database.HasHost(),
		HasDatabasePassword: cfg.Database.HasPassword(),
		HasRedis:            redisClient != nil,
	}

	handlers := api.Handlers{
		Click:     handler.NewClickHandler(directory, clicks, m, env, cfg.Click.SkipBots),
		Results:   handler.NewResultsHandler(m),
		Dashboard: handler.NewDashboardHandler(summaries, cfg.Dashboard.Window),
		Env:       handler.NewEnvHandler(env),
		Metrics:   m.Handler(),
	}

	// done channel signals background goroutines (rate limiter) on shutdown
	done := make(chan struct{})
	defer close(done)

	server := api.NewServer(handlers, deps, cfg, log, done)

	log.Info("SignalWise starting",
		logger.Int("port", cfg.Service.Port),
		logger.Bool("click_store", cfg.Database.HasCredentials()),
		logger.Bool("dashboard_cache", redisClient != nil),
	)

	if err := server.Run(context.Background()); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("SignalWise exited cleanly")
	return 0
}
