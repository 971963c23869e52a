package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modig-dev/insurance/internal/api"
	"github.com/modig-dev/insurance/internal/buildconfig"
	"github.com/modig-dev/insurance/internal/config"
	"github.com/modig-dev/insurance/internal/domain"
	"github.com/modig-dev/insurance/internal/metrics"
	"github.com/modig-dev/insurance/internal/service"
	"github.com/modig-dev/insurance/internal/store"
	"github.com/modig-dev/insurance/internal/vehicle"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry, err := store.OpenPolicyRegistry(config.RegistrySeedPath())
	if err != nil {
		logger.Fatal("failed to load policy registry", zap.Error(err))
	}
	logger.Info("policy registry loaded", zap.Int("people", registry.Len()))

	vehicles, err := vehicle.NewClient(config.VehicleProvider(), config.VehicleServiceURL(), config.VehicleTimeout())
	if err != nil {
		logger.Fatal("failed to create vehicle client", zap.Error(err))
	}
	logger.Info("vehicle client initialized",
		zap.String("provider", config.VehicleProvider()),
		zap.String("url", config.VehicleServiceURL()),
	)

	flags, closeFlags := newFlagStore(ctx, logger)
	defer closeFlags()

	app := api.NewApp(api.Deps{
		Registry:          registry,
		Vehicles:          vehicles,
		Flags:             flags,
		Metrics:           metrics.New(),
		LookupTimeout:     config.VehicleTimeout(),
		EnrichConcurrency: config.EnrichConcurrency(),
		RateLimitRPS:      config.RateLimitRPS(),
		RateLimitBurst:    config.RateLimitBurst(),
	}, logger)
	app.Start(ctx)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("version", buildconfig.Version()),
			zap.String("commit", buildconfig.Commit()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}

// newFlagStore selects the flag backend. The memory store is seeded from
// DISCOUNT_CAMPAIGN_ENABLED; Redis falls back to it for missing keys.
func newFlagStore(ctx context.Context, logger *zap.Logger) (domain.FeatureFlags, func()) {
	defaults := map[string]bool{
		service.DiscountCampaignFlag: config.DiscountCampaignEnabled(),
	}

	switch config.FlagStore() {
	case "redis":
		client, err := store.ConnectRedis(ctx, config.RedisURL())
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		logger.Info("feature flags backed by redis")
		return store.NewRedisFlagStore(client, defaults), func() { _ = client.Close() }
	case "memory", "":
		logger.Info("feature flags backed by memory",
			zap.Bool("discount_campaign", defaults[service.DiscountCampaignFlag]),
		)
		return store.NewMemoryFlagStore(defaults), func() {}
	default:
		logger.Fatal("unknown flag store", zap.String("flag_store", config.FlagStore()))
		return nil, nil
	}
}
