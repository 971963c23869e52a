package api

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modig-dev/insurance/internal/api/handlers"
	mw "github.com/modig-dev/insurance/internal/api/middleware"
	"github.com/modig-dev/insurance/internal/domain"
	"github.com/modig-dev/insurance/internal/metrics"
	"github.com/modig-dev/insurance/internal/service"
	"github.com/modig-dev/insurance/internal/store"
	"github.com/modig-dev/insurance/internal/vehicle"
	"go.uber.org/zap"
)

const rateLimiterSweep = 5 * time.Minute

// Deps are the collaborators the pricing API is built from.
type Deps struct {
	Registry domain.PolicyRegistry
	Vehicles domain.VehicleClient
	Flags    domain.FeatureFlags
	Metrics  *metrics.Metrics

	LookupTimeout     time.Duration
	EnrichConcurrency int
	RateLimitRPS      float64
	RateLimitBurst    int
}

// App holds the router and the pieces that need lifecycle management.
type App struct {
	Router  *chi.Mux
	Pricing *service.PricingService
	Limiter *mw.RateLimiter
}

func NewApp(deps Deps, logger *zap.Logger) *App {
	pricing := service.NewPricingService(deps.Registry, deps.Vehicles, deps.Flags, logger,
		service.WithMetrics(deps.Metrics),
		service.WithLookupTimeout(deps.LookupTimeout),
		service.WithEnrichConcurrency(deps.EnrichConcurrency),
	)
	limiter := mw.NewRateLimiter(deps.RateLimitRPS, deps.RateLimitBurst)

	insuranceHandler := handlers.NewInsuranceHandler(pricing, logger)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Metrics(deps.Metrics))
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(limiter))

	r.Get("/health", handlers.Health)
	r.Method("GET", "/metrics", deps.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/insurance/{personalNumber}", insuranceHandler.Get)
	})

	return &App{
		Router:  r,
		Pricing: pricing,
		Limiter: limiter,
	}
}

// Start runs background housekeeping until ctx is done.
func (app *App) Start(ctx context.Context) {
	go app.Limiter.Run(ctx, rateLimiterSweep)
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.PolicyRegistry = (*store.PolicyRegistry)(nil)
	_ domain.FeatureFlags   = (*store.MemoryFlagStore)(nil)
	_ domain.FeatureFlags   = (*store.RedisFlagStore)(nil)
	_ domain.VehicleClient  = (*vehicle.HTTPClient)(nil)
	_ domain.VehicleClient  = (*vehicle.MockClient)(nil)
	_ handlers.Pricer       = (*service.PricingService)(nil)
)
