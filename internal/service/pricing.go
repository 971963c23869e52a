package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modig-dev/insurance/internal/domain"
	"github.com/modig-dev/insurance/internal/metrics"
	"github.com/modig-dev/insurance/internal/store"
	"github.com/modig-dev/insurance/internal/vehicle"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrInsuranceNotFound = errors.New("insurance not found")

const (
	DefaultLookupTimeout     = 2 * time.Second
	DefaultEnrichConcurrency = 1
)

// PricingService prices a person's policies: it enriches car policies with
// vehicle data, sums the monthly costs and applies the discount rule.
type PricingService struct {
	registry domain.PolicyRegistry
	vehicles domain.VehicleClient
	flags    domain.FeatureFlags
	metrics  *metrics.Metrics
	logger   *zap.Logger
	tracer   trace.Tracer

	lookupTimeout time.Duration
	concurrency   int
}

type PricingOption func(*PricingService)

func WithMetrics(m *metrics.Metrics) PricingOption {
	return func(s *PricingService) { s.metrics = m }
}

// WithLookupTimeout bounds each vehicle lookup. Non-positive values are ignored.
func WithLookupTimeout(d time.Duration) PricingOption {
	return func(s *PricingService) {
		if d > 0 {
			s.lookupTimeout = d
		}
	}
}

// WithEnrichConcurrency sets how many vehicle lookups may run at once for a
// single request. 1 keeps them sequential.
func WithEnrichConcurrency(n int) PricingOption {
	return func(s *PricingService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewPricingService(registry domain.PolicyRegistry, vehicles domain.VehicleClient, flags domain.FeatureFlags, logger *zap.Logger, opts ...PricingOption) *PricingService {
	s := &PricingService{
		registry:      registry,
		vehicles:      vehicles,
		flags:         flags,
		logger:        logger,
		tracer:        otel.Tracer("github.com/modig-dev/insurance/internal/service"),
		lookupTimeout: DefaultLookupTimeout,
		concurrency:   DefaultEnrichConcurrency,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PriceFor builds the priced response for an already validated personal
// number. It fails only with ErrInsuranceNotFound or a registry error;
// vehicle lookup failures degrade to an unenriched car policy.
func (s *PricingService) PriceFor(ctx context.Context, personalNumber string) (*domain.PricedResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PricingService.PriceFor")
	defer span.End()

	raw, err := s.registry.FindByPersonalNumber(ctx, personalNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInsuranceNotFound
		}
		return nil, fmt.Errorf("find policies: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrInsuranceNotFound
	}

	enriched := s.enrich(ctx, raw)
	total := domain.TotalCost(enriched)

	resp := &domain.PricedResponse{
		PersonalNumber: personalNumber,
		Insurances:     enriched,
		TotalCost:      total,
	}
	if s.discountEligible(ctx, personalNumber) {
		discounted := DiscountedTotal(total)
		resp.DiscountedTotalCost = &discounted
	}

	span.SetAttributes(
		attribute.Int("insurance.policies", len(enriched)),
		attribute.Int("insurance.total_cost", total),
		attribute.Bool("insurance.discounted", resp.Discounted()),
	)
	return resp, nil
}

// enrich maps policies position by position. Lookups never cancel each
// other, so the group's error is always nil.
func (s *PricingService) enrich(ctx context.Context, policies []domain.Policy) []domain.Policy {
	out := make([]domain.Policy, len(policies))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, p := range policies {
		car, ok := p.(domain.CarPolicy)
		if !ok {
			out[i] = p
			continue
		}
		g.Go(func() error {
			out[i] = s.enrichCar(ctx, car)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *PricingService) enrichCar(ctx context.Context, car domain.CarPolicy) domain.CarPolicy {
	start := time.Now()
	v, err := s.lookupVehicle(ctx, car.RegistrationNumber)
	if err != nil {
		kind := vehicle.KindOf(err)
		s.metrics.ObserveVehicleLookup(string(kind), time.Since(start))
		s.metrics.IncrementEnrichment(metrics.OutcomeDegraded)
		s.logger.Warn("failed to fetch vehicle",
			zap.String("registration_number", car.RegistrationNumber),
			zap.String("failure", string(kind)),
			zap.Error(err),
		)
		return car.WithVehicle(nil)
	}

	s.metrics.ObserveVehicleLookup("ok", time.Since(start))
	s.metrics.IncrementEnrichment(metrics.OutcomeEnriched)
	return car.WithVehicle(v)
}

type lookupResult struct {
	vehicle *domain.Vehicle
	err     error
}

// lookupVehicle bounds one lookup by the lookup timeout and the caller's
// context. A client that ignores ctx is abandoned, not waited on; the
// buffered channel lets its goroutine finish on its own.
func (s *PricingService) lookupVehicle(ctx context.Context, reg string) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	ch := make(chan lookupResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- lookupResult{err: fmt.Errorf("vehicle lookup panicked: %v", r)}
			}
		}()
		v, err := s.vehicles.Lookup(ctx, reg)
		if err == nil && v == nil {
			err = errors.New("vehicle client returned no vehicle")
		}
		ch <- lookupResult{vehicle: v, err: err}
	}()

	select {
	case res := <-ch:
		return res.vehicle, res.err
	case <-ctx.Done():
		return nil, &vehicle.LookupError{
			Kind:               vehicle.FailureOther,
			RegistrationNumber: reg,
			Err:                ctx.Err(),
		}
	}
}

// discountEligible reads the campaign flag fresh for this request. A flag
// store error counts as the flag being off.
func (s *PricingService) discountEligible(ctx context.Context, personalNumber string) bool {
	enabled := false
	if s.flags != nil {
		var err error
		enabled, err = s.flags.IsEnabled(ctx, DiscountCampaignFlag)
		if err != nil {
			s.logger.Warn("failed to read feature flag",
				zap.String("flag", DiscountCampaignFlag),
				zap.Error(err),
			)
			enabled = false
		}
	}

	eligible := IsEligible(personalNumber, enabled)
	s.metrics.IncrementDiscountDecision(eligible)
	return eligible
}
