package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Enrichment outcomes.
const (
	OutcomeEnriched = "enriched"
	OutcomeDegraded = "degraded"
)

// Metrics holds the Prometheus collectors for the service. All methods are
// safe to call on a nil receiver so tests can skip metrics entirely.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	Enrichment        *prometheus.CounterVec
	VehicleLookup     *prometheus.HistogramVec
	DiscountDecisions *prometheus.CounterVec
}

// New creates a Metrics instance on its own registry, including the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insurance_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status"}),

		Enrichment: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insurance_enrichment_total",
			Help: "Car policy enrichment attempts by outcome",
		}, []string{"outcome"}), // outcome: "enriched", "degraded"

		VehicleLookup: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insurance_vehicle_lookup_duration_seconds",
			Help:    "Duration of vehicle service lookups by outcome",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"outcome"}),

		DiscountDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insurance_discount_decisions_total",
			Help: "Discount eligibility decisions",
		}, []string{"eligible"}),
	}
	reg.MustRegister(m.HTTPRequests, m.Enrichment, m.VehicleLookup, m.DiscountDecisions)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTPRequest(method string, status int) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	}
}

func (m *Metrics) IncrementEnrichment(outcome string) {
	if m != nil {
		m.Enrichment.WithLabelValues(outcome).Inc()
	}
}

// ObserveVehicleLookup records one lookup; outcome is "ok" or a failure kind.
func (m *Metrics) ObserveVehicleLookup(outcome string, d time.Duration) {
	if m != nil {
		m.VehicleLookup.WithLabelValues(outcome).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementDiscountDecision(eligible bool) {
	if m != nil {
		m.DiscountDecisions.WithLabelValues(strconv.FormatBool(eligible)).Inc()
	}
}
