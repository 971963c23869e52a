package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	mw "github.com/modig-dev/insurance/internal/api/middleware"
	"github.com/modig-dev/insurance/internal/metrics"
	"github.com/modig-dev/insurance/internal/service"
	"github.com/modig-dev/insurance/internal/store"
	"github.com/modig-dev/insurance/internal/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func defaultRegistry(t *testing.T) *store.PolicyRegistry {
	t.Helper()
	reg, err := store.DefaultPolicyRegistry()
	require.NoError(t, err)
	return reg
}

func newTestApp(t *testing.T, upstream *httptest.Server) *App {
	t.Helper()
	return NewApp(Deps{
		Registry:       defaultRegistry(t),
		Vehicles:       vehicle.NewHTTPClient(upstream.URL, 0),
		Flags:          store.NewMemoryFlagStore(map[string]bool{service.DiscountCampaignFlag: true}),
		Metrics:        metrics.New(),
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}, zap.NewNop())
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(vehicle.StubHandler(vehicle.NewMockClient().Vehicles))
	t.Cleanup(srv.Close)
	return srv
}

func get(app *App, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_PricingEndToEnd(t *testing.T) {
	app := newTestApp(t, newUpstream(t))

	rec := get(app, "/api/v1/insurance/19900101-1234")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(mw.RequestIDHeader))

	var body struct {
		PersonalNumber      string `json:"personalNumber"`
		TotalCost           int    `json:"totalCost"`
		DiscountedTotalCost *int   `json:"discountedTotalCost"`
		Insurances          []struct {
			Type               string `json:"type"`
			RegistrationNumber string `json:"registrationNumber"`
			Vehicle            *struct {
				Make string `json:"make"`
			} `json:"vehicle"`
		} `json:"insurances"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "199001011234", body.PersonalNumber)
	assert.Equal(t, 80, body.TotalCost)
	require.NotNil(t, body.DiscountedTotalCost)
	assert.Equal(t, 72, *body.DiscountedTotalCost)
	require.Len(t, body.Insurances, 3)
	require.NotNil(t, body.Insurances[1].Vehicle)
	assert.Equal(t, "Volvo", body.Insurances[1].Vehicle.Make)
	require.NotNil(t, body.Insurances[2].Vehicle)
	assert.Equal(t, "Tesla", body.Insurances[2].Vehicle.Make)
}

func TestRouter_UpstreamDownDegrades(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)
	app := newTestApp(t, upstream)

	rec := get(app, "/api/v1/insurance/199001011234")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"vehicle"`)
	assert.Contains(t, rec.Body.String(), `"totalCost":80`)
}

func TestRouter_ErrorStatuses(t *testing.T) {
	app := newTestApp(t, newUpstream(t))

	assert.Equal(t, http.StatusNotFound, get(app, "/api/v1/insurance/198512309999").Code)
	assert.Equal(t, http.StatusBadRequest, get(app, "/api/v1/insurance/invalid-input").Code)
	assert.Equal(t, http.StatusNotFound, get(app, "/api/v1/unknown").Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	app := newTestApp(t, newUpstream(t))

	rec := get(app, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	get(app, "/api/v1/insurance/199001011234")

	rec = get(app, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "insurance_http_requests_total"))
	assert.Contains(t, body, `insurance_enrichment_total{outcome="enriched"} 2`)
	assert.Contains(t, body, `insurance_discount_decisions_total{eligible="true"} 1`)
}

func TestRouter_RateLimited(t *testing.T) {
	app := NewApp(Deps{
		Registry:       defaultRegistry(t),
		Vehicles:       vehicle.NewMockClient(),
		Flags:          store.NewMemoryFlagStore(nil),
		RateLimitRPS:   1,
		RateLimitBurst: 1,
	}, zap.NewNop())

	assert.Equal(t, http.StatusOK, get(app, "/health").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(app, "/health").Code)
}
