package vehicle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/modig-dev/insurance/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultTimeout = 2 * time.Second

	// maxBodyBytes caps how much of an upstream response is read.
	maxBodyBytes = 1 << 20
)

// HTTPClient calls the external vehicle service with
// GET {baseURL}/{registrationNumber}. It never retries.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer("github.com/modig-dev/insurance/internal/vehicle"),
	}
}

type vehicleResponse struct {
	RegistrationNumber string `json:"registrationNumber"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
}

func (c *HTTPClient) Lookup(ctx context.Context, registrationNumber string) (*domain.Vehicle, error) {
	ctx, span := c.tracer.Start(ctx, "vehicle.lookup",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("vehicle.registration_number", registrationNumber)),
	)
	defer span.End()

	v, err := c.lookup(ctx, registrationNumber)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(KindOf(err)))
		return nil, err
	}
	return v, nil
}

func (c *HTTPClient) lookup(ctx context.Context, reg string) (*domain.Vehicle, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(reg)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newLookupError(FailureOther, reg, 0, fmt.Errorf("create vehicle request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newLookupError(FailureOther, reg, 0, fmt.Errorf("vehicle request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, newLookupError(FailureOther, reg, resp.StatusCode, fmt.Errorf("read vehicle response: %w", err))
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, newLookupError(FailureNotFound, reg, resp.StatusCode, ErrNotFound)
	case resp.StatusCode >= 500:
		return nil, newLookupError(FailureServiceUnavailable, reg, resp.StatusCode,
			fmt.Errorf("vehicle service returned status %d", resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, newLookupError(FailureOther, reg, resp.StatusCode,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var result vehicleResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, newLookupError(FailureOther, reg, resp.StatusCode, fmt.Errorf("unmarshal vehicle response: %w", err))
	}
	if result.RegistrationNumber == "" {
		return nil, newLookupError(FailureOther, reg, resp.StatusCode, errors.New("vehicle response missing registrationNumber"))
	}

	return &domain.Vehicle{
		RegistrationNumber: result.RegistrationNumber,
		Make:               result.Make,
		Model:              result.Model,
		Year:               result.Year,
	}, nil
}
