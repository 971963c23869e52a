package vehicle

import (
	"context"
	"sync"
	"time"

	"github.com/modig-dev/insurance/internal/domain"
)

// MockClient is a configurable vehicle client for tests and local runs.
// Registrations in Errors fail with that error, registrations in Vehicles
// succeed, everything else fails as not found.
type MockClient struct {
	Vehicles map[string]domain.Vehicle
	Errors   map[string]error
	// Latency delays each lookup; the wait is abandoned if ctx is done.
	Latency time.Duration

	mu    sync.Mutex
	calls []string
}

func NewMockClient() *MockClient {
	return &MockClient{
		Vehicles: map[string]domain.Vehicle{
			"ABC123": {RegistrationNumber: "ABC123", Make: "Volvo", Model: "XC90", Year: 2020},
			"XYZ789": {RegistrationNumber: "XYZ789", Make: "Tesla", Model: "Model 3", Year: 2023},
			"AUD00I": {RegistrationNumber: "AUD00I", Make: "Audi", Model: "A4", Year: 2018},
		},
		Errors: map[string]error{},
	}
}

func (c *MockClient) Lookup(ctx context.Context, registrationNumber string) (*domain.Vehicle, error) {
	c.mu.Lock()
	c.calls = append(c.calls, registrationNumber)
	c.mu.Unlock()

	if c.Latency > 0 {
		timer := time.NewTimer(c.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, newLookupError(FailureOther, registrationNumber, 0, ctx.Err())
		}
	}

	if err, ok := c.Errors[registrationNumber]; ok {
		return nil, err
	}
	v, ok := c.Vehicles[registrationNumber]
	if !ok {
		return nil, newLookupError(FailureNotFound, registrationNumber, 404, ErrNotFound)
	}
	return &v, nil
}

// Calls returns the registrations looked up so far, in call order.
func (c *MockClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.calls))
	copy(out, c.calls)
	return out
}

// Reset clears recorded calls.
func (c *MockClient) Reset() {
	c.mu.Lock()
	c.calls = nil
	c.mu.Unlock()
}
