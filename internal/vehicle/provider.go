package vehicle

import (
	"fmt"
	"time"

	"github.com/modig-dev/insurance/internal/domain"
)

// Provider constants
const (
	ProviderHTTP = "http"
	ProviderMock = "mock"
)

// NewClient creates a vehicle client for the provider name. The http
// provider requires a base URL.
func NewClient(provider, baseURL string, timeout time.Duration) (domain.VehicleClient, error) {
	switch provider {
	case ProviderHTTP, "":
		if baseURL == "" {
			return nil, fmt.Errorf("VEHICLE_SERVICE_URL is required for the http provider")
		}
		return NewHTTPClient(baseURL, timeout), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown vehicle provider: %s (valid options: http, mock)", provider)
	}
}
