package domain

import "context"

// PolicyRegistry looks up the policies a person holds. Implementations
// return store.ErrNotFound for unknown keys and keep registry order.
type PolicyRegistry interface {
	FindByPersonalNumber(ctx context.Context, personalNumber string) ([]Policy, error)
}

// VehicleClient fetches vehicle details from the external vehicle service.
type VehicleClient interface {
	Lookup(ctx context.Context, registrationNumber string) (*Vehicle, error)
}

// FeatureFlags answers a single boolean question per flag name. Callers read
// it on every evaluation; implementations must not cache across requests.
type FeatureFlags interface {
	IsEnabled(ctx context.Context, name string) (bool, error)
}
