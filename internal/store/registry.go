package store

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/modig-dev/insurance/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedPolicy struct {
	Type               string `yaml:"type"`
	RegistrationNumber string `yaml:"registrationNumber"`
}

type seedFile struct {
	People map[string][]seedPolicy `yaml:"people"`
}

// PolicyRegistry is a read-only, in-memory lookup table from personal
// number to policies. It is built once and never mutated, so concurrent
// reads need no locking.
type PolicyRegistry struct {
	policies map[string][]domain.Policy
}

// NewPolicyRegistry builds a registry from already-constructed policies.
func NewPolicyRegistry(entries map[string][]domain.Policy) *PolicyRegistry {
	policies := make(map[string][]domain.Policy, len(entries))
	for key, list := range entries {
		cp := make([]domain.Policy, len(list))
		copy(cp, list)
		policies[normalizeKey(key)] = cp
	}
	return &PolicyRegistry{policies: policies}
}

// DefaultPolicyRegistry returns the registry seeded from the embedded fixtures.
func DefaultPolicyRegistry() (*PolicyRegistry, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

// OpenPolicyRegistry loads a YAML seed from path. An empty path selects the
// embedded fixtures.
func OpenPolicyRegistry(path string) (*PolicyRegistry, error) {
	if path == "" {
		return DefaultPolicyRegistry()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry seed: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadSeed(f)
}

// LoadSeed parses a YAML seed document.
func LoadSeed(r io.Reader) (*PolicyRegistry, error) {
	var seed seedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode registry seed: %w", err)
	}

	entries := make(map[string][]domain.Policy, len(seed.People))
	for personalNumber, list := range seed.People {
		policies := make([]domain.Policy, 0, len(list))
		for i, sp := range list {
			p, err := sp.toPolicy()
			if err != nil {
				return nil, fmt.Errorf("seed %s[%d]: %w", personalNumber, i, err)
			}
			policies = append(policies, p)
		}
		entries[personalNumber] = policies
	}
	return NewPolicyRegistry(entries), nil
}

func (sp seedPolicy) toPolicy() (domain.Policy, error) {
	switch domain.Kind(strings.ToUpper(sp.Type)) {
	case domain.KindCar:
		if sp.RegistrationNumber == "" {
			return nil, errors.New("car policy requires registrationNumber")
		}
		return domain.NewCarPolicy(sp.RegistrationNumber), nil
	case domain.KindHealth:
		return domain.HealthPolicy{}, nil
	case domain.KindPet:
		return domain.PetPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown policy type %q", sp.Type)
	}
}

// FindByPersonalNumber matches keys case-insensitively. Unknown keys return
// ErrNotFound; a key seeded with no policies returns an empty slice.
func (r *PolicyRegistry) FindByPersonalNumber(_ context.Context, personalNumber string) ([]domain.Policy, error) {
	list, ok := r.policies[normalizeKey(personalNumber)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]domain.Policy, len(list))
	copy(out, list)
	return out, nil
}

// Len reports how many personal numbers are registered.
func (r *PolicyRegistry) Len() int {
	return len(r.policies)
}

func normalizeKey(key string) string {
	return strings.ToUpper(key)
}
