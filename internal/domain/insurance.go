package domain

import (
	json "github.com/goccy/go-json"
)

type Kind string

const (
	KindCar    Kind = "CAR"
	KindHealth Kind = "HEALTH"
	KindPet    Kind = "PET"
)

// monthlyPrices is the fixed price table. A policy's cost is always read
// from here and never stored on the policy itself.
var monthlyPrices = map[Kind]int{
	KindPet:    10,
	KindHealth: 20,
	KindCar:    30,
}

func ValidKind(s string) bool {
	_, ok := monthlyPrices[Kind(s)]
	return ok
}

// MonthlyCost returns the premium for the kind in whole currency units.
// Unknown kinds cost nothing.
func (k Kind) MonthlyCost() int {
	return monthlyPrices[k]
}

// Policy is a closed set of insurance variants: CarPolicy, HealthPolicy and
// PetPolicy. Use a type switch to branch on the variant.
type Policy interface {
	Kind() Kind
	MonthlyCost() int
	isPolicy()
}

type Vehicle struct {
	RegistrationNumber string `json:"registrationNumber"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
}

// CarPolicy is the only enrichable variant. Vehicle stays nil until a lookup
// against the vehicle service succeeds.
type CarPolicy struct {
	RegistrationNumber string
	Vehicle            *Vehicle
}

func NewCarPolicy(registrationNumber string) CarPolicy {
	return CarPolicy{RegistrationNumber: registrationNumber}
}

// WithVehicle returns a copy carrying v. Passing nil yields an unenriched copy.
func (c CarPolicy) WithVehicle(v *Vehicle) CarPolicy {
	if v != nil {
		cp := *v
		v = &cp
	}
	return CarPolicy{RegistrationNumber: c.RegistrationNumber, Vehicle: v}
}

func (CarPolicy) Kind() Kind         { return KindCar }
func (c CarPolicy) MonthlyCost() int { return c.Kind().MonthlyCost() }
func (CarPolicy) isPolicy()          {}

func (c CarPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type               Kind     `json:"type"`
		MonthlyCost        int      `json:"monthlyCost"`
		RegistrationNumber string   `json:"registrationNumber"`
		Vehicle            *Vehicle `json:"vehicle,omitempty"`
	}{
		Type:               c.Kind(),
		MonthlyCost:        c.MonthlyCost(),
		RegistrationNumber: c.RegistrationNumber,
		Vehicle:            c.Vehicle,
	})
}

type HealthPolicy struct{}

func (HealthPolicy) Kind() Kind         { return KindHealth }
func (h HealthPolicy) MonthlyCost() int { return h.Kind().MonthlyCost() }
func (HealthPolicy) isPolicy()          {}

func (h HealthPolicy) MarshalJSON() ([]byte, error) {
	return marshalPlainPolicy(h)
}

type PetPolicy struct{}

func (PetPolicy) Kind() Kind         { return KindPet }
func (p PetPolicy) MonthlyCost() int { return p.Kind().MonthlyCost() }
func (PetPolicy) isPolicy()          {}

func (p PetPolicy) MarshalJSON() ([]byte, error) {
	return marshalPlainPolicy(p)
}

func marshalPlainPolicy(p Policy) ([]byte, error) {
	return json.Marshal(struct {
		Type        Kind `json:"type"`
		MonthlyCost int  `json:"monthlyCost"`
	}{
		Type:        p.Kind(),
		MonthlyCost: p.MonthlyCost(),
	})
}

// TotalCost sums the monthly cost of every policy.
func TotalCost(policies []Policy) int {
	total := 0
	for _, p := range policies {
		total += p.MonthlyCost()
	}
	return total
}
