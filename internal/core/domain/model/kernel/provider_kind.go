package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ProviderKind distinguishes the provider registries that share the stake lifecycle.
type ProviderKind int

const (
	UnknownProvider ProviderKind = iota
	Lab
	GeneticAnalyst
	HealthProfessional
)

var providerKindNames = map[ProviderKind]string{
	Lab:                "lab",
	GeneticAnalyst:     "genetic-analyst",
	HealthProfessional: "health-professional",
}

// ProviderKinds lists every valid kind.
func ProviderKinds() []ProviderKind {
	return []ProviderKind{Lab, GeneticAnalyst, HealthProfessional}
}

// ProviderKindFromString parses the path form used by the HTTP API ("lab", ...).
func ProviderKindFromString(s string) (ProviderKind, error) {
	for kind, name := range providerKindNames {
		if name == s {
			return kind, nil
		}
	}
	return UnknownProvider, errs.NewValueIsInvalidErrorWithCause("provider kind", fmt.Errorf("%q is not a provider kind", s))
}

func (k ProviderKind) Validate() error {
	if _, ok := providerKindNames[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("provider kind", fmt.Errorf("%d is not a valid provider kind", k))
	}
	return nil
}

func (k ProviderKind) String() string {
	if name, ok := providerKindNames[k]; ok {
		return name
	}
	return "unknown"
}
