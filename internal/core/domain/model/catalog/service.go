// Package catalog holds the read model of services offered by providers.
// Catalog CRUD belongs to an external collaborator; the marketplace only
// resolves a service, its owner and its price lists.
package catalog

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrServiceIsNotConstructed = errors.New("Service must be created via NewService constructor")
	// ErrPriceIndexNotFound is returned when an order selects a missing price list entry.
	ErrPriceIndexNotFound = errs.NewValueIsInvalidError("price index not found")
	// ErrServiceDoesNotExist is returned by catalogs for unknown service ids.
	ErrServiceDoesNotExist = errs.NewObjectNotFoundError("service", "service does not exist")
)

// PriceByCurrency is one entry of a service price list.
type PriceByCurrency struct {
	Currency         kernel.Currency `json:"currency"`
	PriceComponents  []kernel.Price  `json:"price_components"`
	AdditionalPrices []kernel.Price  `json:"additional_prices"`
}

// TotalPrice is the sum of every component and additional price.
func (p PriceByCurrency) TotalPrice() kernel.Balance {
	return kernel.SumPrices(p.PriceComponents).Add(kernel.SumPrices(p.AdditionalPrices))
}

// Service is a priced offering owned by one provider.
type Service struct {
	id     kernel.UUID
	owner  kernel.AccountID
	kind   kernel.ProviderKind
	prices []PriceByCurrency
	guard  guard.ConstructorGuard
}

func NewService(id kernel.UUID, owner kernel.AccountID, kind kernel.ProviderKind, prices []PriceByCurrency) (*Service, error) {
	if err := errors.Join(id.Validate(), owner.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	for i, p := range prices {
		if err := p.Currency.Validate(); err != nil {
			return nil, fmt.Errorf("price list entry %d: %w", i, err)
		}
	}

	return &Service{
		id:     id,
		owner:  owner,
		kind:   kind,
		prices: clonePrices(prices),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (s *Service) Validate() error {
	if s == nil {
		return ErrServiceIsNotConstructed
	}
	return s.guard.Validate(ErrServiceIsNotConstructed)
}

func (s *Service) ID() kernel.UUID                   { return s.id }
func (s *Service) Owner() kernel.AccountID           { return s.owner }
func (s *Service) Kind() kernel.ProviderKind         { return s.kind }
func (s *Service) Prices() []PriceByCurrency         { return clonePrices(s.prices) }
func (s *Service) IsOwnedBy(a kernel.AccountID) bool { return s.owner.IsEqual(a) }

// PriceAt returns the price list entry at index.
func (s *Service) PriceAt(index int) (PriceByCurrency, error) {
	if index < 0 || index >= len(s.prices) {
		return PriceByCurrency{}, fmt.Errorf("%w: %d of %d entries", ErrPriceIndexNotFound, index, len(s.prices))
	}
	return clonePrices(s.prices[index : index+1])[0], nil
}

func clonePrices(in []PriceByCurrency) []PriceByCurrency {
	out := make([]PriceByCurrency, len(in))
	for i, p := range in {
		out[i] = PriceByCurrency{
			Currency:         p.Currency,
			PriceComponents:  append([]kernel.Price(nil), p.PriceComponents...),
			AdditionalPrices: append([]kernel.Price(nil), p.AdditionalPrices...),
		}
	}
	return out
}
