package queries

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/servicerequest"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/guard"
)

var ErrGetOpenRequestCountQueryIsNotConstructed = errors.New(
	"GetOpenRequestCountQuery must be created via NewGetOpenRequestCountQuery constructor",
)

// GetOpenRequestCountQuery reads the demand index for one location and category.
type GetOpenRequestCountQuery struct {
	key   servicerequest.CountKey
	guard guard.ConstructorGuard
}

func NewGetOpenRequestCountQuery(country, region, city, category string) (GetOpenRequestCountQuery, error) {
	location, locationErr := kernel.NewLocation(country, region, city)
	var categoryErr error
	if strings.TrimSpace(category) == "" {
		categoryErr = servicerequest.ErrCategoryIsRequired
	}
	if err := errors.Join(locationErr, categoryErr); err != nil {
		return GetOpenRequestCountQuery{}, err
	}

	return GetOpenRequestCountQuery{
		key: servicerequest.CountKey{
			Country:  location.Country(),
			Region:   location.Region(),
			City:     location.City(),
			Category: strings.TrimSpace(category),
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetOpenRequestCountQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenRequestCountQueryIsNotConstructed)
}

func (q GetOpenRequestCountQuery) Key() servicerequest.CountKey { return q.key }

type GetOpenRequestCountQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOpenRequestCountQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOpenRequestCountQueryHandler {
	return GetOpenRequestCountQueryHandler{uowFactory: uowFactory}
}

// Handle returns zero for keys that never had a request.
func (h GetOpenRequestCountQueryHandler) Handle(ctx context.Context, query GetOpenRequestCountQuery) (uint64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) (uint64, error) {
		return uow.ServiceRequestRepository().OpenCount(ctx, query.Key())
	})
}
