package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

type ListOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{uowFactory: uowFactory}
}

// Handle returns an empty slice for accounts without orders.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]kernel.UUID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) ([]kernel.UUID, error) {
		if query.Party() == Seller {
			return uow.OrderRepository().ListIDsBySeller(ctx, query.Account())
		}
		return uow.OrderRepository().ListIDsByCustomer(ctx, query.Account())
	})
}
