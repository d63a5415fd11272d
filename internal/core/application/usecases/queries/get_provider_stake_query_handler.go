package queries

import (
	"context"

	"marketplace/internal/core/ports"
)

type GetProviderStakeQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetProviderStakeQueryHandler(uowFactory ports.UnitOfWorkFactory) GetProviderStakeQueryHandler {
	return GetProviderStakeQueryHandler{uowFactory: uowFactory}
}

func (h GetProviderStakeQueryHandler) Handle(
	ctx context.Context,
	query GetProviderStakeQuery,
) (GetProviderStakeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProviderStakeQueryResponse{}, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) (GetProviderStakeQueryResponse, error) {
		p, err := uow.ProviderStakeRepository().Get(ctx, query.Kind(), query.Account())
		if err != nil {
			return GetProviderStakeQueryResponse{}, err
		}

		return GetProviderStakeQueryResponse{
			Kind:              p.Kind().String(),
			Account:           p.Account(),
			StakeAmount:       p.StakeAmount(),
			UnstakeAmount:     p.UnstakeAmount(),
			Status:            p.Status().String(),
			UnstakeAt:         p.UnstakeAt(),
			RetrieveUnstakeAt: p.RetrieveUnstakeAt(),
			Verification:      p.Verification().String(),
			Availability:      p.Availability().String(),
		}, nil
	})
}
