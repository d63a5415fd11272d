package queries

import (
	"context"

	"marketplace/internal/core/ports"
)

type GetServiceRequestQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetServiceRequestQueryHandler(uowFactory ports.UnitOfWorkFactory) GetServiceRequestQueryHandler {
	return GetServiceRequestQueryHandler{uowFactory: uowFactory}
}

func (h GetServiceRequestQueryHandler) Handle(
	ctx context.Context,
	query GetServiceRequestQuery,
) (GetServiceRequestQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetServiceRequestQueryResponse{}, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) (GetServiceRequestQueryResponse, error) {
		r, err := uow.ServiceRequestRepository().Get(ctx, query.RequestID())
		if err != nil {
			return GetServiceRequestQueryResponse{}, err
		}

		return GetServiceRequestQueryResponse{
			ID:                r.ID(),
			Requester:         r.Requester(),
			Lab:               r.Lab(),
			ServiceID:         r.ServiceID(),
			OrderID:           r.OrderID(),
			Country:           r.Location().Country(),
			Region:            r.Location().Region(),
			City:              r.Location().City(),
			Category:          r.Category(),
			StakingAmount:     r.StakingAmount(),
			Status:            r.Status().String(),
			CreatedAt:         r.CreatedAt(),
			UpdatedAt:         r.UpdatedAt(),
			UnstakedAt:        r.UnstakedAt(),
			RetrieveUnstakeAt: r.RetrieveUnstakeAt(),
		}, nil
	})
}
