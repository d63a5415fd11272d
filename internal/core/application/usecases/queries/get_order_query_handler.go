package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// GetOrderQueryHandler loads an order and the status of its linked record.
type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) (GetOrderQueryResponse, error) {
		o, err := uow.OrderRepository().Get(ctx, query.OrderID())
		if err != nil {
			return GetOrderQueryResponse{}, err
		}

		response := GetOrderQueryResponse{
			ID:                   o.ID(),
			ServiceID:            o.ServiceID(),
			CustomerID:           o.CustomerID(),
			SellerID:             o.SellerID(),
			CustomerBoxPublicKey: o.CustomerBoxPublicKey(),
			Currency:             o.Currency(),
			PriceComponents:      o.PriceComponents(),
			AdditionalPrices:     o.AdditionalPrices(),
			TotalPrice:           o.TotalPrice(),
			Status:               o.Status().String(),
			Flow:                 o.Flow().String(),
			TrackingID:           o.TrackingID(),
			CreatedAt:            o.CreatedAt(),
			UpdatedAt:            o.UpdatedAt(),
		}

		record, err := uow.SampleRepository().Get(ctx, o.TrackingID())
		switch {
		case err == nil:
			response.SampleStatus = record.Status().String()
		case !errors.Is(err, errs.ErrObjectNotFound):
			return GetOrderQueryResponse{}, err
		}

		return response, nil
	})
}
