package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its frozen price list entry.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	order, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order
//	}
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the order read model.
type GetOrderQueryResponse struct {
	ID                   kernel.UUID
	ServiceID            kernel.UUID
	CustomerID           kernel.AccountID
	SellerID             kernel.AccountID
	CustomerBoxPublicKey string
	Currency             kernel.Currency
	PriceComponents      []kernel.Price
	AdditionalPrices     []kernel.Price
	TotalPrice           kernel.Balance
	Status               string
	Flow                 string
	TrackingID           kernel.TrackingID
	SampleStatus         string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
