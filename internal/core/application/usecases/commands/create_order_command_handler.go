package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/sample"
	"marketplace/internal/core/ports"
)

// CreateOrderCommandHandler places an order for a catalog service.
// The order and its linked sample record are written in the same unit of
// work, so one never exists without the other. The seller's stake records
// stay locked until commit, so an unstake either sees the new order as
// pending or completes before it is placed.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, issuer, clock)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), customer, serviceID, 0, boxKey, order.RequestTest)
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, catalog.ErrServiceDoesNotExist):
//	    // unknown service
//	case errors.Is(err, catalog.ErrPriceIndexNotFound):
//	    // no such price list entry
//	case errors.Is(err, errs.ErrCollision):
//	    // tracking id space exhausted for this pair, retry later
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ServiceCatalog
	issuer     TrackingIDIssuer
	clock      ports.Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.ServiceCatalog,
	issuer TrackingIDIssuer,
	clock ports.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		issuer:     issuer,
		clock:      clock,
	}
}

// Handle freezes the selected price list entry into a new Created order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	service, err := h.catalog.Get(ctx, cmd.ServiceID())
	if err != nil {
		return err
	}

	price, err := service.PriceAt(cmd.PriceIndex())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProviderStakeRepository().LockAccount(ctx, service.Owner()); err != nil {
		return err
	}

	sampleRepo := uow.SampleRepository()
	trackingID, err := h.issuer.Issue(ctx, cmd.Caller(), service.Owner(), sampleRepo)
	if err != nil {
		return err
	}

	now := h.clock.Now()
	o, err := order.NewOrder(
		cmd.OrderID(),
		service.ID(),
		cmd.Caller(),
		service.Owner(),
		cmd.CustomerBoxPublicKey(),
		price,
		cmd.Flow(),
		trackingID,
		now,
	)
	if err != nil {
		return err
	}

	record, err := sample.NewRecord(trackingID, o.ID(), cmd.Caller(), service.Owner(), now)
	if err != nil {
		return err
	}

	if err = sampleRepo.Add(ctx, record); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
