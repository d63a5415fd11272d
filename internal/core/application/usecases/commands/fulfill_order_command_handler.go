package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// FulfillOrderCommandHandler closes a Paid order once its linked sample
// reached ResultReady.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrNotSuccessfullyProcessed) {
//	    // the lab has not published a result yet
//	}
type FulfillOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewFulfillOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) FulfillOrderCommandHandler {
	return FulfillOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *FulfillOrderCommandHandler) Handle(ctx context.Context, cmd FulfillOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	record, err := uow.SampleRepository().Get(ctx, o.TrackingID())
	if err != nil {
		return err
	}

	if err = o.Fulfill(cmd.Caller(), record, h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
