package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// SetOrderPaidCommandHandler moves a Created order to Paid. Only the escrow
// key may call it; the seller's pending obligations start counting from here.
type SetOrderPaidCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewSetOrderPaidCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) SetOrderPaidCommandHandler {
	return SetOrderPaidCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *SetOrderPaidCommandHandler) Handle(ctx context.Context, cmd SetOrderPaidCommand) error {
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

	if err := authorizeEscrow(ctx, uow, cmd.Caller(), "set order paid"); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.MarkPaid(h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
