package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"
)

// SetOrderRefundedCommandHandler moves a Paid order to Refunded. Only the
// escrow key may call it, and only when the sample was rejected or the
// order is older than the configured expiry.
type SetOrderRefundedCommandHandler struct {
	uowFactory  OrderUoWFactory
	clock       ports.Clock
	orderExpiry time.Duration
}

func NewSetOrderRefundedCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	orderExpiry time.Duration,
) SetOrderRefundedCommandHandler {
	return SetOrderRefundedCommandHandler{
		uowFactory:  uowFactory,
		clock:       clock,
		orderExpiry: orderExpiry,
	}
}

func (h *SetOrderRefundedCommandHandler) Handle(ctx context.Context, cmd SetOrderRefundedCommand) error {
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

	if err := authorizeEscrow(ctx, uow, cmd.Caller(), "set order refunded"); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	record, err := uow.SampleRepository().Get(ctx, o.TrackingID())
	if err != nil {
		return err
	}

	if err = o.Refund(record, h.orderExpiry, h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
