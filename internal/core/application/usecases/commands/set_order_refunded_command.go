package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSetOrderRefundedCommandIsNotConstructed = errors.New(
	"SetOrderRefundedCommand must be created via NewSetOrderRefundedCommand constructor",
)

// SetOrderRefundedCommand asks to record that the escrow refunded a paid order.
type SetOrderRefundedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  kernel.AccountID

	guard guard.ConstructorGuard
}

func NewSetOrderRefundedCommand(orderID kernel.UUID, caller kernel.AccountID) (SetOrderRefundedCommand, error) {
	cmd := SetOrderRefundedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
	); err != nil {
		return SetOrderRefundedCommand{}, err
	}

	return cmd, nil
}

func (c SetOrderRefundedCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderRefundedCommandIsNotConstructed)
}

func (c SetOrderRefundedCommand) OrderID() kernel.UUID     { return c.orderID }
func (c SetOrderRefundedCommand) Caller() kernel.AccountID { return c.caller }

func (c *SetOrderRefundedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetOrderRefundedCommand) setCaller(caller kernel.AccountID) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
