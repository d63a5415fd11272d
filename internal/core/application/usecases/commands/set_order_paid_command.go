package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSetOrderPaidCommandIsNotConstructed = errors.New(
	"SetOrderPaidCommand must be created via NewSetOrderPaidCommand constructor",
)

// SetOrderPaidCommand asks to record that the escrow received payment for an order.
type SetOrderPaidCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  kernel.AccountID

	guard guard.ConstructorGuard
}

func NewSetOrderPaidCommand(orderID kernel.UUID, caller kernel.AccountID) (SetOrderPaidCommand, error) {
	cmd := SetOrderPaidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
	); err != nil {
		return SetOrderPaidCommand{}, err
	}

	return cmd, nil
}

func (c SetOrderPaidCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderPaidCommandIsNotConstructed)
}

func (c SetOrderPaidCommand) OrderID() kernel.UUID     { return c.orderID }
func (c SetOrderPaidCommand) Caller() kernel.AccountID { return c.caller }

func (c *SetOrderPaidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetOrderPaidCommand) setCaller(caller kernel.AccountID) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
