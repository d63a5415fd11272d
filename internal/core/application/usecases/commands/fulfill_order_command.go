package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrFulfillOrderCommandIsNotConstructed = errors.New(
	"FulfillOrderCommand must be created via NewFulfillOrderCommand constructor",
)

// FulfillOrderCommand asks to close a paid order whose sample result is ready. Only the seller may fulfill.
type FulfillOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  kernel.AccountID

	guard guard.ConstructorGuard
}

func NewFulfillOrderCommand(orderID kernel.UUID, caller kernel.AccountID) (FulfillOrderCommand, error) {
	cmd := FulfillOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
	); err != nil {
		return FulfillOrderCommand{}, err
	}

	return cmd, nil
}

func (c FulfillOrderCommand) Validate() error {
	return c.guard.Validate(ErrFulfillOrderCommandIsNotConstructed)
}

func (c FulfillOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c FulfillOrderCommand) Caller() kernel.AccountID { return c.caller }

func (c *FulfillOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FulfillOrderCommand) setCaller(caller kernel.AccountID) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
