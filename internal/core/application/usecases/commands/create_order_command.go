package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerBoxPublicKeyIsRequired = errs.NewValueIsRequiredError("customer box public key")
)

// CreateOrderCommand represents a customer ordering one price list entry of
// a catalog service.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customer, serviceID, 0, boxKey, order.RequestTest)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, issuer, clock)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	caller               kernel.AccountID
	serviceID            kernel.UUID
	priceIndex           int
	customerBoxPublicKey string
	flow                 order.Flow

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifiers, a non-negative price
// index, a box key and a known order flow.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	caller kernel.AccountID,
	serviceID kernel.UUID,
	priceIndex int,
	customerBoxPublicKey string,
	flow order.Flow,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
		cmd.setServiceID(serviceID),
		cmd.setPriceIndex(priceIndex),
		cmd.setCustomerBoxPublicKey(customerBoxPublicKey),
		cmd.setFlow(flow),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID         { return c.orderID }
func (c CreateOrderCommand) Caller() kernel.AccountID     { return c.caller }
func (c CreateOrderCommand) ServiceID() kernel.UUID       { return c.serviceID }
func (c CreateOrderCommand) PriceIndex() int              { return c.priceIndex }
func (c CreateOrderCommand) CustomerBoxPublicKey() string { return c.customerBoxPublicKey }
func (c CreateOrderCommand) Flow() order.Flow             { return c.flow }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCaller(caller kernel.AccountID) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}

func (c *CreateOrderCommand) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("service id", err)
	}

	c.serviceID = serviceID
	return nil
}

func (c *CreateOrderCommand) setPriceIndex(priceIndex int) error {
	if priceIndex < 0 {
		return errs.NewValueIsOutOfRangeError("price index", priceIndex, 0, "price list length")
	}

	c.priceIndex = priceIndex
	return nil
}

func (c *CreateOrderCommand) setCustomerBoxPublicKey(key string) error {
	if key == "" {
		return ErrCustomerBoxPublicKeyIsRequired
	}

	c.customerBoxPublicKey = key
	return nil
}

func (c *CreateOrderCommand) setFlow(flow order.Flow) error {
	if err := flow.Validate(); err != nil {
		return err
	}

	c.flow = flow
	return nil
}
