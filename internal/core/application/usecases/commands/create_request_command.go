package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/servicerequest"
	"marketplace/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand stakes demand for a service category at a location.
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	caller    kernel.AccountID
	location  kernel.Location
	category  string
	amount    kernel.Balance

	guard guard.ConstructorGuard
}

func NewCreateRequestCommand(
	requestID kernel.UUID,
	caller kernel.AccountID,
	country, region, city string,
	category string,
	amount kernel.Balance,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setCaller(caller),
		cmd.setLocation(country, region, city),
		cmd.setCategory(category),
		cmd.setAmount(amount),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) RequestID() kernel.UUID    { return c.requestID }
func (c CreateRequestCommand) Caller() kernel.AccountID  { return c.caller }
func (c CreateRequestCommand) Location() kernel.Location { return c.location }
func (c CreateRequestCommand) Category() string          { return c.category }
func (c CreateRequestCommand) Amount() kernel.Balance    { return c.amount }

func (c *CreateRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.requestID = id
	return nil
}

func (c *CreateRequestCommand) setCaller(caller kernel.AccountID) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}

func (c *CreateRequestCommand) setLocation(country, region, city string) error {
	location, err := kernel.NewLocation(country, region, city)
	if err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *CreateRequestCommand) setCategory(category string) error {
	if category == "" {
		return servicerequest.ErrCategoryIsRequired
	}

	c.category = category
	return nil
}

func (c *CreateRequestCommand) setAmount(amount kernel.Balance) error {
	if amount.IsZero() {
		return servicerequest.ErrNotValidAmount
	}

	c.amount = amount
	return nil
}
