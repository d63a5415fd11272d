package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRegisterProviderCommandIsNotConstructed = errors.New(
	"RegisterProviderCommand must be created via NewRegisterProviderCommand constructor",
)

// RegisterProviderCommand registers the caller as a provider of a kind.
type RegisterProviderCommand struct { //nolint:recvcheck //using for validation
	kind   kernel.ProviderKind
	caller kernel.AccountID

	guard guard.ConstructorGuard
}

func NewRegisterProviderCommand(kind kernel.ProviderKind, caller kernel.AccountID) (RegisterProviderCommand, error) {
	cmd := RegisterProviderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKind(kind),
		cmd.setCaller(caller),
	); err != nil {
		return RegisterProviderCommand{}, err
	}

	return cmd, nil
}

func (c RegisterProviderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterProviderCommandIsNotConstructed)
}

func (c RegisterProviderCommand) Kind() kernel.ProviderKind { return c.kind }
func (c RegisterProviderCommand) Caller() kernel.AccountID  { return c.caller }

func (c *RegisterProviderCommand) setKind(kind kernel.ProviderKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *RegisterProviderCommand) setCaller(caller kernel.AccountID) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
