package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUnstakeCommandIsNotConstructed = errors.New(
	"UnstakeCommand must be created via NewUnstakeCommand constructor",
)

// UnstakeCommand starts the caller's unstake cooldown.
type UnstakeCommand struct { //nolint:recvcheck //using for validation
	kind   kernel.ProviderKind
	caller kernel.AccountID

	guard guard.ConstructorGuard
}

func NewUnstakeCommand(kind kernel.ProviderKind, caller kernel.AccountID) (UnstakeCommand, error) {
	cmd := UnstakeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKind(kind),
		cmd.setCaller(caller),
	); err != nil {
		return UnstakeCommand{}, err
	}

	return cmd, nil
}

func (c UnstakeCommand) Validate() error {
	return c.guard.Validate(ErrUnstakeCommandIsNotConstructed)
}

func (c UnstakeCommand) Kind() kernel.ProviderKind { return c.kind }
func (c UnstakeCommand) Caller() kernel.AccountID  { return c.caller }

func (c *UnstakeCommand) setKind(kind kernel.ProviderKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *UnstakeCommand) setCaller(caller kernel.AccountID) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
