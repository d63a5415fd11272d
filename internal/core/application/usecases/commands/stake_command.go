package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrStakeCommandIsNotConstructed = errors.New(
	"StakeCommand must be created via NewStakeCommand constructor",
)

// StakeCommand locks the minimum stake of the caller's kind.
type StakeCommand struct { //nolint:recvcheck //using for validation
	kind   kernel.ProviderKind
	caller kernel.AccountID

	guard guard.ConstructorGuard
}

func NewStakeCommand(kind kernel.ProviderKind, caller kernel.AccountID) (StakeCommand, error) {
	cmd := StakeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKind(kind),
		cmd.setCaller(caller),
	); err != nil {
		return StakeCommand{}, err
	}

	return cmd, nil
}

func (c StakeCommand) Validate() error {
	return c.guard.Validate(ErrStakeCommandIsNotConstructed)
}

func (c StakeCommand) Kind() kernel.ProviderKind { return c.kind }
func (c StakeCommand) Caller() kernel.AccountID  { return c.caller }

func (c *StakeCommand) setKind(kind kernel.ProviderKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *StakeCommand) setCaller(caller kernel.AccountID) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
