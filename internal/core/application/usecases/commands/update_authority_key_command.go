package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateAuthorityKeyCommandIsNotConstructed = errors.New(
	"UpdateAuthorityKeyCommand must be created via NewUpdateAuthorityKeyCommand constructor",
)

// UpdateAuthorityKeyCommand carries a new admin or escrow key. The same
// command serves the bootstrap, admin rotation and escrow update handlers.
type UpdateAuthorityKeyCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	key    kernel.AccountID

	guard guard.ConstructorGuard
}

func NewUpdateAuthorityKeyCommand(caller, key kernel.AccountID) (UpdateAuthorityKeyCommand, error) {
	if err := errors.Join(caller.Validate(), key.Validate()); err != nil {
		return UpdateAuthorityKeyCommand{}, err
	}

	return UpdateAuthorityKeyCommand{
		caller: caller,
		key:    key,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateAuthorityKeyCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAuthorityKeyCommandIsNotConstructed)
}

func (c UpdateAuthorityKeyCommand) Caller() kernel.AccountID { return c.caller }
func (c UpdateAuthorityKeyCommand) Key() kernel.AccountID    { return c.key }
