package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRetrieveUnstakeAmountCommandIsNotConstructed = errors.New(
	"RetrieveUnstakeAmountCommand must be created via NewRetrieveUnstakeAmountCommand constructor",
)

// RetrieveUnstakeAmountCommand asks the admin to release a provider's
// collateral after its cooldown.
type RetrieveUnstakeAmountCommand struct { //nolint:recvcheck //using for validation
	caller   kernel.AccountID
	kind     kernel.ProviderKind
	provider kernel.AccountID

	guard guard.ConstructorGuard
}

func NewRetrieveUnstakeAmountCommand(
	caller kernel.AccountID,
	kind kernel.ProviderKind,
	provider kernel.AccountID,
) (RetrieveUnstakeAmountCommand, error) {
	cmd := RetrieveUnstakeAmountCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		caller.Validate(),
		kind.Validate(),
		provider.Validate(),
	); err != nil {
		return RetrieveUnstakeAmountCommand{}, err
	}

	cmd.caller = caller
	cmd.kind = kind
	cmd.provider = provider
	return cmd, nil
}

func (c RetrieveUnstakeAmountCommand) Validate() error {
	return c.guard.Validate(ErrRetrieveUnstakeAmountCommandIsNotConstructed)
}

func (c RetrieveUnstakeAmountCommand) Caller() kernel.AccountID   { return c.caller }
func (c RetrieveUnstakeAmountCommand) Kind() kernel.ProviderKind  { return c.kind }
func (c RetrieveUnstakeAmountCommand) Provider() kernel.AccountID { return c.provider }
