package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateMinimumStakeAmountCommandIsNotConstructed = errors.New(
	"UpdateMinimumStakeAmountCommand must be created via NewUpdateMinimumStakeAmountCommand constructor",
)

// UpdateMinimumStakeAmountCommand changes the stake future providers of a
// kind must lock. Existing stakes are not touched.
type UpdateMinimumStakeAmountCommand struct { //nolint:recvcheck //using for validation
	caller kernel.AccountID
	kind   kernel.ProviderKind
	amount kernel.Balance

	guard guard.ConstructorGuard
}

func NewUpdateMinimumStakeAmountCommand(
	caller kernel.AccountID,
	kind kernel.ProviderKind,
	amount kernel.Balance,
) (UpdateMinimumStakeAmountCommand, error) {
	var amountErr error
	if amount.IsZero() {
		amountErr = stake.ErrMinimumStakeIsNotPositive
	}

	if err := errors.Join(caller.Validate(), kind.Validate(), amountErr); err != nil {
		return UpdateMinimumStakeAmountCommand{}, err
	}

	return UpdateMinimumStakeAmountCommand{
		caller: caller,
		kind:   kind,
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateMinimumStakeAmountCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMinimumStakeAmountCommandIsNotConstructed)
}

func (c UpdateMinimumStakeAmountCommand) Caller() kernel.AccountID  { return c.caller }
func (c UpdateMinimumStakeAmountCommand) Kind() kernel.ProviderKind { return c.kind }
func (c UpdateMinimumStakeAmountCommand) Amount() kernel.Balance    { return c.amount }
