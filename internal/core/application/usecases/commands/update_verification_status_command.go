package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateVerificationStatusCommandIsNotConstructed = errors.New(
	"UpdateVerificationStatusCommand must be created via NewUpdateVerificationStatusCommand constructor",
)

// UpdateVerificationStatusCommand records the admin's review of a provider.
type UpdateVerificationStatusCommand struct { //nolint:recvcheck //using for validation
	caller       kernel.AccountID
	kind         kernel.ProviderKind
	provider     kernel.AccountID
	verification stake.Verification

	guard guard.ConstructorGuard
}

func NewUpdateVerificationStatusCommand(
	caller kernel.AccountID,
	kind kernel.ProviderKind,
	provider kernel.AccountID,
	verification stake.Verification,
) (UpdateVerificationStatusCommand, error) {
	if err := errors.Join(
		caller.Validate(),
		kind.Validate(),
		provider.Validate(),
		verification.Validate(),
	); err != nil {
		return UpdateVerificationStatusCommand{}, err
	}

	return UpdateVerificationStatusCommand{
		caller:       caller,
		kind:         kind,
		provider:     provider,
		verification: verification,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateVerificationStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVerificationStatusCommandIsNotConstructed)
}

func (c UpdateVerificationStatusCommand) Caller() kernel.AccountID         { return c.caller }
func (c UpdateVerificationStatusCommand) Kind() kernel.ProviderKind        { return c.kind }
func (c UpdateVerificationStatusCommand) Provider() kernel.AccountID       { return c.provider }
func (c UpdateVerificationStatusCommand) Verification() stake.Verification { return c.verification }
