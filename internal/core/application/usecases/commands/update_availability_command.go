package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateAvailabilityCommandIsNotConstructed = errors.New(
	"UpdateAvailabilityCommand must be created via NewUpdateAvailabilityCommand constructor",
)

// UpdateAvailabilityCommand opens or closes a provider for new work.
type UpdateAvailabilityCommand struct { //nolint:recvcheck //using for validation
	kind         kernel.ProviderKind
	caller       kernel.AccountID
	availability stake.Availability

	guard guard.ConstructorGuard
}

func NewUpdateAvailabilityCommand(
	kind kernel.ProviderKind,
	caller kernel.AccountID,
	availability stake.Availability,
) (UpdateAvailabilityCommand, error) {
	if err := errors.Join(
		kind.Validate(),
		caller.Validate(),
		availability.Validate(),
	); err != nil {
		return UpdateAvailabilityCommand{}, err
	}

	return UpdateAvailabilityCommand{
		kind:         kind,
		caller:       caller,
		availability: availability,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAvailabilityCommandIsNotConstructed)
}

func (c UpdateAvailabilityCommand) Kind() kernel.ProviderKind        { return c.kind }
func (c UpdateAvailabilityCommand) Caller() kernel.AccountID         { return c.caller }
func (c UpdateAvailabilityCommand) Availability() stake.Availability { return c.availability }
