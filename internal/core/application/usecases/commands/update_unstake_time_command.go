package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateUnstakeTimeCommandIsNotConstructed = errors.New(
	"UpdateUnstakeTimeCommand must be created via NewUpdateUnstakeTimeCommand constructor",
)

// UpdateUnstakeTimeCommand changes the cooldown of future unstakes of a kind.
// Providers already waiting keep the retrieval time they were given.
type UpdateUnstakeTimeCommand struct { //nolint:recvcheck //using for validation
	caller   kernel.AccountID
	kind     kernel.ProviderKind
	cooldown time.Duration

	guard guard.ConstructorGuard
}

func NewUpdateUnstakeTimeCommand(
	caller kernel.AccountID,
	kind kernel.ProviderKind,
	cooldown time.Duration,
) (UpdateUnstakeTimeCommand, error) {
	var cooldownErr error
	if cooldown <= 0 {
		cooldownErr = stake.ErrUnstakeCooldownIsNotPositive
	}

	if err := errors.Join(caller.Validate(), kind.Validate(), cooldownErr); err != nil {
		return UpdateUnstakeTimeCommand{}, err
	}

	return UpdateUnstakeTimeCommand{
		caller:   caller,
		kind:     kind,
		cooldown: cooldown,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateUnstakeTimeCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUnstakeTimeCommandIsNotConstructed)
}

func (c UpdateUnstakeTimeCommand) Caller() kernel.AccountID  { return c.caller }
func (c UpdateUnstakeTimeCommand) Kind() kernel.ProviderKind { return c.kind }
func (c UpdateUnstakeTimeCommand) Cooldown() time.Duration   { return c.cooldown }
