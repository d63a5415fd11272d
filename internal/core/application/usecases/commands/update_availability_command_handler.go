package commands

import (
	"context"
)

type UpdateAvailabilityCommandHandler struct {
	uowFactory StakeUoWFactory
}

func NewUpdateAvailabilityCommandHandler(uowFactory StakeUoWFactory) UpdateAvailabilityCommandHandler {
	return UpdateAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle sets the caller's own availability. Going available requires a
// staked and verified provider.
func (h *UpdateAvailabilityCommandHandler) Handle(ctx context.Context, cmd UpdateAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stakeRepo := uow.ProviderStakeRepository()
	provider, err := stakeRepo.Get(ctx, cmd.Kind(), cmd.Caller())
	if err != nil {
		return err
	}

	if err = provider.SetAvailability(cmd.Availability()); err != nil {
		return err
	}

	if err = stakeRepo.Update(ctx, provider); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
