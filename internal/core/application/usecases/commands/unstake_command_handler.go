package commands

import (
	"context"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// UnstakeCommandHandler starts a provider's unstake cooldown. It is refused
// while any of the provider's orders is Created or Paid. The retrieval time
// is fixed from the policy in force now.
type UnstakeCommandHandler struct {
	uowFactory StakeUoWFactory
	clock      ports.Clock
}

func NewUnstakeCommandHandler(uowFactory StakeUoWFactory, clock ports.Clock) UnstakeCommandHandler {
	return UnstakeCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *UnstakeCommandHandler) Handle(ctx context.Context, cmd UnstakeCommand) error {
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

	policy, err := uow.StakePolicyRepository().Get(ctx, cmd.Kind())
	if err != nil {
		return err
	}

	hasPending, err := services.NewPendingObligations(uow.OrderRepository()).HasPending(ctx, cmd.Caller())
	if err != nil {
		return err
	}

	if err = provider.Unstake(hasPending, h.clock.Now(), policy.UnstakeCooldown()); err != nil {
		return err
	}

	if err = stakeRepo.Update(ctx, provider); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
