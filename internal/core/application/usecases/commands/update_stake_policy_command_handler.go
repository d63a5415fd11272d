package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
)

// UpdateMinimumStakeAmountCommandHandler and UpdateUnstakeTimeCommandHandler
// are admin-only edits of one stake policy.
type UpdateMinimumStakeAmountCommandHandler struct {
	uowFactory AuthorityUoWFactory
}

func NewUpdateMinimumStakeAmountCommandHandler(uowFactory AuthorityUoWFactory) UpdateMinimumStakeAmountCommandHandler {
	return UpdateMinimumStakeAmountCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateMinimumStakeAmountCommandHandler) Handle(ctx context.Context, cmd UpdateMinimumStakeAmountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updatePolicy(ctx, h.uowFactory, cmd.Caller(), cmd.Kind(), "update minimum stake amount",
		func(p *stake.Policy) error {
			return p.SetMinimumStake(cmd.Amount())
		})
}

type UpdateUnstakeTimeCommandHandler struct {
	uowFactory AuthorityUoWFactory
}

func NewUpdateUnstakeTimeCommandHandler(uowFactory AuthorityUoWFactory) UpdateUnstakeTimeCommandHandler {
	return UpdateUnstakeTimeCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateUnstakeTimeCommandHandler) Handle(ctx context.Context, cmd UpdateUnstakeTimeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updatePolicy(ctx, h.uowFactory, cmd.Caller(), cmd.Kind(), "update unstake time",
		func(p *stake.Policy) error {
			return p.SetUnstakeCooldown(cmd.Cooldown())
		})
}

func updatePolicy(
	ctx context.Context,
	uowFactory AuthorityUoWFactory,
	caller kernel.AccountID,
	kind kernel.ProviderKind,
	action string,
	apply func(*stake.Policy) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := authorizeAdmin(ctx, uow, caller, action); err != nil {
		return err
	}

	policyRepo := uow.StakePolicyRepository()
	policy, err := policyRepo.Get(ctx, kind)
	if err != nil {
		return err
	}

	if err = apply(policy); err != nil {
		return err
	}

	if err = policyRepo.Save(ctx, policy); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
