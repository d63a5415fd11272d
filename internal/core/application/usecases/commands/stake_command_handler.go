package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
)

// StakeCommandHandler locks the current minimum stake of the provider's
// kind and moves it into the kind's escrow account.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, stake.ErrProviderDoesNotExist):
//	    // register first
//	case errors.Is(err, stake.ErrInsufficientFunds):
//	    // balance below the minimum stake
//	}
type StakeCommandHandler struct {
	uowFactory StakeUoWFactory
}

func NewStakeCommandHandler(uowFactory StakeUoWFactory) StakeCommandHandler {
	return StakeCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *StakeCommandHandler) Handle(ctx context.Context, cmd StakeCommand) error {
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

	accounts := uow.AccountRepository()
	funds, err := accounts.Balance(ctx, cmd.Caller())
	if err != nil {
		return err
	}

	if err = provider.Stake(policy.MinimumStake(), funds); err != nil {
		return err
	}

	err = accounts.Transfer(ctx, cmd.Caller(), stake.EscrowAccount(cmd.Kind()), provider.StakeAmount())
	if errors.Is(err, kernel.ErrBalanceUnderflow) {
		return fmt.Errorf("%w: %w", stake.ErrInsufficientFunds, err)
	}
	if err != nil {
		return err
	}

	if err = stakeRepo.Update(ctx, provider); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
