package commands

import (
	"context"

	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/core/ports"
)

// RetrieveUnstakeAmountCommandHandler pays a provider's collateral back from
// the kind's escrow account once the cooldown recorded at unstake elapsed.
// Admin only.
type RetrieveUnstakeAmountCommandHandler struct {
	uowFactory StakeUoWFactory
	clock      ports.Clock
}

func NewRetrieveUnstakeAmountCommandHandler(uowFactory StakeUoWFactory, clock ports.Clock) RetrieveUnstakeAmountCommandHandler {
	return RetrieveUnstakeAmountCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *RetrieveUnstakeAmountCommandHandler) Handle(ctx context.Context, cmd RetrieveUnstakeAmountCommand) error {
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

	if err := authorizeAdmin(ctx, uow, cmd.Caller(), "retrieve unstake amount"); err != nil {
		return err
	}

	stakeRepo := uow.ProviderStakeRepository()
	provider, err := stakeRepo.Get(ctx, cmd.Kind(), cmd.Provider())
	if err != nil {
		return err
	}

	escrow := stake.EscrowAccount(cmd.Kind())
	accounts := uow.AccountRepository()
	escrowBalance, err := accounts.Balance(ctx, escrow)
	if err != nil {
		return err
	}

	amount, err := provider.RetrieveUnstake(h.clock.Now(), escrowBalance)
	if err != nil {
		return err
	}

	if err = accounts.Transfer(ctx, escrow, cmd.Provider(), amount); err != nil {
		return err
	}

	if err = stakeRepo.Update(ctx, provider); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
