package commands

import (
	"context"

	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/core/domain/services"
)

// UpdateVerificationStatusCommandHandler applies an admin decision to a
// provider. Rejection and revocation share the pending obligations gate
// with unstaking, and a rejected provider gets its stake back at once.
type UpdateVerificationStatusCommandHandler struct {
	uowFactory StakeUoWFactory
}

func NewUpdateVerificationStatusCommandHandler(uowFactory StakeUoWFactory) UpdateVerificationStatusCommandHandler {
	return UpdateVerificationStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *UpdateVerificationStatusCommandHandler) Handle(ctx context.Context, cmd UpdateVerificationStatusCommand) error {
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

	if err := authorizeAdmin(ctx, uow, cmd.Caller(), "update verification status"); err != nil {
		return err
	}

	stakeRepo := uow.ProviderStakeRepository()
	provider, err := stakeRepo.Get(ctx, cmd.Kind(), cmd.Provider())
	if err != nil {
		return err
	}

	hasPending, err := services.NewPendingObligations(uow.OrderRepository()).HasPending(ctx, cmd.Provider())
	if err != nil {
		return err
	}

	refund, err := provider.UpdateVerification(cmd.Verification(), hasPending)
	if err != nil {
		return err
	}

	if !refund.IsZero() {
		err = uow.AccountRepository().Transfer(ctx, stake.EscrowAccount(cmd.Kind()), cmd.Provider(), refund)
		if err != nil {
			return err
		}
	}

	if err = stakeRepo.Update(ctx, provider); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
