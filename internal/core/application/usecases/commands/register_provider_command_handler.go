package commands

import (
	"context"

	"marketplace/internal/core/domain/model/stake"
)

// RegisterProviderCommandHandler creates the stake record of a new provider:
// nothing staked, unverified and unavailable.
type RegisterProviderCommandHandler struct {
	uowFactory StakeUoWFactory
}

func NewRegisterProviderCommandHandler(uowFactory StakeUoWFactory) RegisterProviderCommandHandler {
	return RegisterProviderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *RegisterProviderCommandHandler) Handle(ctx context.Context, cmd RegisterProviderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	provider, err := stake.NewProviderStake(cmd.Kind(), cmd.Caller())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProviderStakeRepository().Add(ctx, provider); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
