package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/servicerequest"
	"marketplace/internal/core/ports"
)

// CreateRequestCommandHandler opens a request, escrows the stake into the
// request's own account and bumps the open count of its location.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	clock      ports.Clock
}

func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory, clock ports.Clock) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	request, err := servicerequest.NewRequest(
		cmd.RequestID(),
		cmd.Caller(),
		cmd.Location(),
		cmd.Category(),
		cmd.Amount(),
		h.clock.Now(),
	)
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

	err = uow.AccountRepository().Transfer(ctx, cmd.Caller(), servicerequest.EscrowAccount(request.ID()), request.StakingAmount())
	if errors.Is(err, kernel.ErrBalanceUnderflow) {
		return fmt.Errorf("%w: %w", servicerequest.ErrInsufficientFunds, err)
	}
	if err != nil {
		return err
	}

	requestRepo := uow.ServiceRequestRepository()
	if err = requestRepo.Add(ctx, request); err != nil {
		return err
	}

	if err = requestRepo.IncrementOpenCount(ctx, request.CountKey()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
