package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/servicerequest"
	"marketplace/internal/core/ports"
)

// ClaimRequestCommandHandler assigns an open request to a provider's service.
type ClaimRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	catalog    ports.ServiceCatalog
	clock      ports.Clock
}

func NewClaimRequestCommandHandler(
	uowFactory RequestUoWFactory,
	catalog ports.ServiceCatalog,
	clock ports.Clock,
) ClaimRequestCommandHandler {
	return ClaimRequestCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		clock:      clock,
	}
}

func (h *ClaimRequestCommandHandler) Handle(ctx context.Context, cmd RequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateRequest(ctx, h.uowFactory, cmd, func(ctx context.Context, uow RequestUoW, r *servicerequest.Request) error {
		// state errors win over a missing service
		if r.Status() != servicerequest.Open {
			return r.Claim(cmd.Caller(), nil, h.clock.Now())
		}

		service, err := h.catalog.Get(ctx, cmd.LinkedID())
		if err != nil {
			return err
		}

		return r.Claim(cmd.Caller(), service, h.clock.Now())
	})
}

// ProcessRequestCommandHandler links the requester's order to a claimed request.
type ProcessRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	clock      ports.Clock
}

func NewProcessRequestCommandHandler(uowFactory RequestUoWFactory, clock ports.Clock) ProcessRequestCommandHandler {
	return ProcessRequestCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *ProcessRequestCommandHandler) Handle(ctx context.Context, cmd RequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateRequest(ctx, h.uowFactory, cmd, func(ctx context.Context, uow RequestUoW, r *servicerequest.Request) error {
		// caller and state errors win over a missing order
		if !cmd.Caller().IsEqual(r.Requester()) || r.Status() != servicerequest.Claimed {
			return r.Process(cmd.Caller(), nil, h.clock.Now())
		}

		o, err := uow.OrderRepository().Get(ctx, cmd.LinkedID())
		if err != nil {
			return err
		}

		return r.Process(cmd.Caller(), o, h.clock.Now())
	})
}

// FinalizeRequestCommandHandler closes a processed request whose order was
// fulfilled and returns the stake to the requester.
type FinalizeRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	clock      ports.Clock
}

func NewFinalizeRequestCommandHandler(uowFactory RequestUoWFactory, clock ports.Clock) FinalizeRequestCommandHandler {
	return FinalizeRequestCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *FinalizeRequestCommandHandler) Handle(ctx context.Context, cmd RequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateRequest(ctx, h.uowFactory, cmd, func(ctx context.Context, uow RequestUoW, r *servicerequest.Request) error {
		if r.OrderID() == nil {
			_, err := r.Finalize(cmd.Caller(), nil, h.clock.Now())
			return err
		}

		o, err := uow.OrderRepository().Get(ctx, *r.OrderID())
		if err != nil {
			return err
		}

		refund, err := r.Finalize(cmd.Caller(), o, h.clock.Now())
		if err != nil {
			return err
		}

		if err = uow.AccountRepository().Transfer(ctx, servicerequest.EscrowAccount(r.ID()), r.Requester(), refund); err != nil {
			return err
		}

		return uow.ServiceRequestRepository().DecrementOpenCount(ctx, r.CountKey())
	})
}

// UnstakeRequestCommandHandler withdraws a request. The stake stays in
// escrow until the cooldown passes.
type UnstakeRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	clock      ports.Clock
	cooldown   time.Duration
}

func NewUnstakeRequestCommandHandler(
	uowFactory RequestUoWFactory,
	clock ports.Clock,
	cooldown time.Duration,
) UnstakeRequestCommandHandler {
	return UnstakeRequestCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		cooldown:   cooldown,
	}
}

func (h *UnstakeRequestCommandHandler) Handle(ctx context.Context, cmd RequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateRequest(ctx, h.uowFactory, cmd, func(ctx context.Context, uow RequestUoW, r *servicerequest.Request) error {
		if err := r.Unstake(cmd.Caller(), h.clock.Now(), h.cooldown); err != nil {
			return err
		}

		return uow.ServiceRequestRepository().DecrementOpenCount(ctx, r.CountKey())
	})
}

// RetrieveUnstakedRequestAmountCommandHandler returns a withdrawn stake
// once its cooldown has passed.
type RetrieveUnstakedRequestAmountCommandHandler struct {
	uowFactory RequestUoWFactory
	clock      ports.Clock
}

func NewRetrieveUnstakedRequestAmountCommandHandler(
	uowFactory RequestUoWFactory,
	clock ports.Clock,
) RetrieveUnstakedRequestAmountCommandHandler {
	return RetrieveUnstakedRequestAmountCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *RetrieveUnstakedRequestAmountCommandHandler) Handle(ctx context.Context, cmd RequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateRequest(ctx, h.uowFactory, cmd, func(ctx context.Context, uow RequestUoW, r *servicerequest.Request) error {
		amount, err := r.RetrieveUnstaked(cmd.Caller(), h.clock.Now())
		if err != nil {
			return err
		}

		return uow.AccountRepository().Transfer(ctx, servicerequest.EscrowAccount(r.ID()), r.Requester(), amount)
	})
}

func updateRequest(
	ctx context.Context,
	uowFactory RequestUoWFactory,
	cmd RequestCommand,
	apply func(context.Context, RequestUoW, *servicerequest.Request) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.ServiceRequestRepository()
	request, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if err = apply(ctx, uow, request); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, request); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
