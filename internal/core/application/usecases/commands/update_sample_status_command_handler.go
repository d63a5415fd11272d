package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// UpdateSampleStatusCommandHandler lets the seller report lab progress on
// a sample. Orders read the outcome when they are fulfilled or refunded.
type UpdateSampleStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewUpdateSampleStatusCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) UpdateSampleStatusCommandHandler {
	return UpdateSampleStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *UpdateSampleStatusCommandHandler) Handle(ctx context.Context, cmd UpdateSampleStatusCommand) error {
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

	sampleRepo := uow.SampleRepository()
	record, err := sampleRepo.Get(ctx, cmd.TrackingID())
	if err != nil {
		return err
	}

	if err = record.UpdateStatus(cmd.Caller(), cmd.Status(), h.clock.Now()); err != nil {
		return err
	}

	if err = sampleRepo.Update(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
