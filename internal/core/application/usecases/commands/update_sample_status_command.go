package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sample"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateSampleStatusCommandIsNotConstructed = errors.New(
	"UpdateSampleStatusCommand must be created via NewUpdateSampleStatusCommand constructor",
)

// UpdateSampleStatusCommand advances the sample linked to an order.
type UpdateSampleStatusCommand struct { //nolint:recvcheck //using for validation
	trackingID kernel.TrackingID
	caller     kernel.AccountID
	status     sample.Status

	guard guard.ConstructorGuard
}

func NewUpdateSampleStatusCommand(
	trackingID kernel.TrackingID,
	caller kernel.AccountID,
	status sample.Status,
) (UpdateSampleStatusCommand, error) {
	cmd := UpdateSampleStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingID(trackingID),
		cmd.setCaller(caller),
		cmd.setStatus(status),
	); err != nil {
		return UpdateSampleStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateSampleStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSampleStatusCommandIsNotConstructed)
}

func (c UpdateSampleStatusCommand) TrackingID() kernel.TrackingID { return c.trackingID }
func (c UpdateSampleStatusCommand) Caller() kernel.AccountID      { return c.caller }
func (c UpdateSampleStatusCommand) Status() sample.Status         { return c.status }

func (c *UpdateSampleStatusCommand) setTrackingID(id kernel.TrackingID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.trackingID = id
	return nil
}

func (c *UpdateSampleStatusCommand) setCaller(caller kernel.AccountID) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}

func (c *UpdateSampleStatusCommand) setStatus(status sample.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
