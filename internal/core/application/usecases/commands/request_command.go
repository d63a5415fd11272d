package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRequestCommandIsNotConstructed = errors.New(
	"RequestCommand must be created via NewRequestCommand constructor",
)

// RequestCommand addresses an existing service request on behalf of caller.
// Claim and process carry the linked service or order, finalize and the
// unstake steps need nothing more.
type RequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	caller    kernel.AccountID
	linkedID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewRequestCommand(requestID kernel.UUID, caller kernel.AccountID) (RequestCommand, error) {
	if err := errors.Join(validateRequestID(requestID), caller.Validate()); err != nil {
		return RequestCommand{}, err
	}

	return RequestCommand{
		requestID: requestID,
		caller:    caller,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewClaimRequestCommand links serviceID to the request.
func NewClaimRequestCommand(requestID kernel.UUID, caller kernel.AccountID, serviceID kernel.UUID) (RequestCommand, error) {
	return newLinkedRequestCommand(requestID, caller, serviceID, "serviceID")
}

// NewProcessRequestCommand links orderID to the request.
func NewProcessRequestCommand(requestID kernel.UUID, caller kernel.AccountID, orderID kernel.UUID) (RequestCommand, error) {
	return newLinkedRequestCommand(requestID, caller, orderID, "orderID")
}

func newLinkedRequestCommand(requestID kernel.UUID, caller kernel.AccountID, linkedID kernel.UUID, name string) (RequestCommand, error) {
	var linkedErr error
	if err := linkedID.Validate(); err != nil {
		linkedErr = errs.NewValueIsRequiredErrorWithCause(name, err)
	}

	if err := errors.Join(validateRequestID(requestID), caller.Validate(), linkedErr); err != nil {
		return RequestCommand{}, err
	}

	return RequestCommand{
		requestID: requestID,
		caller:    caller,
		linkedID:  linkedID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RequestCommand) Validate() error {
	return c.guard.Validate(ErrRequestCommandIsNotConstructed)
}

func (c RequestCommand) RequestID() kernel.UUID   { return c.requestID }
func (c RequestCommand) Caller() kernel.AccountID { return c.caller }
func (c RequestCommand) LinkedID() kernel.UUID    { return c.linkedID }

func validateRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requestID", err)
	}
	return nil
}
