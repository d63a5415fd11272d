package sample

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is the lab-side tracking record linked one-to-one with an order.
// Orders read only its outcome.
type Record struct {
	trackingID kernel.TrackingID
	orderID    kernel.UUID
	ownerID    kernel.AccountID
	sellerID   kernel.AccountID
	status     Status
	createdAt  time.Time
	updatedAt  time.Time

	guard guard.ConstructorGuard
}

func NewRecord(
	trackingID kernel.TrackingID,
	orderID kernel.UUID,
	ownerID, sellerID kernel.AccountID,
	now time.Time,
) (*Record, error) {
	return RestoreRecord(Snapshot{
		TrackingID: trackingID,
		OrderID:    orderID,
		OwnerID:    ownerID,
		SellerID:   sellerID,
		Status:     Registered,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

type Snapshot struct {
	TrackingID kernel.TrackingID
	OrderID    kernel.UUID
	OwnerID    kernel.AccountID
	SellerID   kernel.AccountID
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func RestoreRecord(s Snapshot) (*Record, error) {
	if err := errors.Join(
		s.TrackingID.Validate(),
		s.OrderID.Validate(),
		s.OwnerID.Validate(),
		s.SellerID.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Record{
		trackingID: s.TrackingID,
		orderID:    s.OrderID,
		ownerID:    s.OwnerID,
		sellerID:   s.SellerID,
		status:     s.Status,
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (r *Record) Snapshot() Snapshot {
	return Snapshot{
		TrackingID: r.trackingID,
		OrderID:    r.orderID,
		OwnerID:    r.ownerID,
		SellerID:   r.sellerID,
		Status:     r.status,
		CreatedAt:  r.createdAt,
		UpdatedAt:  r.updatedAt,
	}
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) TrackingID() kernel.TrackingID { return r.trackingID }
func (r *Record) OrderID() kernel.UUID          { return r.orderID }
func (r *Record) OwnerID() kernel.AccountID     { return r.ownerID }
func (r *Record) SellerID() kernel.AccountID    { return r.sellerID }
func (r *Record) Status() Status                { return r.status }
func (r *Record) CreatedAt() time.Time          { return r.createdAt }
func (r *Record) UpdatedAt() time.Time          { return r.updatedAt }

func (r *Record) IsSucceeded() bool { return r.status == ResultReady }
func (r *Record) IsRejected() bool  { return r.status == Rejected }

// UpdateStatus advances the record. Only the seller may do so and the
// status never moves backwards.
func (r *Record) UpdateStatus(caller kernel.AccountID, next Status, now time.Time) error {
	if !caller.IsEqual(r.sellerID) {
		return errs.NewUnauthorizedErrorWithCause("update sample status", fmt.Errorf("%s is not the seller", caller))
	}

	newStatus, err := r.status.Advance(next)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.updatedAt = now
	return nil
}
