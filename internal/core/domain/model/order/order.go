package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned for orders not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrNotSuccessfullyProcessed is returned when fulfilling before the linked record succeeded.
	ErrNotSuccessfullyProcessed = errs.NewInvalidStateError("linked record is not successfully processed")
	// ErrOrderNotYetExpired is returned when refunding a non-rejected order inside its expiry window.
	ErrOrderNotYetExpired = errs.NewInvalidStateError("order not yet expired")
	// ErrLinkedRecordMismatch is returned when the supplied record belongs to another order.
	ErrLinkedRecordMismatch = errs.NewValueIsInvalidError("linked record does not belong to the order")
)

// LinkedRecord is the sample or analysis record an order tracks.
// Only its identity and outcome are consumed here.
type LinkedRecord interface {
	TrackingID() kernel.TrackingID
	IsSucceeded() bool
	IsRejected() bool
}

// Order is a customer's purchase of a provider service. It is the aggregate
// root of the order ledger: prices are frozen at creation, and status only
// moves along the Status state machine.
type Order struct {
	id                   kernel.UUID
	serviceID            kernel.UUID
	customerID           kernel.AccountID
	sellerID             kernel.AccountID
	customerBoxPublicKey string
	currency             kernel.Currency
	priceComponents      []kernel.Price
	additionalPrices     []kernel.Price
	totalPrice           kernel.Balance
	status               Status
	flow                 Flow
	trackingID           kernel.TrackingID
	createdAt            time.Time
	updatedAt            time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Created status for the given price list entry.
//
// The total price is computed here as the sum of every price component and
// additional price and never recomputed afterwards.
//
// Example:
//
//	entry, err := service.PriceAt(priceIndex)
//	if err != nil {
//	    return err
//	}
//	o, err := order.NewOrder(kernel.NewUUID(), service.ID(), customer, service.Owner(),
//	    boxKey, entry, order.RequestTest, trackingID, clock.Now())
func NewOrder(
	id kernel.UUID,
	serviceID kernel.UUID,
	customerID kernel.AccountID,
	sellerID kernel.AccountID,
	customerBoxPublicKey string,
	price catalog.PriceByCurrency,
	flow Flow,
	trackingID kernel.TrackingID,
	now time.Time,
) (*Order, error) {
	o := &Order{
		customerBoxPublicKey: customerBoxPublicKey,
		currency:             price.Currency,
		priceComponents:      append([]kernel.Price(nil), price.PriceComponents...),
		additionalPrices:     append([]kernel.Price(nil), price.AdditionalPrices...),
		totalPrice:           price.TotalPrice(),
		status:               Created,
		flow:                 flow,
		trackingID:           trackingID,
		createdAt:            now,
		updatedAt:            now,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setServiceID(serviceID),
		o.setParties(customerID, sellerID),
		price.Currency.Validate(),
		flow.Validate(),
		trackingID.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries the full persisted state of an order.
type Snapshot struct {
	ID                   kernel.UUID
	ServiceID            kernel.UUID
	CustomerID           kernel.AccountID
	SellerID             kernel.AccountID
	CustomerBoxPublicKey string
	Currency             kernel.Currency
	PriceComponents      []kernel.Price
	AdditionalPrices     []kernel.Price
	TotalPrice           kernel.Balance
	Status               Status
	Flow                 Flow
	TrackingID           kernel.TrackingID
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// RestoreOrder rebuilds an order from storage. The stored total must still
// match its components, otherwise the row is rejected as corrupt.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		customerBoxPublicKey: s.CustomerBoxPublicKey,
		currency:             s.Currency,
		priceComponents:      append([]kernel.Price(nil), s.PriceComponents...),
		additionalPrices:     append([]kernel.Price(nil), s.AdditionalPrices...),
		totalPrice:           s.TotalPrice,
		status:               s.Status,
		flow:                 s.Flow,
		trackingID:           s.TrackingID,
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setServiceID(s.ServiceID),
		o.setParties(s.CustomerID, s.SellerID),
		s.Currency.Validate(),
		s.Status.Validate(),
		s.Flow.Validate(),
		s.TrackingID.Validate(),
	); err != nil {
		return nil, err
	}

	expected := kernel.SumPrices(o.priceComponents).Add(kernel.SumPrices(o.additionalPrices))
	if !expected.IsEqual(o.totalPrice) {
		return nil, errs.NewValueIsInvalidErrorWithCause("total price",
			fmt.Errorf("stored %s, components sum to %s", o.totalPrice, expected))
	}

	return o, nil
}

// Snapshot returns a copy of the order state for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                   o.id,
		ServiceID:            o.serviceID,
		CustomerID:           o.customerID,
		SellerID:             o.sellerID,
		CustomerBoxPublicKey: o.customerBoxPublicKey,
		Currency:             o.currency,
		PriceComponents:      o.PriceComponents(),
		AdditionalPrices:     o.AdditionalPrices(),
		TotalPrice:           o.totalPrice,
		Status:               o.status,
		Flow:                 o.flow,
		TrackingID:           o.trackingID,
		CreatedAt:            o.createdAt,
		UpdatedAt:            o.updatedAt,
	}
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                  { return o.id }
func (o *Order) ServiceID() kernel.UUID           { return o.serviceID }
func (o *Order) CustomerID() kernel.AccountID     { return o.customerID }
func (o *Order) SellerID() kernel.AccountID       { return o.sellerID }
func (o *Order) CustomerBoxPublicKey() string     { return o.customerBoxPublicKey }
func (o *Order) Currency() kernel.Currency        { return o.currency }
func (o *Order) TotalPrice() kernel.Balance       { return o.totalPrice }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) Flow() Flow                       { return o.flow }
func (o *Order) TrackingID() kernel.TrackingID    { return o.trackingID }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }
func (o *Order) PriceComponents() []kernel.Price  { return append([]kernel.Price(nil), o.priceComponents...) }
func (o *Order) AdditionalPrices() []kernel.Price { return append([]kernel.Price(nil), o.additionalPrices...) }

// ExpiresAt is the earliest time an unrejected order may be refunded.
func (o *Order) ExpiresAt(expiry time.Duration) time.Time {
	return o.createdAt.Add(expiry)
}

// Cancel moves a Created order to Cancelled. Only the customer may cancel.
func (o *Order) Cancel(caller kernel.AccountID, now time.Time) error {
	if !caller.IsEqual(o.customerID) {
		return errs.NewUnauthorizedErrorWithCause("cancel order", fmt.Errorf("%s is not the customer", caller))
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.apply(newStatus, now)
	return nil
}

// MarkPaid moves a Created order to Paid. The escrow authority check is the
// caller's responsibility because the escrow identity lives outside the order.
func (o *Order) MarkPaid(now time.Time) error {
	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.apply(newStatus, now)
	return nil
}

// Fulfill moves a Paid order to Fulfilled once its linked record succeeded.
// Only the seller may fulfill.
func (o *Order) Fulfill(caller kernel.AccountID, record LinkedRecord, now time.Time) error {
	if !caller.IsEqual(o.sellerID) {
		return errs.NewUnauthorizedErrorWithCause("fulfill order", fmt.Errorf("%s is not the seller", caller))
	}
	if err := o.checkRecord(record); err != nil {
		return err
	}

	newStatus, err := o.status.Fulfill()
	if err != nil {
		return err
	}
	if !record.IsSucceeded() {
		return ErrNotSuccessfullyProcessed
	}

	o.apply(newStatus, now)
	return nil
}

// Refund moves a Paid order to Refunded when the linked record was rejected
// or the order is older than expiry.
func (o *Order) Refund(record LinkedRecord, expiry time.Duration, now time.Time) error {
	if err := o.checkRecord(record); err != nil {
		return err
	}

	newStatus, err := o.status.Refund()
	if err != nil {
		return err
	}
	if !record.IsRejected() && now.Before(o.ExpiresAt(expiry)) {
		return fmt.Errorf("%w: refundable from %s", ErrOrderNotYetExpired, o.ExpiresAt(expiry).Format(time.RFC3339))
	}

	o.apply(newStatus, now)
	return nil
}

func (o *Order) checkRecord(record LinkedRecord) error {
	if record == nil || record.TrackingID() != o.trackingID {
		return ErrLinkedRecordMismatch
	}
	return nil
}

func (o *Order) apply(status Status, now time.Time) {
	o.status = status
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setServiceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("service id", err)
	}
	o.serviceID = id
	return nil
}

func (o *Order) setParties(customer, seller kernel.AccountID) error {
	if err := errors.Join(customer.Validate(), seller.Validate()); err != nil {
		return err
	}
	o.customerID = customer
	o.sellerID = seller
	return nil
}
