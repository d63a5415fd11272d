package servicerequest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

	ErrRequestNotFound          = errs.NewObjectNotFoundError("service request", "request does not exist")
	ErrNotValidAmount           = errs.NewValueIsOutOfRangeError("staking amount", 0, 1, "unbounded")
	ErrCategoryIsRequired       = errs.NewValueIsRequiredError("service category")
	ErrRequestAlreadyClaimed    = errs.NewInvalidStateError("request already claimed")
	ErrRequestAlreadyUnstaked   = errs.NewInvalidStateError("request already unstaked")
	ErrRequestUnableToProcess   = errs.NewInvalidStateError("request unable to process")
	ErrOrderAlreadyLinked       = errs.NewInvalidStateError("order already linked to a request")
	ErrRequestUnableToFinalize  = errs.NewInvalidStateError("request unable to finalize")
	ErrRequestUnableToUnstake   = errs.NewInvalidStateError("request unable to unstake")
	ErrRequestWaitingForUnstake = errs.NewInvalidStateError("request is not waiting for unstake")
	ErrRequestBeforeUnstakeTime = errs.NewInvalidStateError("cannot retrieve request stake before unstake time")
	ErrInsufficientFunds        = errs.NewResourceExhaustedError("insufficient funds to stake request")
)

// EscrowAccount is the per-request account holding the requester's stake.
func EscrowAccount(id kernel.UUID) kernel.AccountID {
	return kernel.AccountID("request:" + id.String())
}

// CountKey groups open requests for the demand index.
type CountKey struct {
	Country  string
	Region   string
	City     string
	Category string
}

// Request is a customer's staked demand for a service that no listed
// provider offers yet. A provider claims it, the customer orders against
// the claimed service, and the stake is returned once that order is fulfilled.
type Request struct {
	id                kernel.UUID
	requester         kernel.AccountID
	lab               *kernel.AccountID
	serviceID         *kernel.UUID
	orderID           *kernel.UUID
	location          kernel.Location
	category          string
	stakingAmount     kernel.Balance
	status            Status
	createdAt         time.Time
	updatedAt         *time.Time
	unstakedAt        *time.Time
	retrieveUnstakeAt *time.Time

	guard guard.ConstructorGuard
}

func NewRequest(
	id kernel.UUID,
	requester kernel.AccountID,
	location kernel.Location,
	category string,
	stakingAmount kernel.Balance,
	now time.Time,
) (*Request, error) {
	if stakingAmount.IsZero() {
		return nil, ErrNotValidAmount
	}
	return RestoreRequest(Snapshot{
		ID:            id,
		Requester:     requester,
		Location:      location,
		Category:      strings.TrimSpace(category),
		StakingAmount: stakingAmount,
		Status:        Open,
		CreatedAt:     now,
	})
}

type Snapshot struct {
	ID                kernel.UUID
	Requester         kernel.AccountID
	Lab               *kernel.AccountID
	ServiceID         *kernel.UUID
	OrderID           *kernel.UUID
	Location          kernel.Location
	Category          string
	StakingAmount     kernel.Balance
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	UnstakedAt        *time.Time
	RetrieveUnstakeAt *time.Time
}

func RestoreRequest(s Snapshot) (*Request, error) {
	var categoryErr error
	if s.Category == "" {
		categoryErr = ErrCategoryIsRequired
	}
	if err := errors.Join(
		s.ID.Validate(),
		s.Requester.Validate(),
		s.Location.Validate(),
		categoryErr,
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	r := &Request{
		id:                s.ID,
		requester:         s.Requester,
		location:          s.Location,
		category:          s.Category,
		stakingAmount:     s.StakingAmount,
		status:            s.Status,
		createdAt:         s.CreatedAt,
		updatedAt:         copyTime(s.UpdatedAt),
		unstakedAt:        copyTime(s.UnstakedAt),
		retrieveUnstakeAt: copyTime(s.RetrieveUnstakeAt),
		guard:             guard.NewConstructorGuard(),
	}
	if s.Lab != nil {
		lab := *s.Lab
		r.lab = &lab
	}
	if s.ServiceID != nil {
		id := *s.ServiceID
		r.serviceID = &id
	}
	if s.OrderID != nil {
		id := *s.OrderID
		r.orderID = &id
	}
	return r, nil
}

func (r *Request) Snapshot() Snapshot {
	return Snapshot{
		ID:                r.id,
		Requester:         r.requester,
		Lab:               r.Lab(),
		ServiceID:         r.ServiceID(),
		OrderID:           r.OrderID(),
		Location:          r.location,
		Category:          r.category,
		StakingAmount:     r.stakingAmount,
		Status:            r.status,
		CreatedAt:         r.createdAt,
		UpdatedAt:         copyTime(r.updatedAt),
		UnstakedAt:        copyTime(r.unstakedAt),
		RetrieveUnstakeAt: copyTime(r.retrieveUnstakeAt),
	}
}

func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

func (r *Request) ID() kernel.UUID               { return r.id }
func (r *Request) Requester() kernel.AccountID   { return r.requester }
func (r *Request) Location() kernel.Location     { return r.location }
func (r *Request) Category() string              { return r.category }
func (r *Request) StakingAmount() kernel.Balance { return r.stakingAmount }
func (r *Request) Status() Status                { return r.status }
func (r *Request) CreatedAt() time.Time          { return r.createdAt }
func (r *Request) UpdatedAt() *time.Time         { return copyTime(r.updatedAt) }
func (r *Request) UnstakedAt() *time.Time        { return copyTime(r.unstakedAt) }
func (r *Request) RetrieveUnstakeAt() *time.Time { return copyTime(r.retrieveUnstakeAt) }
func (r *Request) IsActive() bool                { return !r.status.IsClosed() }
func (r *Request) CountKey() CountKey {
	return CountKey{
		Country:  r.location.Country(),
		Region:   r.location.Region(),
		City:     r.location.City(),
		Category: r.category,
	}
}

func (r *Request) Lab() *kernel.AccountID {
	if r.lab == nil {
		return nil
	}
	lab := *r.lab
	return &lab
}

func (r *Request) ServiceID() *kernel.UUID {
	if r.serviceID == nil {
		return nil
	}
	id := *r.serviceID
	return &id
}

func (r *Request) OrderID() *kernel.UUID {
	if r.orderID == nil {
		return nil
	}
	id := *r.orderID
	return &id
}

// Claim assigns an open request to the provider owning service.
func (r *Request) Claim(provider kernel.AccountID, service *catalog.Service, now time.Time) error {
	switch r.status {
	case Open:
	case WaitingForUnstaked, Unstaked:
		return ErrRequestAlreadyUnstaked
	default:
		return fmt.Errorf("%w: status is %s", ErrRequestAlreadyClaimed, r.status)
	}
	if err := service.Validate(); err != nil {
		return err
	}
	if !service.IsOwnedBy(provider) {
		return errs.NewUnauthorizedErrorWithCause("claim request",
			fmt.Errorf("%s does not own service %s", provider, service.ID()))
	}

	serviceID := service.ID()
	r.lab = &provider
	r.serviceID = &serviceID
	r.status = Claimed
	r.touch(now)
	return nil
}

// Process links the requester's order for the claimed service. Only orders
// placed with the StakingRequestService flow can settle a request.
func (r *Request) Process(caller kernel.AccountID, o *order.Order, now time.Time) error {
	if !caller.IsEqual(r.requester) {
		return errs.NewUnauthorizedErrorWithCause("process request", fmt.Errorf("%s is not the requester", caller))
	}
	if r.status != Claimed {
		return fmt.Errorf("%w: status is %s", ErrRequestUnableToProcess, r.status)
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Flow() != order.StakingRequestService {
		return fmt.Errorf("%w: order %s has flow %s", ErrRequestUnableToProcess, o.ID(), o.Flow())
	}
	if !o.ServiceID().IsEqual(*r.serviceID) || !o.SellerID().IsEqual(*r.lab) || !o.CustomerID().IsEqual(caller) {
		return fmt.Errorf("%w: order %s does not match the claim", ErrRequestUnableToProcess, o.ID())
	}

	orderID := o.ID()
	r.orderID = &orderID
	r.status = Processed
	r.touch(now)
	return nil
}

// Finalize closes the request once its order is fulfilled and returns the
// stake owed back to the requester.
func (r *Request) Finalize(caller kernel.AccountID, o *order.Order, now time.Time) (kernel.Balance, error) {
	if r.lab == nil || !caller.IsEqual(*r.lab) {
		return kernel.ZeroBalance(), errs.NewUnauthorizedErrorWithCause("finalize request",
			fmt.Errorf("%s is not the claiming provider", caller))
	}
	if r.status != Processed {
		return kernel.ZeroBalance(), fmt.Errorf("%w: status is %s", ErrRequestUnableToFinalize, r.status)
	}
	if err := o.Validate(); err != nil {
		return kernel.ZeroBalance(), err
	}
	if !o.ID().IsEqual(*r.orderID) || o.Status() != order.Fulfilled {
		return kernel.ZeroBalance(), fmt.Errorf("%w: order %s is %s", ErrRequestUnableToFinalize, o.ID(), o.Status())
	}

	r.status = Finalized
	r.touch(now)
	return r.stakingAmount, nil
}

// Unstake withdraws the request; the stake is retrievable after cooldown.
func (r *Request) Unstake(caller kernel.AccountID, now time.Time, cooldown time.Duration) error {
	if !caller.IsEqual(r.requester) {
		return errs.NewUnauthorizedErrorWithCause("unstake request", fmt.Errorf("%s is not the requester", caller))
	}
	if !r.status.isWithdrawable() {
		return fmt.Errorf("%w: status is %s", ErrRequestUnableToUnstake, r.status)
	}

	retrieveAt := now.Add(cooldown)
	r.unstakedAt = &now
	r.retrieveUnstakeAt = &retrieveAt
	r.status = WaitingForUnstaked
	r.touch(now)
	return nil
}

// RetrieveUnstaked closes a withdrawn request and returns the stake owed.
func (r *Request) RetrieveUnstaked(caller kernel.AccountID, now time.Time) (kernel.Balance, error) {
	if !caller.IsEqual(r.requester) {
		return kernel.ZeroBalance(), errs.NewUnauthorizedErrorWithCause("retrieve unstaked amount",
			fmt.Errorf("%s is not the requester", caller))
	}
	if r.status != WaitingForUnstaked {
		return kernel.ZeroBalance(), fmt.Errorf("%w: status is %s", ErrRequestWaitingForUnstake, r.status)
	}
	if r.retrieveUnstakeAt != nil && now.Before(*r.retrieveUnstakeAt) {
		return kernel.ZeroBalance(), fmt.Errorf("%w: available from %s",
			ErrRequestBeforeUnstakeTime, r.retrieveUnstakeAt.Format(time.RFC3339))
	}

	r.status = Unstaked
	r.touch(now)
	return r.stakingAmount, nil
}

func (r *Request) touch(now time.Time) {
	r.updatedAt = &now
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
