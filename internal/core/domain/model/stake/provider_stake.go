package stake

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrProviderStakeIsNotConstructed = errors.New("ProviderStake must be created via NewProviderStake constructor")

	ErrProviderDoesNotExist           = errs.NewObjectNotFoundError("provider", "provider is not registered")
	ErrProviderAlreadyRegistered      = errs.NewInvalidStateError("provider is already registered")
	ErrAlreadyStaked                  = errs.NewInvalidStateError("provider is already staked")
	ErrIsNotStaked                    = errs.NewInvalidStateError("provider is not staked")
	ErrHasPendingOrders               = errs.NewInvalidStateError("provider has pending orders")
	ErrNotWaitingForUnstake           = errs.NewInvalidStateError("provider is not waiting for unstake")
	ErrCannotUnstakeBeforeUnstakeTime = errs.NewInvalidStateError("cannot retrieve stake before unstake time")
	ErrNotReadyToServe                = errs.NewInvalidStateError("provider must be staked and verified to be available")
	ErrInsufficientFunds              = errs.NewResourceExhaustedError("insufficient funds to stake")
	ErrInsufficientPalletFunds        = errs.NewResourceExhaustedError("insufficient escrow funds")
)

// EscrowAccount is the account holding the collateral of every provider of a kind.
func EscrowAccount(kind kernel.ProviderKind) kernel.AccountID {
	return kernel.AccountID("pallet:stake:" + kind.String())
}

// ProviderStake is the collateral record of one provider of one kind.
// It also carries the verification and availability flags gated by the
// stake status.
type ProviderStake struct {
	kind              kernel.ProviderKind
	account           kernel.AccountID
	stakeAmount       kernel.Balance
	unstakeAmount     kernel.Balance
	status            Status
	unstakeAt         *time.Time
	retrieveUnstakeAt *time.Time
	verification      Verification
	availability      Availability

	guard guard.ConstructorGuard
}

// NewProviderStake registers a provider: nothing staked, unverified, unavailable.
func NewProviderStake(kind kernel.ProviderKind, account kernel.AccountID) (*ProviderStake, error) {
	return RestoreProviderStake(Snapshot{
		Kind:         kind,
		Account:      account,
		Status:       Unstaked,
		Verification: Unverified,
		Availability: Unavailable,
	})
}

type Snapshot struct {
	Kind              kernel.ProviderKind
	Account           kernel.AccountID
	StakeAmount       kernel.Balance
	UnstakeAmount     kernel.Balance
	Status            Status
	UnstakeAt         *time.Time
	RetrieveUnstakeAt *time.Time
	Verification      Verification
	Availability      Availability
}

func RestoreProviderStake(s Snapshot) (*ProviderStake, error) {
	if err := errors.Join(
		s.Kind.Validate(),
		s.Account.Validate(),
		s.Status.Validate(),
		s.Verification.Validate(),
		s.Availability.Validate(),
	); err != nil {
		return nil, err
	}

	return &ProviderStake{
		kind:              s.Kind,
		account:           s.Account,
		stakeAmount:       s.StakeAmount,
		unstakeAmount:     s.UnstakeAmount,
		status:            s.Status,
		unstakeAt:         copyTime(s.UnstakeAt),
		retrieveUnstakeAt: copyTime(s.RetrieveUnstakeAt),
		verification:      s.Verification,
		availability:      s.Availability,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (p *ProviderStake) Snapshot() Snapshot {
	return Snapshot{
		Kind:              p.kind,
		Account:           p.account,
		StakeAmount:       p.stakeAmount,
		UnstakeAmount:     p.unstakeAmount,
		Status:            p.status,
		UnstakeAt:         copyTime(p.unstakeAt),
		RetrieveUnstakeAt: copyTime(p.retrieveUnstakeAt),
		Verification:      p.verification,
		Availability:      p.availability,
	}
}

func (p *ProviderStake) Validate() error {
	if p == nil {
		return ErrProviderStakeIsNotConstructed
	}
	return p.guard.Validate(ErrProviderStakeIsNotConstructed)
}

func (p *ProviderStake) Kind() kernel.ProviderKind     { return p.kind }
func (p *ProviderStake) Account() kernel.AccountID     { return p.account }
func (p *ProviderStake) StakeAmount() kernel.Balance   { return p.stakeAmount }
func (p *ProviderStake) UnstakeAmount() kernel.Balance { return p.unstakeAmount }
func (p *ProviderStake) Status() Status                { return p.status }
func (p *ProviderStake) UnstakeAt() *time.Time         { return copyTime(p.unstakeAt) }
func (p *ProviderStake) RetrieveUnstakeAt() *time.Time { return copyTime(p.retrieveUnstakeAt) }
func (p *ProviderStake) Verification() Verification    { return p.verification }
func (p *ProviderStake) Availability() Availability    { return p.availability }

// Stake locks minimum as collateral. The caller moves the funds into
// EscrowAccount(kind) after this succeeds.
func (p *ProviderStake) Stake(minimum, funds kernel.Balance) error {
	if p.status != Unstaked {
		return fmt.Errorf("%w: status is %s", ErrAlreadyStaked, p.status)
	}
	if funds.LessThan(minimum) {
		return fmt.Errorf("%w: need %s, have %s", ErrInsufficientFunds, minimum, funds)
	}

	p.stakeAmount = minimum
	p.status = Staked
	return nil
}

// Unstake starts the cooldown. The retrieval time is fixed here, so later
// policy changes do not move it.
func (p *ProviderStake) Unstake(hasPending bool, now time.Time, cooldown time.Duration) error {
	if p.status != Staked {
		return fmt.Errorf("%w: status is %s", ErrIsNotStaked, p.status)
	}
	if hasPending {
		return ErrHasPendingOrders
	}

	retrieveAt := now.Add(cooldown)
	p.unstakeAt = &now
	p.retrieveUnstakeAt = &retrieveAt
	p.unstakeAmount = p.unstakeAmount.Add(p.stakeAmount)
	p.stakeAmount = kernel.ZeroBalance()
	p.status = WaitingForUnstaked
	p.availability = Unavailable
	return nil
}

// RetrieveUnstake releases the collateral once the cooldown elapsed and
// returns the amount the caller must transfer back to the provider.
func (p *ProviderStake) RetrieveUnstake(now time.Time, escrowBalance kernel.Balance) (kernel.Balance, error) {
	if p.status != WaitingForUnstaked {
		return kernel.ZeroBalance(), fmt.Errorf("%w: status is %s", ErrNotWaitingForUnstake, p.status)
	}
	if p.retrieveUnstakeAt != nil && now.Before(*p.retrieveUnstakeAt) {
		return kernel.ZeroBalance(), fmt.Errorf("%w: available from %s",
			ErrCannotUnstakeBeforeUnstakeTime, p.retrieveUnstakeAt.Format(time.RFC3339))
	}
	if escrowBalance.LessThan(p.unstakeAmount) {
		return kernel.ZeroBalance(), fmt.Errorf("%w: owed %s, escrow holds %s",
			ErrInsufficientPalletFunds, p.unstakeAmount, escrowBalance)
	}

	amount := p.unstakeAmount
	p.unstakeAmount = kernel.ZeroBalance()
	p.status = Unstaked
	return amount, nil
}

// IsMatured reports whether RetrieveUnstake would pass its time check.
func (p *ProviderStake) IsMatured(now time.Time) bool {
	return p.status == WaitingForUnstaked && (p.retrieveUnstakeAt == nil || !now.Before(*p.retrieveUnstakeAt))
}

// UpdateVerification applies an admin decision. Rejection hands the stake
// back immediately; the returned amount is what the caller must refund.
func (p *ProviderStake) UpdateVerification(v Verification, hasPending bool) (kernel.Balance, error) {
	if err := v.Validate(); err != nil {
		return kernel.ZeroBalance(), err
	}

	refund := kernel.ZeroBalance()
	switch v {
	case Verified:
		if p.status != Staked {
			return refund, fmt.Errorf("%w: status is %s", ErrIsNotStaked, p.status)
		}
	case Rejected, Revoked:
		if hasPending {
			return refund, ErrHasPendingOrders
		}
		p.availability = Unavailable
		if v == Rejected && p.status == Staked {
			refund = p.stakeAmount
			p.stakeAmount = kernel.ZeroBalance()
			p.status = Unstaked
		}
	case Unverified:
		p.availability = Unavailable
	}

	p.verification = v
	return refund, nil
}

// SetAvailability toggles whether the provider accepts work.
func (p *ProviderStake) SetAvailability(a Availability) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a == Available && (p.status != Staked || p.verification != Verified) {
		return fmt.Errorf("%w: status is %s, verification is %s", ErrNotReadyToServe, p.status, p.verification)
	}

	p.availability = a
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
