package stake

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	ErrMinimumStakeIsNotPositive    = errs.NewValueIsOutOfRangeError("minimum stake amount", 0, 1, "unbounded")
	ErrUnstakeCooldownIsNotPositive = errs.NewValueIsOutOfRangeError("unstake cooldown", 0, "1ns", "unbounded")
	ErrPolicyDoesNotExist           = errs.NewObjectNotFoundError("stake policy", "stake policy is not initialized")
)

// Policy holds the admin-tunable stake parameters of one provider kind.
type Policy struct {
	kind            kernel.ProviderKind
	minimumStake    kernel.Balance
	unstakeCooldown time.Duration
}

func NewPolicy(kind kernel.ProviderKind, minimumStake kernel.Balance, unstakeCooldown time.Duration) (*Policy, error) {
	p := &Policy{kind: kind}
	if err := errors.Join(
		kind.Validate(),
		p.SetMinimumStake(minimumStake),
		p.SetUnstakeCooldown(unstakeCooldown),
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy) Kind() kernel.ProviderKind      { return p.kind }
func (p *Policy) MinimumStake() kernel.Balance   { return p.minimumStake }
func (p *Policy) UnstakeCooldown() time.Duration { return p.unstakeCooldown }

func (p *Policy) SetMinimumStake(amount kernel.Balance) error {
	if amount.IsZero() {
		return ErrMinimumStakeIsNotPositive
	}
	p.minimumStake = amount
	return nil
}

func (p *Policy) SetUnstakeCooldown(d time.Duration) error {
	if d <= 0 {
		return ErrUnstakeCooldownIsNotPositive
	}
	p.unstakeCooldown = d
	return nil
}
