// Package stakerepo persists provider stakes and the per-kind stake policies.
package stakerepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"

	"github.com/shopspring/decimal"
)

type ProviderStakeDTO struct {
	Kind              int             `gorm:"primaryKey;autoIncrement:false"`
	Account           string          `gorm:"primaryKey"`
	StakeAmount       decimal.Decimal `gorm:"type:numeric(78,0);not null"`
	UnstakeAmount     decimal.Decimal `gorm:"type:numeric(78,0);not null"`
	Status            int             `gorm:"not null;index"`
	UnstakeAt         *time.Time
	RetrieveUnstakeAt *time.Time
	Verification      int `gorm:"not null"`
	Availability      int `gorm:"not null"`
}

func (ProviderStakeDTO) TableName() string {
	return "provider_stakes"
}

// StakePolicyDTO stores the unstake cooldown in nanoseconds.
type StakePolicyDTO struct {
	Kind            int             `gorm:"primaryKey;autoIncrement:false"`
	MinimumStake    decimal.Decimal `gorm:"type:numeric(78,0);not null"`
	UnstakeCooldown int64           `gorm:"not null"`
}

func (StakePolicyDTO) TableName() string {
	return "stake_policies"
}

func stakeFromDomain(p *stake.ProviderStake) ProviderStakeDTO {
	s := p.Snapshot()
	return ProviderStakeDTO{
		Kind:              int(s.Kind),
		Account:           s.Account.String(),
		StakeAmount:       s.StakeAmount.Decimal(),
		UnstakeAmount:     s.UnstakeAmount.Decimal(),
		Status:            int(s.Status),
		UnstakeAt:         s.UnstakeAt,
		RetrieveUnstakeAt: s.RetrieveUnstakeAt,
		Verification:      int(s.Verification),
		Availability:      int(s.Availability),
	}
}

func stakeToDomain(dto ProviderStakeDTO) (*stake.ProviderStake, error) {
	staked, err := kernel.BalanceFromDecimal(dto.StakeAmount)
	if err != nil {
		return nil, err
	}
	unstaked, err := kernel.BalanceFromDecimal(dto.UnstakeAmount)
	if err != nil {
		return nil, err
	}

	return stake.RestoreProviderStake(stake.Snapshot{
		Kind:              kernel.ProviderKind(dto.Kind),
		Account:           kernel.AccountID(dto.Account),
		StakeAmount:       staked,
		UnstakeAmount:     unstaked,
		Status:            stake.Status(dto.Status),
		UnstakeAt:         utc(dto.UnstakeAt),
		RetrieveUnstakeAt: utc(dto.RetrieveUnstakeAt),
		Verification:      stake.Verification(dto.Verification),
		Availability:      stake.Availability(dto.Availability),
	})
}

func policyToDomain(dto StakePolicyDTO) (*stake.Policy, error) {
	minimum, err := kernel.BalanceFromDecimal(dto.MinimumStake)
	if err != nil {
		return nil, err
	}
	return stake.NewPolicy(kernel.ProviderKind(dto.Kind), minimum, time.Duration(dto.UnstakeCooldown))
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
