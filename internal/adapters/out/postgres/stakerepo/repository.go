package stakerepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

// GormProviderStakeRepository implements ProviderStakeRepository using GORM.
type GormProviderStakeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormProviderStakeRepository(db *gorm.DB, tracker aggregateTracker) *GormProviderStakeRepository {
	return &GormProviderStakeRepository{db: db, tracker: tracker}
}

func (r *GormProviderStakeRepository) Add(ctx context.Context, aggregate *stake.ProviderStake) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := stakeFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s as %s", stake.ErrProviderAlreadyRegistered, aggregate.Account(), aggregate.Kind())
		}
		return err
	}

	r.tracker.TrackAggregate(trackingKey(aggregate.Kind(), aggregate.Account()), aggregate)
	return nil
}

func (r *GormProviderStakeRepository) Update(ctx context.Context, aggregate *stake.ProviderStake) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := stakeFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ProviderStakeDTO{}).
		Where("kind = ? AND account = ?", dto.Kind, dto.Account).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s as %s", stake.ErrProviderDoesNotExist, aggregate.Account(), aggregate.Kind())
	}

	r.tracker.TrackAggregate(trackingKey(aggregate.Kind(), aggregate.Account()), aggregate)
	return nil
}

// Get locks the row until the unit of work ends.
func (r *GormProviderStakeRepository) Get(
	ctx context.Context,
	kind kernel.ProviderKind,
	account kernel.AccountID,
) (*stake.ProviderStake, error) {
	var dto ProviderStakeDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "kind = ? AND account = ?", int(kind), account.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s as %s", stake.ErrProviderDoesNotExist, account, kind)
		}
		return nil, err
	}

	return stakeToDomain(dto)
}

func (r *GormProviderStakeRepository) ListWaitingForUnstake(
	ctx context.Context,
	kind kernel.ProviderKind,
) ([]*stake.ProviderStake, error) {
	var dtos []ProviderStakeDTO
	err := r.db.WithContext(ctx).
		Where("kind = ? AND status = ?", int(kind), int(stake.WaitingForUnstaked)).
		Order("retrieve_unstake_at, account").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	waiting := make([]*stake.ProviderStake, 0, len(dtos))
	for _, dto := range dtos {
		p, restoreErr := stakeToDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		waiting = append(waiting, p)
	}
	return waiting, nil
}

// LockAccount takes the row locks in kind order, the same order a single
// kind Get would, so it never deadlocks against unstake.
func (r *GormProviderStakeRepository) LockAccount(ctx context.Context, account kernel.AccountID) error {
	var kinds []int
	return r.db.WithContext(ctx).
		Model(&ProviderStakeDTO{}).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("account = ?", account.String()).
		Order("kind").
		Pluck("kind", &kinds).Error
}

func trackingKey(kind kernel.ProviderKind, account kernel.AccountID) string {
	return "stake:" + kind.String() + ":" + account.String()
}

// GormStakePolicyRepository implements StakePolicyRepository using GORM.
type GormStakePolicyRepository struct {
	db *gorm.DB
}

func NewGormStakePolicyRepository(db *gorm.DB) *GormStakePolicyRepository {
	return &GormStakePolicyRepository{db: db}
}

func (r *GormStakePolicyRepository) Save(ctx context.Context, policy *stake.Policy) error {
	dto := StakePolicyDTO{
		Kind:            int(policy.Kind()),
		MinimumStake:    policy.MinimumStake().Decimal(),
		UnstakeCooldown: int64(policy.UnstakeCooldown()),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"minimum_stake", "unstake_cooldown"}),
		}).
		Create(&dto).Error
}

func (r *GormStakePolicyRepository) Get(ctx context.Context, kind kernel.ProviderKind) (*stake.Policy, error) {
	var dto StakePolicyDTO
	if err := r.db.WithContext(ctx).First(&dto, "kind = ?", int(kind)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", stake.ErrPolicyDoesNotExist, kind)
		}
		return nil, err
	}

	return policyToDomain(dto)
}
