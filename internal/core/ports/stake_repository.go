package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
)

// ProviderStakeRepository persists one stake record per (kind, account).
type ProviderStakeRepository interface {
	// Add registers a provider. It fails with stake.ErrProviderAlreadyRegistered
	// when the pair exists.
	Add(ctx context.Context, aggregate *stake.ProviderStake) error

	Update(ctx context.Context, aggregate *stake.ProviderStake) error

	// Get returns stake.ErrProviderDoesNotExist for unregistered providers.
	Get(ctx context.Context, kind kernel.ProviderKind, account kernel.AccountID) (*stake.ProviderStake, error)

	// ListWaitingForUnstake returns every record of the kind in WaitingForUnstaked.
	ListWaitingForUnstake(ctx context.Context, kind kernel.ProviderKind) ([]*stake.ProviderStake, error)

	// LockAccount holds every stake record of the account, whatever its kind,
	// until the unit of work ends. Accounts without a record lock nothing.
	LockAccount(ctx context.Context, account kernel.AccountID) error
}

// StakePolicyRepository persists the per-kind stake policies.
type StakePolicyRepository interface {
	// Save inserts or replaces the policy of its kind.
	Save(ctx context.Context, policy *stake.Policy) error

	// Get returns stake.ErrPolicyDoesNotExist until the kind is initialized.
	Get(ctx context.Context, kind kernel.ProviderKind) (*stake.Policy, error)
}
