package memory

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/authority"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
)

type providerStakeRepository struct {
	uow *UnitOfWork
}

func (r *providerStakeRepository) Add(_ context.Context, aggregate *stake.ProviderStake) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	key := stakeKey{kind: aggregate.Kind(), account: aggregate.Account()}
	if _, ok := s.stakes[key]; ok {
		return fmt.Errorf("%w: %s as %s", stake.ErrProviderAlreadyRegistered, key.account, key.kind)
	}

	s.stakes[key] = aggregate.Snapshot()
	return nil
}

func (r *providerStakeRepository) Update(_ context.Context, aggregate *stake.ProviderStake) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	key := stakeKey{kind: aggregate.Kind(), account: aggregate.Account()}
	if _, ok := s.stakes[key]; !ok {
		return fmt.Errorf("%w: %s as %s", stake.ErrProviderDoesNotExist, key.account, key.kind)
	}

	s.stakes[key] = aggregate.Snapshot()
	return nil
}

func (r *providerStakeRepository) Get(
	_ context.Context,
	kind kernel.ProviderKind,
	account kernel.AccountID,
) (*stake.ProviderStake, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	snapshot, ok := s.stakes[stakeKey{kind: kind, account: account}]
	if !ok {
		return nil, fmt.Errorf("%w: %s as %s", stake.ErrProviderDoesNotExist, account, kind)
	}
	return stake.RestoreProviderStake(snapshot)
}

func (r *providerStakeRepository) ListWaitingForUnstake(
	_ context.Context,
	kind kernel.ProviderKind,
) ([]*stake.ProviderStake, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	var waiting []*stake.ProviderStake
	for key, snapshot := range s.stakes {
		if key.kind != kind || snapshot.Status != stake.WaitingForUnstaked {
			continue
		}
		p, restoreErr := stake.RestoreProviderStake(snapshot)
		if restoreErr != nil {
			return nil, restoreErr
		}
		waiting = append(waiting, p)
	}
	return waiting, nil
}

// LockAccount is a no-op beyond the store lock the unit of work already holds.
func (r *providerStakeRepository) LockAccount(_ context.Context, _ kernel.AccountID) error {
	_, err := r.uow.current()
	return err
}

type stakePolicyRepository struct {
	uow *UnitOfWork
}

func (r *stakePolicyRepository) Save(_ context.Context, policy *stake.Policy) error {
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	s.policies[policy.Kind()] = policyRow{
		minimumStake:    policy.MinimumStake(),
		unstakeCooldown: policy.UnstakeCooldown(),
	}
	return nil
}

func (r *stakePolicyRepository) Get(_ context.Context, kind kernel.ProviderKind) (*stake.Policy, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	row, ok := s.policies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", stake.ErrPolicyDoesNotExist, kind)
	}
	return stake.NewPolicy(kind, row.minimumStake, row.unstakeCooldown)
}

type authorityRepository struct {
	uow *UnitOfWork
}

func (r *authorityRepository) Get(_ context.Context) (*authority.Authority, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	return authority.RestoreAuthority(s.adminKey, s.escrowKey)
}

func (r *authorityRepository) Save(_ context.Context, aggregate *authority.Authority) error {
	s, err := r.uow.writable()
	if err != nil {
		return err
	}
	s.adminKey = aggregate.AdminKey()
	s.escrowKey = aggregate.EscrowKey()
	return nil
}
