package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of one command. Either every
// write made through its repositories is committed or none is.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It is safe to call after
	// Commit, so handlers defer it unconditionally.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	SampleRepository() SampleRepository
	ProviderStakeRepository() ProviderStakeRepository
	StakePolicyRepository() StakePolicyRepository
	AuthorityRepository() AuthorityRepository
	ServiceRequestRepository() ServiceRequestRepository
	AccountRepository() AccountRepository
}
