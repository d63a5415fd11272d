// Package commands contains business operations that modify system state.
// Every command is validated at construction, and every handler runs inside
// one unit of work: load aggregates, apply the domain change, persist, commit.
// Any error before Commit leaves storage untouched.
package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	SampleRepoFactory interface {
		SampleRepository() ports.SampleRepository
	}

	ProviderStakeRepoFactory interface {
		ProviderStakeRepository() ports.ProviderStakeRepository
	}

	StakePolicyRepoFactory interface {
		StakePolicyRepository() ports.StakePolicyRepository
	}

	AuthorityRepoFactory interface {
		AuthorityRepository() ports.AuthorityRepository
	}

	ServiceRequestRepoFactory interface {
		ServiceRequestRepository() ports.ServiceRequestRepository
	}

	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// OrderUoW covers the order state machine and its linked records.
	// The authority repository resolves the escrow identity and the stake
	// repository holds the seller against a concurrent unstake.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		SampleRepoFactory
		AuthorityRepoFactory
		ProviderStakeRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StakeUoW covers provider stakes. Orders are read for the pending
	// obligations check and accounts move the collateral.
	StakeUoW interface {
		TxManager
		ProviderStakeRepoFactory
		StakePolicyRepoFactory
		AuthorityRepoFactory
		OrderRepoFactory
		AccountRepoFactory
	}

	StakeUoWFactory interface {
		Create() StakeUoW
	}

	// AuthorityUoW covers admin-only configuration.
	AuthorityUoW interface {
		TxManager
		AuthorityRepoFactory
		StakePolicyRepoFactory
	}

	AuthorityUoWFactory interface {
		Create() AuthorityUoW
	}

	// RequestUoW covers service requests, the orders they link to and the
	// escrowed stake.
	RequestUoW interface {
		TxManager
		ServiceRequestRepoFactory
		OrderRepoFactory
		AccountRepoFactory
	}

	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// UoW spans every repository.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   policies := uow.StakePolicyRepository()
	//   authority := uow.AuthorityRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		SampleRepoFactory
		ProviderStakeRepoFactory
		StakePolicyRepoFactory
		AuthorityRepoFactory
		ServiceRequestRepoFactory
		AccountRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// TrackingIDIssuer issues tracking ids that are not yet taken.
type TrackingIDIssuer interface {
	Issue(ctx context.Context, creator, owner kernel.AccountID, lookup services.TrackingIDLookup) (kernel.TrackingID, error)
}
