// Package memory is an in-process implementation of the storage ports.
//
// A Store holds committed state. Each unit of work takes the store-wide
// lock in Begin and reads the committed state directly. Its first write
// copies the whole state, and later writes go to that copy, which Commit
// publishes and Rollback drops. Units of work are therefore fully
// serialised, which makes every command atomic without further locking.
//
// Read-only units of work cost nothing beyond the lock. A unit of work that
// writes pays one copy of every map in the store, so the adapter suits tests
// and single-node demos rather than large data sets.
package memory

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/sample"
	"marketplace/internal/core/domain/model/servicerequest"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/core/ports"
)

var (
	ErrTransactionNotStarted = errors.New("memory: unit of work has no active transaction")
	ErrTransactionStarted    = errors.New("memory: unit of work is already active")
)

type stakeKey struct {
	kind    kernel.ProviderKind
	account kernel.AccountID
}

type policyRow struct {
	minimumStake    kernel.Balance
	unstakeCooldown time.Duration
}

type state struct {
	orders      map[kernel.UUID]order.Snapshot
	byCustomer  map[kernel.AccountID][]kernel.UUID
	bySeller    map[kernel.AccountID][]kernel.UUID
	samples     map[kernel.TrackingID]sample.Snapshot
	stakes      map[stakeKey]stake.Snapshot
	policies    map[kernel.ProviderKind]policyRow
	adminKey    *kernel.AccountID
	escrowKey   *kernel.AccountID
	requests    map[kernel.UUID]servicerequest.Snapshot
	byRequester map[kernel.AccountID][]kernel.UUID
	openCounts  map[servicerequest.CountKey]uint64
	balances    map[kernel.AccountID]kernel.Balance
}

func newState() *state {
	return &state{
		orders:      make(map[kernel.UUID]order.Snapshot),
		byCustomer:  make(map[kernel.AccountID][]kernel.UUID),
		bySeller:    make(map[kernel.AccountID][]kernel.UUID),
		samples:     make(map[kernel.TrackingID]sample.Snapshot),
		stakes:      make(map[stakeKey]stake.Snapshot),
		policies:    make(map[kernel.ProviderKind]policyRow),
		requests:    make(map[kernel.UUID]servicerequest.Snapshot),
		byRequester: make(map[kernel.AccountID][]kernel.UUID),
		openCounts:  make(map[servicerequest.CountKey]uint64),
		balances:    make(map[kernel.AccountID]kernel.Balance),
	}
}

// clone copies every map and index slice. Snapshots are values whose
// pointer and slice fields are never mutated in place, so they are shared.
func (s *state) clone() *state {
	return &state{
		orders:      maps.Clone(s.orders),
		byCustomer:  cloneIndex(s.byCustomer),
		bySeller:    cloneIndex(s.bySeller),
		samples:     maps.Clone(s.samples),
		stakes:      maps.Clone(s.stakes),
		policies:    maps.Clone(s.policies),
		adminKey:    s.adminKey,
		escrowKey:   s.escrowKey,
		requests:    maps.Clone(s.requests),
		byRequester: cloneIndex(s.byRequester),
		openCounts:  maps.Clone(s.openCounts),
		balances:    maps.Clone(s.balances),
	}
}

func cloneIndex(in map[kernel.AccountID][]kernel.UUID) map[kernel.AccountID][]kernel.UUID {
	out := make(map[kernel.AccountID][]kernel.UUID, len(in))
	for k, v := range in {
		out[k] = append([]kernel.UUID(nil), v...)
	}
	return out
}

// Store is the committed state shared by all units of work.
type Store struct {
	mu    sync.Mutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

// UnitOfWorkFactory hands out units of work over one store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork holds the store lock from Begin until Commit or Rollback.
// work stays nil until the first write.
type UnitOfWork struct {
	store  *Store
	active bool
	work   *state
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return ErrTransactionStarted
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrTransactionNotStarted
	}

	if u.work != nil {
		u.store.state = u.work
	}
	u.release()
	return nil
}

// Rollback discards the working copy. After Commit it is a no-op.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return nil
	}

	u.release()
	return nil
}

func (u *UnitOfWork) release() {
	u.work = nil
	u.active = false
	u.store.mu.Unlock()
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository                   { return &orderRepository{uow: u} }
func (u *UnitOfWork) SampleRepository() ports.SampleRepository                 { return &sampleRepository{uow: u} }
func (u *UnitOfWork) ProviderStakeRepository() ports.ProviderStakeRepository   { return &providerStakeRepository{uow: u} }
func (u *UnitOfWork) StakePolicyRepository() ports.StakePolicyRepository       { return &stakePolicyRepository{uow: u} }
func (u *UnitOfWork) AuthorityRepository() ports.AuthorityRepository           { return &authorityRepository{uow: u} }
func (u *UnitOfWork) ServiceRequestRepository() ports.ServiceRequestRepository { return &serviceRequestRepository{uow: u} }
func (u *UnitOfWork) AccountRepository() ports.AccountRepository               { return &accountRepository{uow: u} }

// current is the state reads see: the working copy once one exists,
// the committed state before that.
func (u *UnitOfWork) current() (*state, error) {
	if !u.active {
		return nil, ErrTransactionNotStarted
	}
	if u.work != nil {
		return u.work, nil
	}
	return u.store.state, nil
}

func (u *UnitOfWork) writable() (*state, error) {
	if !u.active {
		return nil, ErrTransactionNotStarted
	}
	if u.work == nil {
		u.work = u.store.state.clone()
	}
	return u.work, nil
}
