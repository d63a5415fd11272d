// Package postgres provides the GORM implementation of the unit of work.
//
// A unit of work wraps one database transaction. Every repository handed out
// while the transaction is open runs inside it, so a command either commits
// all of its order, stake, request and balance changes or none of them.
// Repositories that read an aggregate for modification take a row lock, which
// serialises concurrent commands touching the same order, provider, request
// or account. Placing an order also locks the seller's stake rows so it
// cannot interleave with the seller's unstake.
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/accountrepo"
	"marketplace/internal/adapters/out/postgres/authorityrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/requestrepo"
	"marketplace/internal/adapters/out/postgres/samplerepo"
	"marketplace/internal/adapters/out/postgres/stakerepo"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	Key       string
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one transaction and records the aggregates
// written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin is a no-op when a transaction is already open.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. The tracked aggregates are dropped with it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SampleRepository() ports.SampleRepository {
	return samplerepo.NewGormSampleRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProviderStakeRepository() ports.ProviderStakeRepository {
	return stakerepo.NewGormProviderStakeRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) StakePolicyRepository() ports.StakePolicyRepository {
	return stakerepo.NewGormStakePolicyRepository(uow.conn())
}

func (uow *GormUnitOfWork) AuthorityRepository() ports.AuthorityRepository {
	return authorityrepo.NewGormAuthorityRepository(uow.conn())
}

func (uow *GormUnitOfWork) ServiceRequestRepository() ports.ServiceRequestRepository {
	return requestrepo.NewGormServiceRequestRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AccountRepository() ports.AccountRepository {
	return accountrepo.NewGormAccountRepository(uow.conn())
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(key string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		Key:       key,
		Aggregate: aggregate,
	})
}

// TrackedKeys lists the keys of aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedKeys() []string {
	keys := make([]string, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		keys = append(keys, t.Key)
	}
	return keys
}

// conn returns the open transaction, or the pool outside of one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
