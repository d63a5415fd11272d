package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/authority"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/sample"
	"marketplace/internal/core/domain/model/servicerequest"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const trackID kernel.TrackingID = "0123456789ABCDEFGHIJK"

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite runs every repository through real
// transactions against PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), postgres_adapter.Tables()...)
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate(
		"orders", "samples", "provider_stakes", "stake_policies", "authorities",
		"service_requests", "service_request_counts", "accounts", "services",
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

// inTx runs fn in a unit of work and commits it.
func (suite *UnitOfWorkIntegrationTestSuite) inTx(fn func(ports.UnitOfWork)) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	fn(uow)
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	entry := catalog.PriceByCurrency{
		Currency:        "DBIO",
		PriceComponents: []kernel.Price{{Component: "testing_price", Value: kernel.NewBalance(100)}},
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "customer-1", "lab-1", "box-key", entry,
		order.RequestTest, trackID, now)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitSpansRepositories() {
	ctx := context.Background()
	o := suite.newOrder()
	record, err := sample.NewRecord(trackID, o.ID(), "customer-1", "lab-1", now)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.SampleRepository().Add(ctx, record))
	suite.Require().NoError(uow.AccountRepository().Deposit(ctx, "customer-1", kernel.NewBalance(5)))
	suite.Equal(
		[]string{"order:" + o.ID().String(), "sample:" + trackID.String()},
		uow.(*postgres_adapter.GormUnitOfWork).TrackedKeys(),
	)
	suite.Require().NoError(uow.Commit(ctx))

	suite.inTx(func(uow ports.UnitOfWork) {
		_, err := uow.OrderRepository().Get(ctx, o.ID())
		suite.Require().NoError(err)
		exists, err := uow.SampleRepository().Exists(ctx, trackID)
		suite.Require().NoError(err)
		suite.True(exists)
		balance, err := uow.AccountRepository().Balance(ctx, "customer-1")
		suite.Require().NoError(err)
		suite.Equal("5", balance.String())
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.AccountRepository().Deposit(ctx, "customer-1", kernel.NewBalance(5)))
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Empty(uow.(*postgres_adapter.GormUnitOfWork).TrackedKeys())

	suite.inTx(func(uow ports.UnitOfWork) {
		_, err := uow.OrderRepository().Get(ctx, o.ID())
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
		balance, err := uow.AccountRepository().Balance(ctx, "customer-1")
		suite.Require().NoError(err)
		suite.True(balance.IsZero())
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSampleRepository_TrackingIDCollision() {
	ctx := context.Background()
	o := suite.newOrder()
	first, err := sample.NewRecord(trackID, o.ID(), "customer-1", "lab-1", now)
	suite.Require().NoError(err)
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.SampleRepository().Add(ctx, first))
	})

	second, err := sample.NewRecord(trackID, kernel.NewUUID(), "customer-2", "lab-1", now)
	suite.Require().NoError(err)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	suite.Require().ErrorIs(uow.SampleRepository().Add(ctx, second), errs.ErrCollision)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSampleRepository_UpdateStatus() {
	ctx := context.Background()
	o := suite.newOrder()
	record, err := sample.NewRecord(trackID, o.ID(), "customer-1", "lab-1", now)
	suite.Require().NoError(err)
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.SampleRepository().Add(ctx, record))
	})

	suite.Require().NoError(record.UpdateStatus("lab-1", sample.Arrived, now.Add(time.Hour)))
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.SampleRepository().Update(ctx, record))
	})

	suite.inTx(func(uow ports.UnitOfWork) {
		loaded, err := uow.SampleRepository().Get(ctx, trackID)
		suite.Require().NoError(err)
		suite.Equal(sample.Arrived, loaded.Status())
		suite.True(o.ID().IsEqual(loaded.OrderID()))
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestProviderStakeRepository_Lifecycle() {
	ctx := context.Background()
	p, err := stake.NewProviderStake(kernel.Lab, "lab-1")
	suite.Require().NoError(err)
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ProviderStakeRepository().Add(ctx, p))
		suite.Require().ErrorIs(uow.ProviderStakeRepository().Add(ctx, p), stake.ErrProviderAlreadyRegistered)
	})

	suite.Require().NoError(p.Stake(kernel.NewBalance(100), kernel.NewBalance(100)))
	suite.Require().NoError(p.Unstake(false, now, 48*time.Hour))
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ProviderStakeRepository().Update(ctx, p))
	})

	suite.inTx(func(uow ports.UnitOfWork) {
		loaded, err := uow.ProviderStakeRepository().Get(ctx, kernel.Lab, "lab-1")
		suite.Require().NoError(err)
		suite.Equal(stake.WaitingForUnstaked, loaded.Status())
		suite.Equal("100", loaded.UnstakeAmount().String())
		suite.True(now.Add(48 * time.Hour).Equal(*loaded.RetrieveUnstakeAt()))

		waiting, err := uow.ProviderStakeRepository().ListWaitingForUnstake(ctx, kernel.Lab)
		suite.Require().NoError(err)
		suite.Len(waiting, 1)

		other, err := uow.ProviderStakeRepository().ListWaitingForUnstake(ctx, kernel.GeneticAnalyst)
		suite.Require().NoError(err)
		suite.Empty(other)

		_, err = uow.ProviderStakeRepository().Get(ctx, kernel.GeneticAnalyst, "lab-1")
		suite.Require().ErrorIs(err, stake.ErrProviderDoesNotExist)
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStakePolicyRepository_Upsert() {
	ctx := context.Background()
	policy, err := stake.NewPolicy(kernel.Lab, kernel.NewBalance(100), time.Hour)
	suite.Require().NoError(err)

	suite.inTx(func(uow ports.UnitOfWork) {
		_, err := uow.StakePolicyRepository().Get(ctx, kernel.Lab)
		suite.Require().ErrorIs(err, stake.ErrPolicyDoesNotExist)

		suite.Require().NoError(uow.StakePolicyRepository().Save(ctx, policy))
		suite.Require().NoError(policy.SetMinimumStake(kernel.NewBalance(250)))
		suite.Require().NoError(uow.StakePolicyRepository().Save(ctx, policy))
	})

	suite.inTx(func(uow ports.UnitOfWork) {
		loaded, err := uow.StakePolicyRepository().Get(ctx, kernel.Lab)
		suite.Require().NoError(err)
		suite.Equal("250", loaded.MinimumStake().String())
		suite.Equal(time.Hour, loaded.UnstakeCooldown())
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAuthorityRepository_SingleRow() {
	ctx := context.Background()

	suite.inTx(func(uow ports.UnitOfWork) {
		a, err := uow.AuthorityRepository().Get(ctx)
		suite.Require().NoError(err)
		suite.Nil(a.AdminKey())
		suite.Require().NoError(a.BootstrapAdmin("admin-1"))
		suite.Require().NoError(uow.AuthorityRepository().Save(ctx, a))
	})

	suite.inTx(func(uow ports.UnitOfWork) {
		a, err := uow.AuthorityRepository().Get(ctx)
		suite.Require().NoError(err)
		suite.Require().ErrorIs(a.BootstrapAdmin("admin-2"), authority.ErrAdminAlreadyBootstrapped)
		suite.Require().NoError(a.UpdateEscrowKey("admin-1", "escrow-1"))
		suite.Require().NoError(uow.AuthorityRepository().Save(ctx, a))
	})

	suite.inTx(func(uow ports.UnitOfWork) {
		a, err := uow.AuthorityRepository().Get(ctx)
		suite.Require().NoError(err)
		suite.Equal(kernel.AccountID("admin-1"), *a.AdminKey())
		suite.Equal(kernel.AccountID("escrow-1"), *a.EscrowKey())
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestServiceRequestRepository_IndexesAndCounts() {
	ctx := context.Background()
	location, err := kernel.NewLocation("ID", "JK", "Jakarta")
	suite.Require().NoError(err)
	r, err := servicerequest.NewRequest(kernel.NewUUID(), "customer-1", location, "Whole Genome",
		kernel.NewBalance(10), now)
	suite.Require().NoError(err)

	suite.inTx(func(uow ports.UnitOfWork) {
		repo := uow.ServiceRequestRepository()
		suite.Require().NoError(repo.Add(ctx, r))
		suite.Require().NoError(repo.IncrementOpenCount(ctx, r.CountKey()))
		suite.Require().NoError(repo.IncrementOpenCount(ctx, r.CountKey()))
	})

	suite.Require().NoError(r.Unstake("customer-1", now, time.Hour))
	_, err = r.RetrieveUnstaked("customer-1", now.Add(time.Hour))
	suite.Require().NoError(err)

	suite.inTx(func(uow ports.UnitOfWork) {
		repo := uow.ServiceRequestRepository()
		ids, err := repo.ListActiveIDsByRequester(ctx, "customer-1")
		suite.Require().NoError(err)
		suite.Equal([]kernel.UUID{r.ID()}, ids)

		suite.Require().NoError(repo.Update(ctx, r))
		for range 3 {
			suite.Require().NoError(repo.DecrementOpenCount(ctx, r.CountKey()))
		}
	})

	suite.inTx(func(uow ports.UnitOfWork) {
		repo := uow.ServiceRequestRepository()
		ids, err := repo.ListActiveIDsByRequester(ctx, "customer-1")
		suite.Require().NoError(err)
		suite.Empty(ids)

		count, err := repo.OpenCount(ctx, r.CountKey())
		suite.Require().NoError(err)
		suite.Zero(count)

		loaded, err := repo.Get(ctx, r.ID())
		suite.Require().NoError(err)
		suite.Equal(servicerequest.Unstaked, loaded.Status())
		suite.Equal("Jakarta", loaded.Location().City())
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestServiceRequestRepository_LinksEachOrderOnce() {
	ctx := context.Background()
	location, err := kernel.NewLocation("ID", "JK", "Jakarta")
	suite.Require().NoError(err)
	svc, err := catalog.NewService(kernel.NewUUID(), "lab-1", kernel.Lab, []catalog.PriceByCurrency{{Currency: "DBIO"}})
	suite.Require().NoError(err)
	entry, err := svc.PriceAt(0)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), svc.ID(), "customer-1", "lab-1", "box-key", entry,
		order.StakingRequestService, trackID, now)
	suite.Require().NoError(err)

	var linked []*servicerequest.Request
	for range 2 {
		r, newErr := servicerequest.NewRequest(kernel.NewUUID(), "customer-1", location, "Whole Genome",
			kernel.NewBalance(10), now)
		suite.Require().NoError(newErr)
		suite.inTx(func(uow ports.UnitOfWork) {
			suite.Require().NoError(uow.ServiceRequestRepository().Add(ctx, r))
		})
		suite.Require().NoError(r.Claim("lab-1", svc, now))
		suite.Require().NoError(r.Process("customer-1", o, now))
		linked = append(linked, r)
	}

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ServiceRequestRepository().Update(ctx, linked[0]))
	})

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err = uow.ServiceRequestRepository().Update(ctx, linked[1])
	suite.Require().ErrorIs(err, servicerequest.ErrOrderAlreadyLinked)
	suite.Require().NoError(uow.Rollback(ctx))

	suite.inTx(func(uow ports.UnitOfWork) {
		loaded, err := uow.ServiceRequestRepository().Get(ctx, linked[1].ID())
		suite.Require().NoError(err)
		suite.Equal(servicerequest.Open, loaded.Status())
		suite.Nil(loaded.OrderID())
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAccountRepository_TransferUnderflow() {
	ctx := context.Background()
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.AccountRepository().Deposit(ctx, "customer-1", kernel.NewBalance(10)))
	})

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err := uow.AccountRepository().Transfer(ctx, "customer-1", "escrow", kernel.NewBalance(11))
	suite.Require().ErrorIs(err, kernel.ErrBalanceUnderflow)
	suite.Require().NoError(uow.Rollback(ctx))

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.AccountRepository().Transfer(ctx, "customer-1", "escrow", kernel.NewBalance(4)))
	})
	suite.inTx(func(uow ports.UnitOfWork) {
		from, err := uow.AccountRepository().Balance(ctx, "customer-1")
		suite.Require().NoError(err)
		to, err := uow.AccountRepository().Balance(ctx, "escrow")
		suite.Require().NoError(err)
		suite.Equal("6", from.String())
		suite.Equal("4", to.String())
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAccountRepository_ConcurrentTransfersSerialise() {
	ctx := context.Background()
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.AccountRepository().Deposit(ctx, "customer-1", kernel.NewBalance(10)))
	})

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				results <- err
				return
			}
			if err := uow.AccountRepository().Transfer(ctx, "customer-1", "escrow", kernel.NewBalance(1)); err != nil {
				_ = uow.Rollback(ctx)
				results <- err
				return
			}
			results <- uow.Commit(ctx)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.Require().ErrorIs(err, kernel.ErrBalanceUnderflow)
	}
	suite.Equal(10, succeeded)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_ConcurrentTransitionsSerialise() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	})

	var wg sync.WaitGroup
	type result struct {
		status order.Status
		err    error
	}
	results := make(chan result, 20)
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				results <- result{err: err}
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			loaded, err := uow.OrderRepository().Get(ctx, o.ID())
			if err != nil {
				results <- result{err: err}
				return
			}
			if i%2 == 0 {
				err = loaded.Cancel("customer-1", now)
			} else {
				err = loaded.MarkPaid(now)
			}
			if err == nil {
				err = uow.OrderRepository().Update(ctx, loaded)
			}
			if err == nil {
				err = uow.Commit(ctx)
			}
			results <- result{status: loaded.Status(), err: err}
		}()
	}
	wg.Wait()
	close(results)

	var winners []order.Status
	for r := range results {
		if r.err == nil {
			winners = append(winners, r.status)
			continue
		}
		suite.Require().ErrorIs(r.err, errs.ErrInvalidState)
	}
	suite.Require().Len(winners, 1)

	suite.inTx(func(uow ports.UnitOfWork) {
		loaded, err := uow.OrderRepository().Get(ctx, o.ID())
		suite.Require().NoError(err)
		suite.Equal(winners[0], loaded.Status())
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestProviderStakeRepository_LockAccountBlocksStakeReads() {
	ctx := context.Background()
	p, err := stake.NewProviderStake(kernel.Lab, "lab-1")
	suite.Require().NoError(err)
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ProviderStakeRepository().Add(ctx, p))
		suite.Require().NoError(uow.ProviderStakeRepository().LockAccount(ctx, "nobody"))
	})

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	suite.Require().NoError(holder.ProviderStakeRepository().LockAccount(ctx, "lab-1"))

	acquired := make(chan error, 1)
	go func() {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			acquired <- err
			return
		}
		defer func() { _ = uow.Rollback(ctx) }()
		_, err := uow.ProviderStakeRepository().Get(ctx, kernel.Lab, "lab-1")
		acquired <- err
	}()

	select {
	case <-acquired:
		suite.Fail("stake row read while the account lock was held")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(holder.Commit(ctx))
	select {
	case err := <-acquired:
		suite.Require().NoError(err)
	case <-time.After(5 * time.Second):
		suite.Fail("stake row still locked after commit")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestServiceCatalog_RoundTrip() {
	ctx := context.Background()
	services := catalogrepo.NewGormServiceCatalog(suite.database.DB)
	service, err := catalog.NewService(kernel.NewUUID(), "lab-1", kernel.Lab, []catalog.PriceByCurrency{{
		Currency:         "DBIO",
		PriceComponents:  []kernel.Price{{Component: "testing_price", Value: kernel.NewBalance(70)}},
		AdditionalPrices: []kernel.Price{{Component: "qc_price", Value: kernel.NewBalance(30)}},
	}})
	suite.Require().NoError(err)

	suite.Require().NoError(services.Add(ctx, service))
	loaded, err := services.Get(ctx, service.ID())

	suite.Require().NoError(err)
	suite.True(loaded.IsOwnedBy("lab-1"))
	entry, err := loaded.PriceAt(0)
	suite.Require().NoError(err)
	suite.Equal("100", entry.TotalPrice().String())

	_, err = services.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, catalog.ErrServiceDoesNotExist)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
