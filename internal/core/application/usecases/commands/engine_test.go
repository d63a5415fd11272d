package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/clock"
	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/adapters/out/randomness"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/authority"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/sample"
	"marketplace/internal/core/domain/model/servicerequest"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/require"
)

const (
	root     kernel.AccountID = "root"
	admin    kernel.AccountID = "admin"
	escrow   kernel.AccountID = "escrow"
	customer kernel.AccountID = "customer-1"
	lab      kernel.AccountID = "lab-1"

	orderExpiry     = 7 * 24 * time.Hour
	requestCooldown = 24 * time.Hour
	stakeCooldown   = 48 * time.Hour
)

var genesisTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type orderUoWs struct{ f ports.UnitOfWorkFactory }

func (a orderUoWs) Create() commands.OrderUoW { return a.f.Create() }

type stakeUoWs struct{ f ports.UnitOfWorkFactory }

func (a stakeUoWs) Create() commands.StakeUoW { return a.f.Create() }

type authorityUoWs struct{ f ports.UnitOfWorkFactory }

func (a authorityUoWs) Create() commands.AuthorityUoW { return a.f.Create() }

type requestUoWs struct{ f ports.UnitOfWorkFactory }

func (a requestUoWs) Create() commands.RequestUoW { return a.f.Create() }

type allUoWs struct{ f ports.UnitOfWorkFactory }

func (a allUoWs) Create() commands.UoW { return a.f.Create() }

// engine wires every handler to one in-memory store.
type engine struct {
	t       *testing.T
	uows    *memory.UnitOfWorkFactory
	catalog *memory.Catalog
	clock   *clock.Manual
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	e := &engine{
		t:       t,
		uows:    memory.NewUnitOfWorkFactory(memory.NewStore()),
		catalog: memory.NewCatalog(),
		clock:   clock.NewManual(genesisTime),
	}

	adminKey, escrowKey := admin, escrow
	cmd, err := commands.NewInitializeGenesisCommand(&adminKey, &escrowKey,
		[]commands.PolicyDefaults{
			{Kind: kernel.Lab, MinimumStake: kernel.NewBalance(100), UnstakeCooldown: stakeCooldown},
			{Kind: kernel.GeneticAnalyst, MinimumStake: kernel.NewBalance(50), UnstakeCooldown: stakeCooldown},
		},
		[]commands.GenesisBalance{
			{Account: customer, Amount: kernel.NewBalance(1_000)},
			{Account: lab, Amount: kernel.NewBalance(1_000)},
		},
	)
	require.NoError(t, err)
	h := commands.NewInitializeGenesisCommandHandler(allUoWs{e.uows})
	require.NoError(t, h.Handle(t.Context(), cmd))
	return e
}

func (e *engine) ctx() context.Context { return e.t.Context() }

func (e *engine) service(owner kernel.AccountID) *catalog.Service {
	e.t.Helper()
	svc, err := catalog.NewService(kernel.NewUUID(), owner, kernel.Lab, []catalog.PriceByCurrency{{
		Currency: "DBIO",
		PriceComponents: []kernel.Price{
			{Component: "testing", Value: kernel.NewBalance(70)},
			{Component: "qc", Value: kernel.NewBalance(20)},
		},
		AdditionalPrices: []kernel.Price{{Component: "shipping", Value: kernel.NewBalance(10)}},
	}})
	require.NoError(e.t, err)
	require.NoError(e.t, e.catalog.Add(e.ctx(), svc))
	return svc
}

func (e *engine) issuer() commands.TrackingIDIssuer {
	e.t.Helper()
	seeds, err := randomness.NewSeedSource()
	require.NoError(e.t, err)
	issuer, err := services.NewTrackingIDIssuer(seeds, services.DefaultTrackingIDAttempts)
	require.NoError(e.t, err)
	return issuer
}

func (e *engine) createOrder(caller kernel.AccountID, svc *catalog.Service, flow order.Flow) (kernel.UUID, error) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, caller, svc.ID(), 0, "box-key", flow)
	require.NoError(e.t, err)
	h := commands.NewCreateOrderCommandHandler(orderUoWs{e.uows}, e.catalog, e.issuer(), e.clock)
	return id, h.Handle(e.ctx(), cmd)
}

func (e *engine) cancelOrder(id kernel.UUID, caller kernel.AccountID) error {
	cmd, err := commands.NewCancelOrderCommand(id, caller)
	require.NoError(e.t, err)
	h := commands.NewCancelOrderCommandHandler(orderUoWs{e.uows}, e.clock)
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) setPaid(id kernel.UUID, caller kernel.AccountID) error {
	cmd, err := commands.NewSetOrderPaidCommand(id, caller)
	require.NoError(e.t, err)
	h := commands.NewSetOrderPaidCommandHandler(orderUoWs{e.uows}, e.clock)
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) fulfill(id kernel.UUID, caller kernel.AccountID) error {
	cmd, err := commands.NewFulfillOrderCommand(id, caller)
	require.NoError(e.t, err)
	h := commands.NewFulfillOrderCommandHandler(orderUoWs{e.uows}, e.clock)
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) refund(id kernel.UUID, caller kernel.AccountID) error {
	cmd, err := commands.NewSetOrderRefundedCommand(id, caller)
	require.NoError(e.t, err)
	h := commands.NewSetOrderRefundedCommandHandler(orderUoWs{e.uows}, e.clock, orderExpiry)
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) order(id kernel.UUID) *order.Order {
	e.t.Helper()
	uow := e.begin()
	defer func() { _ = uow.Rollback(e.ctx()) }()
	o, err := uow.OrderRepository().Get(e.ctx(), id)
	require.NoError(e.t, err)
	return o
}

func (e *engine) balance(account kernel.AccountID) string {
	e.t.Helper()
	uow := e.begin()
	defer func() { _ = uow.Rollback(e.ctx()) }()
	b, err := uow.AccountRepository().Balance(e.ctx(), account)
	require.NoError(e.t, err)
	return b.String()
}

func (e *engine) begin() ports.UnitOfWork {
	e.t.Helper()
	uow := e.uows.Create()
	require.NoError(e.t, uow.Begin(e.ctx()))
	return uow
}

func (e *engine) updateSample(id kernel.TrackingID, caller kernel.AccountID, status sample.Status) error {
	cmd, err := commands.NewUpdateSampleStatusCommand(id, caller, status)
	require.NoError(e.t, err)
	h := commands.NewUpdateSampleStatusCommandHandler(orderUoWs{e.uows}, e.clock)
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) sample(id kernel.TrackingID) *sample.Record {
	e.t.Helper()
	uow := e.begin()
	defer func() { _ = uow.Rollback(e.ctx()) }()
	r, err := uow.SampleRepository().Get(e.ctx(), id)
	require.NoError(e.t, err)
	return r
}

// paidOrder places and pays an order for a fresh service of lab.
func (e *engine) paidOrder() *order.Order {
	e.t.Helper()
	id, err := e.createOrder(customer, e.service(lab), order.RequestTest)
	require.NoError(e.t, err)
	require.NoError(e.t, e.setPaid(id, escrow))
	return e.order(id)
}

func (e *engine) register(kind kernel.ProviderKind, caller kernel.AccountID) error {
	cmd, err := commands.NewRegisterProviderCommand(kind, caller)
	require.NoError(e.t, err)
	h := commands.NewRegisterProviderCommandHandler(stakeUoWs{e.uows})
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) stake(kind kernel.ProviderKind, caller kernel.AccountID) error {
	cmd, err := commands.NewStakeCommand(kind, caller)
	require.NoError(e.t, err)
	h := commands.NewStakeCommandHandler(stakeUoWs{e.uows})
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) unstake(kind kernel.ProviderKind, caller kernel.AccountID) error {
	cmd, err := commands.NewUnstakeCommand(kind, caller)
	require.NoError(e.t, err)
	h := commands.NewUnstakeCommandHandler(stakeUoWs{e.uows}, e.clock)
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) retrieveUnstake(caller kernel.AccountID, kind kernel.ProviderKind, provider kernel.AccountID) error {
	cmd, err := commands.NewRetrieveUnstakeAmountCommand(caller, kind, provider)
	require.NoError(e.t, err)
	h := commands.NewRetrieveUnstakeAmountCommandHandler(stakeUoWs{e.uows}, e.clock)
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) verify(caller kernel.AccountID, kind kernel.ProviderKind, provider kernel.AccountID, v stake.Verification) error {
	cmd, err := commands.NewUpdateVerificationStatusCommand(caller, kind, provider, v)
	require.NoError(e.t, err)
	h := commands.NewUpdateVerificationStatusCommandHandler(stakeUoWs{e.uows})
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) setAvailability(kind kernel.ProviderKind, caller kernel.AccountID, a stake.Availability) error {
	cmd, err := commands.NewUpdateAvailabilityCommand(kind, caller, a)
	require.NoError(e.t, err)
	h := commands.NewUpdateAvailabilityCommandHandler(stakeUoWs{e.uows})
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) provider(kind kernel.ProviderKind, account kernel.AccountID) *stake.ProviderStake {
	e.t.Helper()
	uow := e.begin()
	defer func() { _ = uow.Rollback(e.ctx()) }()
	p, err := uow.ProviderStakeRepository().Get(e.ctx(), kind, account)
	require.NoError(e.t, err)
	return p
}

func (e *engine) policy(kind kernel.ProviderKind) *stake.Policy {
	e.t.Helper()
	uow := e.begin()
	defer func() { _ = uow.Rollback(e.ctx()) }()
	p, err := uow.StakePolicyRepository().Get(e.ctx(), kind)
	require.NoError(e.t, err)
	return p
}

func (e *engine) updateUnstakeTime(caller kernel.AccountID, kind kernel.ProviderKind, cooldown time.Duration) error {
	cmd, err := commands.NewUpdateUnstakeTimeCommand(caller, kind, cooldown)
	require.NoError(e.t, err)
	h := commands.NewUpdateUnstakeTimeCommandHandler(authorityUoWs{e.uows})
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) updateMinimumStake(caller kernel.AccountID, kind kernel.ProviderKind, amount uint64) error {
	cmd, err := commands.NewUpdateMinimumStakeAmountCommand(caller, kind, kernel.NewBalance(amount))
	require.NoError(e.t, err)
	h := commands.NewUpdateMinimumStakeAmountCommandHandler(authorityUoWs{e.uows})
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) authority() *authority.Authority {
	e.t.Helper()
	uow := e.begin()
	defer func() { _ = uow.Rollback(e.ctx()) }()
	a, err := uow.AuthorityRepository().Get(e.ctx())
	require.NoError(e.t, err)
	return a
}

func (e *engine) createRequest(caller kernel.AccountID, amount uint64) (kernel.UUID, error) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(id, caller, "ID", "JK", "Jakarta", "Whole Genome", kernel.NewBalance(amount))
	require.NoError(e.t, err)
	h := commands.NewCreateRequestCommandHandler(requestUoWs{e.uows}, e.clock)
	return id, h.Handle(e.ctx(), cmd)
}

func (e *engine) claimRequest(id kernel.UUID, caller kernel.AccountID, serviceID kernel.UUID) error {
	cmd, err := commands.NewClaimRequestCommand(id, caller, serviceID)
	require.NoError(e.t, err)
	h := commands.NewClaimRequestCommandHandler(requestUoWs{e.uows}, e.catalog, e.clock)
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) processRequest(id kernel.UUID, caller kernel.AccountID, orderID kernel.UUID) error {
	cmd, err := commands.NewProcessRequestCommand(id, caller, orderID)
	require.NoError(e.t, err)
	h := commands.NewProcessRequestCommandHandler(requestUoWs{e.uows}, e.clock)
	return h.Handle(e.ctx(), cmd)
}

func (e *engine) requestCommand(id kernel.UUID, caller kernel.AccountID) commands.RequestCommand {
	e.t.Helper()
	cmd, err := commands.NewRequestCommand(id, caller)
	require.NoError(e.t, err)
	return cmd
}

func (e *engine) finalizeRequest(id kernel.UUID, caller kernel.AccountID) error {
	h := commands.NewFinalizeRequestCommandHandler(requestUoWs{e.uows}, e.clock)
	return h.Handle(e.ctx(), e.requestCommand(id, caller))
}

func (e *engine) unstakeRequest(id kernel.UUID, caller kernel.AccountID) error {
	h := commands.NewUnstakeRequestCommandHandler(requestUoWs{e.uows}, e.clock, requestCooldown)
	return h.Handle(e.ctx(), e.requestCommand(id, caller))
}

func (e *engine) retrieveRequest(id kernel.UUID, caller kernel.AccountID) error {
	h := commands.NewRetrieveUnstakedRequestAmountCommandHandler(requestUoWs{e.uows}, e.clock)
	return h.Handle(e.ctx(), e.requestCommand(id, caller))
}

func (e *engine) request(id kernel.UUID) *servicerequest.Request {
	e.t.Helper()
	uow := e.begin()
	defer func() { _ = uow.Rollback(e.ctx()) }()
	r, err := uow.ServiceRequestRepository().Get(e.ctx(), id)
	require.NoError(e.t, err)
	return r
}

func (e *engine) openCount() uint64 {
	e.t.Helper()
	uow := e.begin()
	defer func() { _ = uow.Rollback(e.ctx()) }()
	n, err := uow.ServiceRequestRepository().OpenCount(e.ctx(), servicerequest.CountKey{
		Country: "ID", Region: "JK", City: "Jakarta", Category: "Whole Genome",
	})
	require.NoError(e.t, err)
	return n
}

func (e *engine) activeRequests(requester kernel.AccountID) []kernel.UUID {
	e.t.Helper()
	uow := e.begin()
	defer func() { _ = uow.Rollback(e.ctx()) }()
	ids, err := uow.ServiceRequestRepository().ListActiveIDsByRequester(e.ctx(), requester)
	require.NoError(e.t, err)
	return ids
}
