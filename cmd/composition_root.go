package cmd

import (
	httpapi "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/randomness"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"go.uber.org/zap"
)

type CompositionRoot struct {
	cfg        Config
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.ServiceCatalog
	clock      ports.Clock
	issuer     commands.TrackingIDIssuer
	logger     *zap.Logger
}

// NewCompositionRoot wires use cases over one storage backend.
func NewCompositionRoot(
	cfg Config,
	uowFactory ports.UnitOfWorkFactory,
	catalog ports.ServiceCatalog,
	clock ports.Clock,
	logger *zap.Logger,
) (*CompositionRoot, error) {
	var (
		seeds *randomness.SeedSource
		err   error
	)
	if len(cfg.TrackingIDKey) > 0 {
		seeds, err = randomness.NewSeedSourceWithKey(cfg.TrackingIDKey)
	} else {
		seeds, err = randomness.NewSeedSource()
	}
	if err != nil {
		return nil, err
	}

	issuer, err := services.NewTrackingIDIssuer(seeds, services.DefaultTrackingIDAttempts)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:        cfg,
		uowFactory: uowFactory,
		catalog:    catalog,
		clock:      clock,
		issuer:     issuer,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) stakeUoWs() commands.StakeUoWFactory {
	return FuncStakeUoWFactory(func() commands.StakeUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) authorityUoWs() commands.AuthorityUoWFactory {
	return FuncAuthorityUoWFactory(func() commands.AuthorityUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) requestUoWs() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateInitializeGenesisCommandHandler() commands.InitializeGenesisCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewInitializeGenesisCommandHandler(f)
}

// GenesisCommand seeds the configured keys, policies and balances.
func (c *CompositionRoot) GenesisCommand() (commands.InitializeGenesisCommand, error) {
	return commands.NewInitializeGenesisCommand(
		c.cfg.GenesisAdminKey,
		c.cfg.GenesisEscrowKey,
		c.cfg.GenesisPolicies,
		c.cfg.GenesisBalances,
	)
}

func (c *CompositionRoot) CreateRetrieveUnstakeAmountCommandHandler() commands.RetrieveUnstakeAmountCommandHandler {
	return commands.NewRetrieveUnstakeAmountCommandHandler(c.stakeUoWs(), c.clock)
}

func (c *CompositionRoot) CreateListMaturedUnstakesQueryHandler() queries.ListMaturedUnstakesQueryHandler {
	return queries.NewListMaturedUnstakesQueryHandler(c.uowFactory, c.clock)
}

// CreateStakeRetrievalJob returns nil when no admin key is configured.
func (c *CompositionRoot) CreateStakeRetrievalJob() (*jobs.StakeRetrievalJob, error) {
	if c.cfg.GenesisAdminKey == nil {
		return nil, nil
	}
	retriever := c.CreateRetrieveUnstakeAmountCommandHandler()
	return jobs.NewStakeRetrievalJob(
		c.CreateListMaturedUnstakesQueryHandler(),
		&retriever,
		*c.cfg.GenesisAdminKey,
		c.cfg.StakeRetrievalSchedule,
		c.logger,
	)
}

// CreateHTTPHandlers wires every use case served by the HTTP adapter.
func (c *CompositionRoot) CreateHTTPHandlers() httpapi.Handlers {
	return httpapi.Handlers{
		CreateOrder:      commands.NewCreateOrderCommandHandler(c.orderUoWs(), c.catalog, c.issuer, c.clock),
		CancelOrder:      commands.NewCancelOrderCommandHandler(c.orderUoWs(), c.clock),
		SetOrderPaid:     commands.NewSetOrderPaidCommandHandler(c.orderUoWs(), c.clock),
		FulfillOrder:     commands.NewFulfillOrderCommandHandler(c.orderUoWs(), c.clock),
		SetOrderRefunded: commands.NewSetOrderRefundedCommandHandler(c.orderUoWs(), c.clock, c.cfg.OrderExpiry),
		UpdateSample:     commands.NewUpdateSampleStatusCommandHandler(c.orderUoWs(), c.clock),

		RegisterProvider:   commands.NewRegisterProviderCommandHandler(c.stakeUoWs()),
		Stake:              commands.NewStakeCommandHandler(c.stakeUoWs()),
		Unstake:            commands.NewUnstakeCommandHandler(c.stakeUoWs(), c.clock),
		RetrieveUnstake:    c.CreateRetrieveUnstakeAmountCommandHandler(),
		UpdateVerification: commands.NewUpdateVerificationStatusCommandHandler(c.stakeUoWs()),
		UpdateAvailability: commands.NewUpdateAvailabilityCommandHandler(c.stakeUoWs()),

		UpdateMinimumStake: commands.NewUpdateMinimumStakeAmountCommandHandler(c.authorityUoWs()),
		UpdateUnstakeTime:  commands.NewUpdateUnstakeTimeCommandHandler(c.authorityUoWs()),
		SudoUpdateAdminKey: commands.NewSudoUpdateAdminKeyCommandHandler(c.authorityUoWs(), c.cfg.SudoKey),
		UpdateAdminKey:     commands.NewUpdateAdminKeyCommandHandler(c.authorityUoWs()),
		UpdateEscrowKey:    commands.NewUpdateEscrowKeyCommandHandler(c.authorityUoWs()),

		CreateRequest:   commands.NewCreateRequestCommandHandler(c.requestUoWs(), c.clock),
		ClaimRequest:    commands.NewClaimRequestCommandHandler(c.requestUoWs(), c.catalog, c.clock),
		ProcessRequest:  commands.NewProcessRequestCommandHandler(c.requestUoWs(), c.clock),
		FinalizeRequest: commands.NewFinalizeRequestCommandHandler(c.requestUoWs(), c.clock),
		UnstakeRequest:  commands.NewUnstakeRequestCommandHandler(c.requestUoWs(), c.clock, c.cfg.RequestUnstakeCooldown),
		RetrieveRequest: commands.NewRetrieveUnstakedRequestAmountCommandHandler(c.requestUoWs(), c.clock),

		GetOrder:         queries.NewGetOrderQueryHandler(c.uowFactory),
		ListOrders:       queries.NewListOrdersQueryHandler(c.uowFactory),
		GetProviderStake: queries.NewGetProviderStakeQueryHandler(c.uowFactory),
		GetRequest:       queries.NewGetServiceRequestQueryHandler(c.uowFactory),
		ListRequests:     queries.NewListServiceRequestsQueryHandler(c.uowFactory),
		OpenRequestCount: queries.NewGetOpenRequestCountQueryHandler(c.uowFactory),
		GetBalance:       queries.NewGetBalanceQueryHandler(c.uowFactory),
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStakeUoWFactory func() commands.StakeUoW

func (f FuncStakeUoWFactory) Create() commands.StakeUoW {
	return f()
}

type FuncAuthorityUoWFactory func() commands.AuthorityUoW

func (f FuncAuthorityUoWFactory) Create() commands.AuthorityUoW {
	return f()
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
