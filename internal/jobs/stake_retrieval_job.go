package jobs

import (
	"context"
	"errors"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/logger"
	"marketplace/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const stakeRetrievalJobName = "stake_retrieval"

// DefaultStakeRetrievalSchedule runs the retrieval at the top of every minute.
const DefaultStakeRetrievalSchedule = "0 * * * * *"

var ErrAdminKeyIsRequired = errors.New("stake retrieval job needs an admin key")

type (
	MaturedUnstakesLister interface {
		Handle(ctx context.Context, query queries.ListMaturedUnstakesQuery) ([]kernel.AccountID, error)
	}

	UnstakeRetriever interface {
		Handle(ctx context.Context, cmd commands.RetrieveUnstakeAmountCommand) error
	}
)

// StakeRetrievalJob releases matured unstakes for every provider kind.
type StakeRetrievalJob struct {
	lister    MaturedUnstakesLister
	retriever UnstakeRetriever
	admin     kernel.AccountID
	schedule  string
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewStakeRetrievalJob(
	lister MaturedUnstakesLister,
	retriever UnstakeRetriever,
	admin kernel.AccountID,
	schedule string,
	l *zap.Logger,
) (*StakeRetrievalJob, error) {
	if err := admin.Validate(); err != nil {
		return nil, errors.Join(ErrAdminKeyIsRequired, err)
	}
	if schedule == "" {
		schedule = DefaultStakeRetrievalSchedule
	}
	return &StakeRetrievalJob{
		lister:    lister,
		retriever: retriever,
		admin:     admin,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.Component(l, stakeRetrievalJobName+"_job"),
	}, nil
}

func (j *StakeRetrievalJob) Name() string { return stakeRetrievalJobName }

// Start registers the job on its schedule.
func (j *StakeRetrievalJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running tick to finish.
func (j *StakeRetrievalJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("job stopped")
}

// Run performs one retrieval pass and returns how many stakes were released.
func (j *StakeRetrievalJob) Run(ctx context.Context) int {
	released := 0
	failed := false

	for _, kind := range kernel.ProviderKinds() {
		n, err := j.retrieveKind(ctx, kind)
		released += n
		if err != nil {
			failed = true
		}
	}

	outcome := "ok"
	if failed {
		outcome = "error"
	}
	metrics.JobRunsTotal.WithLabelValues(stakeRetrievalJobName, outcome).Inc()
	if released > 0 {
		j.logger.Info("released matured stakes", zap.Int("count", released))
	}
	return released
}

func (j *StakeRetrievalJob) retrieveKind(ctx context.Context, kind kernel.ProviderKind) (int, error) {
	query, err := queries.NewListMaturedUnstakesQuery(kind)
	if err != nil {
		return 0, err
	}
	accounts, err := j.lister.Handle(ctx, query)
	if err != nil {
		j.logger.Error("list matured unstakes", zap.Stringer("kind", kind), zap.Error(err))
		return 0, err
	}

	var errList []error
	released := 0
	for _, account := range accounts {
		if err := j.retrieve(ctx, kind, account); err != nil {
			j.logger.Warn("retrieve unstake amount",
				zap.Stringer("kind", kind),
				zap.String("account", account.String()),
				zap.Error(err))
			errList = append(errList, err)
			continue
		}
		released++
		metrics.StakesRetrievedTotal.WithLabelValues(kind.String()).Inc()
	}
	return released, errors.Join(errList...)
}

func (j *StakeRetrievalJob) retrieve(ctx context.Context, kind kernel.ProviderKind, account kernel.AccountID) error {
	cmd, err := commands.NewRetrieveUnstakeAmountCommand(j.admin, kind, account)
	if err != nil {
		return err
	}
	err = j.retriever.Handle(ctx, cmd)
	metrics.ObserveCommand("retrieve_unstake_amount", err)
	return err
}
