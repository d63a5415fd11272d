package jobs_test

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/stake"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const admin kernel.AccountID = "admin"

type MockLister struct {
	mock.Mock
}

func (m *MockLister) Handle(ctx context.Context, query queries.ListMaturedUnstakesQuery) ([]kernel.AccountID, error) {
	args := m.Called(ctx, query.Kind())
	accounts, _ := args.Get(0).([]kernel.AccountID)
	return accounts, args.Error(1)
}

type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Handle(ctx context.Context, cmd commands.RetrieveUnstakeAmountCommand) error {
	return m.Called(ctx, cmd.Kind(), cmd.Provider()).Error(0)
}

func newJob(t *testing.T, lister *MockLister, retriever *MockRetriever) *jobs.StakeRetrievalJob {
	t.Helper()
	job, err := jobs.NewStakeRetrievalJob(lister, retriever, admin, "", zap.NewNop())
	require.NoError(t, err)
	return job
}

func TestStakeRetrievalJob_Run(t *testing.T) {
	t.Run("should retrieve every matured stake", func(t *testing.T) {
		lister := &MockLister{}
		retriever := &MockRetriever{}
		lister.On("Handle", mock.Anything, kernel.Lab).Return([]kernel.AccountID{"lab-1", "lab-2"}, nil)
		lister.On("Handle", mock.Anything, kernel.GeneticAnalyst).Return([]kernel.AccountID{"ga-1"}, nil)
		lister.On("Handle", mock.Anything, kernel.HealthProfessional).Return(nil, nil)
		retriever.On("Handle", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		before := testutil.ToFloat64(metrics.StakesRetrievedTotal.WithLabelValues(kernel.Lab.String()))

		released := newJob(t, lister, retriever).Run(t.Context())

		assert.Equal(t, 3, released)
		retriever.AssertCalled(t, "Handle", mock.Anything, kernel.Lab, kernel.AccountID("lab-2"))
		retriever.AssertCalled(t, "Handle", mock.Anything, kernel.GeneticAnalyst, kernel.AccountID("ga-1"))
		retriever.AssertNumberOfCalls(t, "Handle", 3)
		assert.InDelta(t, before+2, testutil.ToFloat64(metrics.StakesRetrievedTotal.WithLabelValues(kernel.Lab.String())), 0)
	})

	t.Run("should keep going after a failed retrieval", func(t *testing.T) {
		lister := &MockLister{}
		retriever := &MockRetriever{}
		lister.On("Handle", mock.Anything, kernel.Lab).Return([]kernel.AccountID{"lab-1", "lab-2"}, nil)
		lister.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("storage down"))
		retriever.On("Handle", mock.Anything, kernel.Lab, kernel.AccountID("lab-1")).Return(stake.ErrInsufficientFunds)
		retriever.On("Handle", mock.Anything, kernel.Lab, kernel.AccountID("lab-2")).Return(nil)
		before := testutil.ToFloat64(metrics.JobRunsTotal.WithLabelValues("stake_retrieval", "error"))

		released := newJob(t, lister, retriever).Run(t.Context())

		assert.Equal(t, 1, released)
		retriever.AssertNumberOfCalls(t, "Handle", 2)
		assert.InDelta(t, before+1, testutil.ToFloat64(metrics.JobRunsTotal.WithLabelValues("stake_retrieval", "error")), 0)
	})
}

func TestNewStakeRetrievalJob(t *testing.T) {
	_, err := jobs.NewStakeRetrievalJob(&MockLister{}, &MockRetriever{}, "", "", zap.NewNop())
	require.ErrorIs(t, err, jobs.ErrAdminKeyIsRequired)
}

type fakeJob struct {
	name     string
	startErr error
	started  bool
	stopped  bool
}

func (j *fakeJob) Name() string { return j.name }
func (j *fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	j.started = true
	return nil
}
func (j *fakeJob) Stop() { j.stopped = true }

func TestJobManager_StartAll(t *testing.T) {
	t.Run("should stop started jobs when one fails", func(t *testing.T) {
		first := &fakeJob{name: "first"}
		broken := &fakeJob{name: "broken", startErr: errors.New("bad schedule")}
		last := &fakeJob{name: "last"}

		err := jobs.NewJobManager(zap.NewNop(), first, broken, last).StartAll()

		require.Error(t, err)
		assert.True(t, first.stopped)
		assert.False(t, last.started)
	})

	t.Run("should start and stop the real job", func(t *testing.T) {
		job := newJob(t, &MockLister{}, &MockRetriever{})
		manager := jobs.NewJobManager(zap.NewNop(), job)

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})
}
