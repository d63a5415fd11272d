package jobs

import (
	"marketplace/internal/pkg/logger"

	"go.uber.org/zap"
)

// Job is a scheduled task the manager can start and stop.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager starts and stops a set of jobs together.
type JobManager struct {
	jobs   []Job
	logger *zap.Logger
}

func NewJobManager(l *zap.Logger, jobs ...Job) *JobManager {
	return &JobManager{
		jobs:   jobs,
		logger: logger.Component(l, "job_manager"),
	}
}

// StartAll starts every job. If one fails, the ones already started are stopped.
func (m *JobManager) StartAll() error {
	for i, job := range m.jobs {
		if err := job.Start(); err != nil {
			m.logger.Error("failed to start job", zap.String("job", job.Name()), zap.Error(err))
			for _, started := range m.jobs[:i] {
				started.Stop()
			}
			return err
		}
	}
	m.logger.Info("all jobs started", zap.Int("count", len(m.jobs)))
	return nil
}

func (m *JobManager) StopAll() {
	for _, job := range m.jobs {
		job.Stop()
	}
	m.logger.Info("all jobs stopped")
}
