package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	courierScoreJob  *CourierScoreJob
	balanceResyncJob *BalanceResyncJob
}

// NewJobManager groups the jobs built by the composition root.
func NewJobManager(courierScoreJob *CourierScoreJob, balanceResyncJob *BalanceResyncJob) *JobManager {
	return &JobManager{
		courierScoreJob:  courierScoreJob,
		balanceResyncJob: balanceResyncJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.courierScoreJob.Start(); err != nil {
		return fmt.Errorf("failed to start courier score job: %w", err)
	}

	if err := jm.balanceResyncJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.courierScoreJob.Stop()
		return fmt.Errorf("failed to start balance resync job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.balanceResyncJob.Stop()
	jm.courierScoreJob.Stop()
}
