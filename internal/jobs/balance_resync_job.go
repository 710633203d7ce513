package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultBalanceResyncSchedule runs the reconciliation nightly at 03:00.
const DefaultBalanceResyncSchedule = "0 0 3 * * *"

type balanceResyncer interface {
	HandleAll(ctx context.Context) ([]commands.ResyncBalanceResult, error)
}

// BalanceResyncJob rebuilds every cached account from the entry log and logs
// the accounts that had drifted.
type BalanceResyncJob struct {
	handler  balanceResyncer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewBalanceResyncJob(handler balanceResyncer, schedule string, logger *slog.Logger) *BalanceResyncJob {
	if schedule == "" {
		schedule = DefaultBalanceResyncSchedule
	}
	return &BalanceResyncJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "balance_resync_job"),
	}
}

// Start schedules the job.
func (j *BalanceResyncJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Balance resync job started", "schedule", j.schedule)
	return nil
}

// Run reconciles every actor once and reports how many accounts were repaired.
func (j *BalanceResyncJob) Run(ctx context.Context) int {
	results, err := j.handler.HandleAll(ctx)

	repaired := 0
	for _, r := range results {
		if r.Repaired {
			repaired++
		}
	}

	if err != nil {
		j.logger.ErrorContext(ctx, "Balance resync job finished with errors", "error", err,
			"actors", len(results), "repaired", repaired)
		return repaired
	}
	j.logger.InfoContext(ctx, "Balance resync job finished", "actors", len(results), "repaired", repaired)
	return repaired
}

// Stop waits for a running resync to finish.
func (j *BalanceResyncJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Balance resync job stopped")
}
