package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultCourierScoreSchedule recomputes scores every five minutes.
const DefaultCourierScoreSchedule = "0 */5 * * * *"

type courierScoreRefresher interface {
	Handle(ctx context.Context, cmd commands.RefreshCourierScoresCommand) (commands.RefreshCourierScoresResult, error)
}

// CourierScoreJob refreshes the stored base score of every courier so the
// ranking reads fresh rating, reliability and load components.
type CourierScoreJob struct {
	handler  courierScoreRefresher
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewCourierScoreJob(handler courierScoreRefresher, schedule string, logger *slog.Logger) *CourierScoreJob {
	if schedule == "" {
		schedule = DefaultCourierScoreSchedule
	}
	return &CourierScoreJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "courier_score_job"),
	}
}

// Start schedules the job.
func (j *CourierScoreJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Courier score job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh.
func (j *CourierScoreJob) Run(ctx context.Context) {
	result, err := j.handler.Handle(ctx, commands.NewRefreshAllCourierScoresCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Courier score job failed", "error", err,
			"refreshed", result.Refreshed, "failed", result.Failed)
		return
	}
	j.logger.DebugContext(ctx, "Courier scores refreshed", "refreshed", result.Refreshed)
}

// Stop waits for a running refresh to finish.
func (j *CourierScoreJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Courier score job stopped")
}
