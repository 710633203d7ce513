// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field in the schedule.
//
// # Available Jobs
//
// 1. CourierScoreJob - recomputes the stored base score of every courier (default every five minutes)
// 2. BalanceResyncJob - rebuilds every cached account from the entry log (default nightly at 03:00)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewCourierScoreJob(refreshHandler, "", logger),
//		jobs.NewBalanceResyncJob(resyncHandler, "", logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs log failures and keep their schedule. A failed start stops the jobs
// already running.
package jobs
