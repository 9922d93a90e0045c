// Package jobs provides scheduled background tasks of the order service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
//  1. OutboxRelayJob - drains the order_events outbox into the configured broker
//
// # Usage
//
//	jobManager := jobs.NewJobManager(&publishHandler, "*/2 * * * * *", 100, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed relay is logged and retried on the next tick. Events stay in the
// outbox until a broker accepts them, so nothing is lost between runs.
package jobs
