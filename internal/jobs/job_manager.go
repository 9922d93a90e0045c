package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

// NewJobManager wires the scheduled jobs to their command handlers.
func NewJobManager(
	outboxHandler outboxEventsPublisher,
	outboxSchedule string,
	outboxBatchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(outboxHandler, outboxSchedule, outboxBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
