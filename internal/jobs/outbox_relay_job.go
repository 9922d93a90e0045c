package jobs

import (
	"context"
	"log/slog"

	"orderservice/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every two seconds.
const DefaultOutboxRelaySchedule = "*/2 * * * * *"

type outboxEventsPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxEventsCommand) (int, error)
}

// OutboxRelayJob periodically hands pending order events to the broker.
// A run that is still busy when the next tick fires makes that tick a no-op.
type OutboxRelayJob struct {
	handler   outboxEventsPublisher
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxRelayJob(
	handler outboxEventsPublisher,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start registers the relay on its schedule.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox relay job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// RunOnce relays a single batch and reports how many events went out.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewPublishOutboxEventsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "outbox relay misconfigured", "error", err)
		return 0
	}

	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "outbox relay failed", "published", published, "error", err)
		return published
	}
	if published > 0 {
		j.logger.DebugContext(ctx, "outbox events published", "count", published)
	}
	return published
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("outbox relay job stopped")
}
