package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublishHandler struct{ mock.Mock }

func (m *MockPublishHandler) Handle(ctx context.Context, cmd commands.PublishOutboxEventsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestOutboxRelayJob_RunOnce(t *testing.T) {
	t.Run("should pass the batch size to the handler", func(t *testing.T) {
		handler := new(MockPublishHandler)
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PublishOutboxEventsCommand) bool {
			return cmd.BatchSize() == 50
		})).Return(3, nil).Once()

		job := jobs.NewOutboxRelayJob(handler, "", 50, slog.New(slog.DiscardHandler))

		assert.Equal(t, 3, job.RunOnce(t.Context()))
		handler.AssertExpectations(t)
	})

	t.Run("should log handler failures", func(t *testing.T) {
		var logs syncBuffer
		handler := new(MockPublishHandler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("broker down")).Once()

		job := jobs.NewOutboxRelayJob(handler, "", 10, slog.New(slog.NewTextHandler(&logs, nil)))

		assert.Equal(t, 1, job.RunOnce(t.Context()))
		assert.Contains(t, logs.String(), "outbox relay failed")
		assert.Contains(t, logs.String(), "broker down")
	})

	t.Run("should refuse an invalid batch size", func(t *testing.T) {
		var logs syncBuffer
		handler := new(MockPublishHandler)

		job := jobs.NewOutboxRelayJob(handler, "", 0, slog.New(slog.NewTextHandler(&logs, nil)))

		assert.Zero(t, job.RunOnce(t.Context()))
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		assert.Contains(t, logs.String(), "outbox relay misconfigured")
	})
}

func TestOutboxRelayJob_Schedule(t *testing.T) {
	handler := new(MockPublishHandler)
	called := make(chan struct{}, 10)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { called <- struct{}{} }).
		Return(0, nil)

	manager := jobs.NewJobManager(handler, "* * * * * *", 10, slog.New(slog.DiscardHandler))
	require.NoError(t, manager.StartAll())
	defer manager.StopAll()

	select {
	case <-called:
	case <-time.After(3 * time.Second):
		t.Fatal("relay did not run on schedule")
	}
}

func TestOutboxRelayJob_InvalidSchedule(t *testing.T) {
	manager := jobs.NewJobManager(new(MockPublishHandler), "every now and then", 10, slog.New(slog.DiscardHandler))

	require.Error(t, manager.StartAll())
}
