package commands_test

import (
	"errors"
	"testing"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateHandler(t *testing.T, f uowFixture, d *RecordingDispatcher, initial order.Status) commands.CreateOrderCommandHandler {
	t.Helper()
	fee, err := kernel.MoneyFromInt(15000)
	require.NoError(t, err)
	return commands.NewCreateOrderCommandHandler(f.factory, d, fee, initial)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand("profile-1", kernel.NewUUID(), "12 Nguyen Hue", "", "cash", validLines(t))
	require.NoError(t, err)

	f := newUoWFixture()
	dispatcher := &RecordingDispatcher{}

	var added *order.Order
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { added = args.Get(1).(*order.Order) }).
		Return(nil).Once()
	f.outbox.On("Add", ctx, mock.MatchedBy(func(msg ports.OutboxMessage) bool {
		return msg.EventType == commands.EventOrderCreated
	})).Return(nil).Once()
	f.orders.On("Get", ctx, mock.Anything).
		Return(func(kernel.UUID) *order.Order { return added }, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := newCreateHandler(t, f, dispatcher, order.PendingRestaurant)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	f.assertExpectations(t)
	assert.Equal(t, order.PendingRestaurant, created.Status())
	assert.Equal(t, "90000", created.Subtotal().String())
	assert.Equal(t, "105000", created.Total().String())

	calls := dispatcher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, order.PendingRestaurant, calls[0].status)
}

func TestCreateOrderCommandHandler_Handle_ClassicWorkflowDoesNotDispatch(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("profile-1", kernel.NewUUID(), "12 Nguyen Hue", "", "cash", validLines(t))

	f := newUoWFixture()
	dispatcher := &RecordingDispatcher{}

	var added *order.Order
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("Add", ctx, mock.Anything).
		Run(func(args mock.Arguments) { added = args.Get(1).(*order.Order) }).
		Return(nil).Once()
	f.outbox.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.orders.On("Get", ctx, mock.Anything).
		Return(func(kernel.UUID) *order.Order { return added }, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := newCreateHandler(t, f, dispatcher, order.Pending)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, created.Status())
	assert.Empty(t, dispatcher.Calls())
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	f := newUoWFixture()
	h := newCreateHandler(t, f, &RecordingDispatcher{}, order.PendingRestaurant)

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	f.factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("profile-1", kernel.NewUUID(), "addr", "", "cash", validLines(t))

	f := newUoWFixture()
	dispatcher := &RecordingDispatcher{}
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("Add", ctx, mock.Anything).Return(errors.New("add error")).Once()

	h := newCreateHandler(t, f, dispatcher, order.PendingRestaurant)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "add error")
	f.uow.AssertCalled(t, "Rollback", ctx)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Empty(t, dispatcher.Calls())
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("profile-1", kernel.NewUUID(), "addr", "", "cash", validLines(t))

	f := newUoWFixture()
	dispatcher := &RecordingDispatcher{}
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.outbox.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.orders.On("Get", ctx, mock.Anything).Return(storedOrder(t, order.PendingRestaurant), nil).Once()
	f.uow.On("Commit", ctx).Return(errors.New("commit error")).Once()

	h := newCreateHandler(t, f, dispatcher, order.PendingRestaurant)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Empty(t, dispatcher.Calls(), "nothing is dispatched for an uncommitted order")
}
