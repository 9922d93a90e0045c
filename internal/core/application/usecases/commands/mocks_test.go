package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(kernel.UUID) *order.Order); ok {
		return fn(id), args.Error(1)
	}
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]ports.OutboxMessage)
	return msgs, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// RecordingDispatcher captures dispatched effects instead of running them.
type RecordingDispatcher struct {
	mu    sync.Mutex
	calls []dispatchCall
}

type dispatchCall struct {
	order  *order.Order
	status order.Status
}

func (d *RecordingDispatcher) Dispatch(_ context.Context, o *order.Order, s order.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, dispatchCall{order: o, status: s})
}

func (d *RecordingDispatcher) Calls() []dispatchCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]dispatchCall(nil), d.calls...)
}

// uowFixture wires a unit of work mock to repository mocks.
type uowFixture struct {
	factory *MockOrderUoWFactory
	uow     *MockOrderUoW
	orders  *MockOrderRepository
	outbox  *MockOutboxRepository
}

func newUoWFixture() uowFixture {
	f := uowFixture{
		factory: new(MockOrderUoWFactory),
		uow:     new(MockOrderUoW),
		orders:  new(MockOrderRepository),
		outbox:  new(MockOutboxRepository),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("OutboxRepository").Return(f.outbox).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return f
}

func (f uowFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.factory.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.outbox.AssertExpectations(t)
}

func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	price, _ := kernel.MoneyFromInt(40000)
	fee, _ := kernel.MoneyFromInt(15000)
	item, err := order.NewItem(kernel.NewUUID(), "Banh mi", price, 1, "")
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.Snapshot{
		ID:              kernel.NewUUID(),
		ProfileID:       "profile-7",
		RestaurantID:    kernel.NewUUID(),
		DeliveryAddress: "3 Dong Khoi",
		Subtotal:        price,
		DeliveryFee:     fee,
		Discount:        kernel.ZeroMoney(),
		Total:           price.Add(fee),
		PaymentStatus:   order.Unpaid,
		PaymentMethod:   "cash",
		Status:          status,
		CreatedAt:       time.Now().Add(-time.Hour),
		UpdatedAt:       time.Now().Add(-time.Hour),
		Items:           []*order.Item{item},
	})
	require.NoError(t, err)
	return o
}

func ptr[T any](v T) *T {
	return &v
}
