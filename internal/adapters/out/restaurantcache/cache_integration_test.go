package restaurantcache_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orderservice/internal/adapters/out/restaurantcache"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type MockRestaurantClient struct{ mock.Mock }

func (m *MockRestaurantClient) GetRestaurant(ctx context.Context, id kernel.UUID) (ports.Restaurant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Restaurant), args.Error(1)
}

func (m *MockRestaurantClient) EvaluateOrder(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

type RestaurantCacheTestSuite struct {
	suite.Suite
	container testcontainers.Container
	rdb       *redis.Client
}

func (suite *RestaurantCacheTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)
	suite.rdb = restaurantcache.NewRedisClient(endpoint)
}

func (suite *RestaurantCacheTestSuite) TearDownSuite() {
	if suite.rdb != nil {
		_ = suite.rdb.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RestaurantCacheTestSuite) SetupTest() {
	suite.Require().NoError(suite.rdb.FlushDB(context.Background()).Err())
}

func (suite *RestaurantCacheTestSuite) newCache(next ports.RestaurantClient, ttl time.Duration) *restaurantcache.Client {
	return restaurantcache.NewClient(next, suite.rdb, ttl, slog.New(slog.DiscardHandler))
}

func (suite *RestaurantCacheTestSuite) TestGetRestaurant_SecondReadIsServedFromCache() {
	ctx := context.Background()
	id := kernel.NewUUID()
	upstream := new(MockRestaurantClient)
	upstream.On("GetRestaurant", mock.Anything, id).
		Return(ports.Restaurant{ID: id, Name: "Pho 24", Address: "5 Nguyen Trai"}, nil).Once()

	cache := suite.newCache(upstream, time.Minute)

	first, err := cache.GetRestaurant(ctx, id)
	suite.Require().NoError(err)
	second, err := cache.GetRestaurant(ctx, id)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.Equal("5 Nguyen Trai", second.Address)
	upstream.AssertExpectations(suite.T())

	ttl, err := suite.rdb.TTL(ctx, "restaurant:"+id.String()).Result()
	suite.Require().NoError(err)
	suite.Positive(ttl)
}

func (suite *RestaurantCacheTestSuite) TestGetRestaurant_ConcurrentMissesShareOneCall() {
	ctx := context.Background()
	id := kernel.NewUUID()
	upstream := new(MockRestaurantClient)
	upstream.On("GetRestaurant", mock.Anything, id).
		After(200*time.Millisecond).
		Return(ports.Restaurant{ID: id, Name: "Com Ga", Address: "1 Le Duan"}, nil).Once()

	cache := suite.newCache(upstream, time.Minute)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := cache.GetRestaurant(ctx, id)
			suite.NoError(err)
			suite.Equal("1 Le Duan", r.Address)
		}()
	}
	wg.Wait()

	upstream.AssertNumberOfCalls(suite.T(), "GetRestaurant", 1)
}

func (suite *RestaurantCacheTestSuite) TestGetRestaurant_UpstreamErrorIsNotCached() {
	ctx := context.Background()
	id := kernel.NewUUID()
	upstream := new(MockRestaurantClient)
	upstream.On("GetRestaurant", mock.Anything, id).Return(ports.Restaurant{}, ports.ErrRestaurantNotFound).Twice()

	cache := suite.newCache(upstream, time.Minute)

	_, err := cache.GetRestaurant(ctx, id)
	suite.Require().ErrorIs(err, ports.ErrRestaurantNotFound)
	_, err = cache.GetRestaurant(ctx, id)
	suite.Require().ErrorIs(err, ports.ErrRestaurantNotFound)

	upstream.AssertExpectations(suite.T())
}

func (suite *RestaurantCacheTestSuite) TestInvalidate_ForcesRefetch() {
	ctx := context.Background()
	id := kernel.NewUUID()
	upstream := new(MockRestaurantClient)
	upstream.On("GetRestaurant", mock.Anything, id).Return(ports.Restaurant{ID: id, Name: "A"}, nil).Twice()

	cache := suite.newCache(upstream, time.Minute)

	_, err := cache.GetRestaurant(ctx, id)
	suite.Require().NoError(err)
	suite.Require().NoError(cache.Invalidate(ctx, id))
	_, err = cache.GetRestaurant(ctx, id)
	suite.Require().NoError(err)

	upstream.AssertExpectations(suite.T())
}

func (suite *RestaurantCacheTestSuite) TestEvaluateOrder_PassesThrough() {
	upstream := new(MockRestaurantClient)
	upstream.On("EvaluateOrder", mock.Anything, (*order.Order)(nil)).Return(errors.New("down")).Once()

	err := suite.newCache(upstream, time.Minute).EvaluateOrder(context.Background(), nil)

	suite.Require().EqualError(err, "down")
}

func (suite *RestaurantCacheTestSuite) TestGetRestaurant_RedisDownFallsBackToUpstream() {
	id := kernel.NewUUID()
	upstream := new(MockRestaurantClient)
	upstream.On("GetRestaurant", mock.Anything, id).Return(ports.Restaurant{ID: id, Name: "B"}, nil).Once()

	broken := restaurantcache.NewRedisClient("127.0.0.1:1")
	defer broken.Close()
	cache := restaurantcache.NewClient(upstream, broken, time.Minute, slog.New(slog.DiscardHandler))

	r, err := cache.GetRestaurant(context.Background(), id)

	suite.Require().NoError(err)
	suite.Equal("B", r.Name)
}

func TestRestaurantCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RestaurantCacheTestSuite))
}
