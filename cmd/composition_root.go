package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "orderservice/internal/adapters/in/http"
	"orderservice/internal/adapters/out/driver"
	"orderservice/internal/adapters/out/events"
	"orderservice/internal/adapters/out/postgres"
	"orderservice/internal/adapters/out/restaurant"
	"orderservice/internal/adapters/out/restaurantcache"
	"orderservice/internal/core/application/effects"
	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/services"
	"orderservice/internal/core/ports"
	"orderservice/internal/jobs"
	"orderservice/internal/pkg/httpclient"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived dependencies of the service and builds
// the handlers, the HTTP server and the background jobs from them.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	policy     services.StatusTransitionPolicy
	dispatcher *effects.StatusEffectDispatcher
	publisher  ports.EventPublisher
	redis      *redis.Client
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		policy:     services.NewStatusTransitionPolicy(logger),
	}

	collaborators := httpclient.New(configs.CollaboratorTimeout)

	var restaurants ports.RestaurantClient = restaurant.NewClient(configs.RestaurantServiceURL, collaborators)
	if configs.RedisAddr != "" {
		c.redis = restaurantcache.NewRedisClient(configs.RedisAddr)
		restaurants = restaurantcache.NewClient(restaurants, c.redis, configs.RestaurantCacheTTL, logger)
	}
	drivers := driver.NewClient(configs.DriverServiceURL, collaborators)

	c.dispatcher = effects.NewStatusEffectDispatcher(restaurants, drivers, nil, logger)

	publisher, err := newEventPublisher(configs, logger)
	if err != nil {
		return nil, err
	}
	c.publisher = publisher

	return c, nil
}

func newEventPublisher(configs Config, logger *slog.Logger) (ports.EventPublisher, error) {
	switch configs.EventBroker {
	case BrokerKafka:
		return events.NewKafkaPublisher(configs.KafkaBrokers(), configs.KafkaOrderChangedTopic, configs.OTelServiceName), nil
	case BrokerRabbitMQ:
		publisher, err := events.DialRabbit(configs.RabbitMQURL, configs.RabbitMQExchange, configs.OTelServiceName, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		return publisher, nil
	default:
		return events.NewLogPublisher(logger), nil
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		c.dispatcher,
		c.configs.DefaultDeliveryFee,
		c.configs.InitialStatus(),
	)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.policy, c.dispatcher)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePublishOutboxEventsCommandHandler() commands.PublishOutboxEventsCommandHandler {
	return commands.NewPublishOutboxEventsCommandHandler(c.outboxUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	updateOrder := c.CreateUpdateOrderCommandHandler()
	deleteOrder := c.CreateDeleteOrderCommandHandler()

	return httpin.NewServer(
		&createOrder,
		&updateOrder,
		&deleteOrder,
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	publish := c.CreatePublishOutboxEventsCommandHandler()
	return jobs.NewJobManager(&publish, c.configs.OutboxRelaySchedule, c.configs.OutboxBatchSize, c.logger)
}

// Close waits for in-flight status effects and releases broker and cache connections.
func (c *CompositionRoot) Close() error {
	c.dispatcher.Wait()

	var closeErrs []error
	if err := c.publisher.Close(); err != nil {
		closeErrs = append(closeErrs, fmt.Errorf("failed to close event publisher: %w", err))
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			closeErrs = append(closeErrs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}
	return errors.Join(closeErrs...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
