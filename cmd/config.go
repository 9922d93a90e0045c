package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"orderservice/internal/adapters/out/restaurantcache"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/jobs"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/httpclient"

	"github.com/joho/godotenv"
)

// Supported values of ORDER_WORKFLOW and EVENT_BROKER.
const (
	WorkflowRestaurant = "restaurant"
	WorkflowClassic    = "classic"

	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
	BrokerNone     = "none"
)

const (
	defaultDeliveryFee     = "15000"
	defaultOutboxBatchSize = 100
	defaultServiceName     = "order-service"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RestaurantServiceURL string
	DriverServiceURL     string
	CollaboratorTimeout  time.Duration

	OrderWorkflow      string
	DefaultDeliveryFee kernel.Money

	RedisAddr          string
	RestaurantCacheTTL time.Duration

	EventBroker            string
	KafkaHost              string
	KafkaOrderChangedTopic string
	RabbitMQURL            string
	RabbitMQExchange       string
	OutboxRelaySchedule    string
	OutboxBatchSize        int

	OTelServiceName      string
	OTelExporterEndpoint string
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Config{
		HTTPPort:   getEnv("HTTP_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "orders"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RestaurantServiceURL: os.Getenv("RESTAURANT_SERVICE_URL"),
		DriverServiceURL:     os.Getenv("DRIVER_SERVICE_URL"),

		OrderWorkflow: strings.ToLower(getEnv("ORDER_WORKFLOW", WorkflowRestaurant)),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		EventBroker:            strings.ToLower(getEnv("EVENT_BROKER", BrokerNone)),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: getEnv("KAFKA_ORDER_CHANGED_TOPIC", "orders.status"),
		RabbitMQURL:            os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:       getEnv("RABBITMQ_EXCHANGE", "orders"),
		OutboxRelaySchedule:    getEnv("OUTBOX_RELAY_SCHEDULE", jobs.DefaultOutboxRelaySchedule),

		OTelServiceName:      getEnv("OTEL_SERVICE_NAME", defaultServiceName),
		OTelExporterEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var err error
	if cfg.CollaboratorTimeout, err = getDuration("COLLABORATOR_TIMEOUT", httpclient.DefaultTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RestaurantCacheTTL, err = getDuration("RESTAURANT_CACHE_TTL", restaurantcache.DefaultTTL); err != nil {
		return Config{}, err
	}
	if cfg.DefaultDeliveryFee, err = kernel.MoneyFromString(getEnv("DEFAULT_DELIVERY_FEE", defaultDeliveryFee)); err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("DEFAULT_DELIVERY_FEE", err)
	}
	if cfg.OutboxBatchSize, err = getInt("OUTBOX_BATCH_SIZE", defaultOutboxBatchSize); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that select behaviour.
func (c Config) Validate() error {
	var problems []error

	switch c.OrderWorkflow {
	case WorkflowRestaurant, WorkflowClassic:
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("ORDER_WORKFLOW",
			fmt.Errorf("%q is not one of %s, %s", c.OrderWorkflow, WorkflowRestaurant, WorkflowClassic)))
	}

	switch c.EventBroker {
	case BrokerNone:
	case BrokerKafka:
		if c.KafkaHost == "" {
			problems = append(problems, errs.NewValueIsRequiredError("KAFKA_HOST"))
		}
	case BrokerRabbitMQ:
		if c.RabbitMQURL == "" {
			problems = append(problems, errs.NewValueIsRequiredError("RABBITMQ_URL"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("EVENT_BROKER",
			fmt.Errorf("%q is not one of %s, %s, %s", c.EventBroker, BrokerKafka, BrokerRabbitMQ, BrokerNone)))
	}

	if c.RestaurantServiceURL == "" {
		problems = append(problems, errs.NewValueIsRequiredError("RESTAURANT_SERVICE_URL"))
	}
	if c.DriverServiceURL == "" {
		problems = append(problems, errs.NewValueIsRequiredError("DRIVER_SERVICE_URL"))
	}

	return errors.Join(problems...)
}

// InitialStatus is the status new orders start in under the configured workflow.
func (c Config) InitialStatus() order.Status {
	if c.OrderWorkflow == WorkflowClassic {
		return order.Pending
	}
	return order.PendingRestaurant
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// DSN is the libpq connection string for the order database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsOutOfRangeError(key, d, "1ns", "")
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return n, nil
}
