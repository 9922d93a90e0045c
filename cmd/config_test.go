package cmd_test

import (
	"testing"
	"time"

	"orderservice/cmd"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("RESTAURANT_SERVICE_URL", "http://restaurants:8000")
	t.Setenv("DRIVER_SERVICE_URL", "http://drivers:8000")
}

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := cmd.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 10*time.Second, cfg.CollaboratorTimeout)
		assert.True(t, decimal.NewFromInt(15000).Equal(cfg.DefaultDeliveryFee.Amount()))
		assert.Equal(t, cmd.BrokerNone, cfg.EventBroker)
		assert.Equal(t, order.PendingRestaurant, cfg.InitialStatus())
		assert.Equal(t, 100, cfg.OutboxBatchSize)
	})

	t.Run("should read overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ORDER_WORKFLOW", "Classic")
		t.Setenv("DEFAULT_DELIVERY_FEE", "12500.50")
		t.Setenv("COLLABORATOR_TIMEOUT", "3s")
		t.Setenv("EVENT_BROKER", "kafka")
		t.Setenv("KAFKA_HOST", "kafka-1:9092, kafka-2:9092,")

		cfg, err := cmd.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, order.Pending, cfg.InitialStatus())
		assert.Equal(t, "12500.5", cfg.DefaultDeliveryFee.String())
		assert.Equal(t, 3*time.Second, cfg.CollaboratorTimeout)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	})

	t.Run("should reject an unknown workflow", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ORDER_WORKFLOW", "drone")

		_, err := cmd.LoadConfig()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require the broker address", func(t *testing.T) {
		setRequired(t)
		t.Setenv("EVENT_BROKER", "rabbitmq")

		_, err := cmd.LoadConfig()

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require collaborator urls", func(t *testing.T) {
		t.Setenv("RESTAURANT_SERVICE_URL", "")
		t.Setenv("DRIVER_SERVICE_URL", "")

		_, err := cmd.LoadConfig()

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a negative delivery fee", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DEFAULT_DELIVERY_FEE", "-1")

		_, err := cmd.LoadConfig()

		require.Error(t, err)
	})
}
