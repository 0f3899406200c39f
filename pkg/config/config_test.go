package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-orders-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.App.StoreDriver)
	assert.Equal(t, 256, cfg.Notify.QueueSize)
	assert.Equal(t, 2, cfg.Notify.Workers)
	assert.Equal(t, 5*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, "5000", cfg.Orders.LargeThreshold.String())
	assert.Equal(t, "low-stock-alerts", cfg.Kafka.LowStockTopic)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoad_BrokersSeparadosPorComa(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_UmbralInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ORDER_LARGE_THRESHOLD", "mucho")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/x?sslmode=disable", c.ConnectionString())
}
