package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, "dev", cfg.Server.AppEnv)
	assert.Equal(t, 3, cfg.Postgres.TxMaxRetries)
	assert.Equal(t, 10*time.Minute, cfg.Redis.ConversionTTL)
	assert.Equal(t, 50, cfg.Server.RateLimitRPS)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("POSTGRES_TX_MAX_RETRIES", "5")
	t.Setenv("POSTGRES_AUTO_MIGRATE", "true")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := LoadEnv()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5, cfg.Postgres.TxMaxRetries)
	assert.True(t, cfg.Postgres.AutoMigrate)
	assert.Equal(t, 0, cfg.Redis.DB)
}
