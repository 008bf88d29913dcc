package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadRateLimitConfig_SubMillisecondInterval(t *testing.T) {
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "500us")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, time.Millisecond, cfg.RefillInterval)
	assert.Equal(t, int64(1), cfg.RefillInterval.Milliseconds())
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", " get, head ,")
	t.Setenv("CACHE_ENABLED", "off")

	cfg := LoadCacheConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
}

func TestLoadSessionConfig_Defaults(t *testing.T) {
	t.Setenv("SESSION_TTL", "")
	cfg := LoadSessionConfig()
	assert.Equal(t, 30*time.Minute, cfg.TTL)
	assert.Equal(t, "stagex:editor", cfg.Prefix)
}

func TestAMQPURL(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://broker:5672/")
	assert.Equal(t, "amqp://broker:5672/", AMQPURL())

	t.Setenv("RABBITMQ_URL", "amqp://primary:5672/")
	assert.Equal(t, "amqp://primary:5672/", AMQPURL())
}
