package otp

import (
	"testing"

	"github.com/mangomarket/onboard/testutils"
	"github.com/stretchr/testify/assert"
)

func TestProvideStore(t *testing.T) {
	t.Run("memory store by default", func(t *testing.T) {
		cfg := testutils.GetTestConfig()

		store := ProvideStore(cfg)
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("redis store when enabled", func(t *testing.T) {
		cfg := testutils.GetTestConfig()
		cfg.Redis.Enabled = true
		cfg.Redis.Addr = "localhost:6379"

		store := ProvideStore(cfg)
		assert.IsType(t, &RedisStore{}, store)
	})
}
