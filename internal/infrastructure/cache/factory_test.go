package cache

import (
	"errors"
	"testing"

	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestResponseStoreFactory_CreateStore(t *testing.T) {
	t.Run("redis disabled uses in-memory", func(t *testing.T) {
		f := NewResponseStoreFactory(config.RedisConfig{Enabled: false})
		store, err := f.CreateStore()
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &InMemoryResponseStore{}, store)
	})

	t.Run("unreachable redis falls back with a warning", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := NewResponseStoreFactory(config.RedisConfig{Enabled: true, Host: "localhost", Port: 1},
			WithLogger(zap.New(core)))
		f.connect = func(RedisConfig) (ResponseStore, error) {
			return nil, errors.New("connection refused")
		}

		store, err := f.CreateStore()
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &InMemoryResponseStore{}, store)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("fallback disabled returns the error", func(t *testing.T) {
		f := NewResponseStoreFactory(config.RedisConfig{Enabled: true},
			WithInMemoryFallback(false))
		f.connect = func(RedisConfig) (ResponseStore, error) {
			return nil, errors.New("connection refused")
		}

		store, err := f.CreateStore()
		assert.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("reachable redis is used", func(t *testing.T) {
		want := NewInMemoryResponseStore()
		defer want.Close()

		f := NewResponseStoreFactory(config.RedisConfig{Enabled: true})
		f.connect = func(RedisConfig) (ResponseStore, error) { return want, nil }

		store, err := f.CreateStore()
		require.NoError(t, err)
		assert.Same(t, want, store)
	})
}
