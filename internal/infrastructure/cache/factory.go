package cache

import (
	"fmt"

	"github.com/ecommerce/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ResponseStoreFactory creates response stores based on configuration
type ResponseStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	connect               func(RedisConfig) (ResponseStore, error)
}

// ResponseStoreFactoryOption is a functional option for configuring the factory
type ResponseStoreFactoryOption func(*ResponseStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ResponseStoreFactoryOption {
	return func(f *ResponseStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-memory store. Default is true.
func WithInMemoryFallback(allow bool) ResponseStoreFactoryOption {
	return func(f *ResponseStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewResponseStoreFactory creates a new factory
func NewResponseStoreFactory(cfg config.RedisConfig, opts ...ResponseStoreFactoryOption) *ResponseStoreFactory {
	f := &ResponseStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		connect: func(c RedisConfig) (ResponseStore, error) {
			return NewRedisResponseStore(c)
		},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore returns a Redis store when Redis is enabled and reachable,
// otherwise an in-memory store if fallback is allowed.
func (f *ResponseStoreFactory) CreateStore() (ResponseStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory idempotency store")
		return NewInMemoryResponseStore(), nil
	}

	store, err := f.connect(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("Using Redis idempotency store",
			zap.String("host", f.redisConfig.Host),
			zap.Int("port", f.redisConfig.Port))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for idempotency but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store; "+
		"replays are not shared across instances",
		zap.Error(err),
	)
	return NewInMemoryResponseStore(), nil
}
