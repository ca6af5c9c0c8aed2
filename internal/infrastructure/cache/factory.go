package cache

import (
	"context"
	"fmt"

	appinv "github.com/erp/stockledger/internal/application/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LockBackendRedis selects Redis for locks and idempotency keys
const LockBackendRedis = "redis"

// Coordination bundles the key locker and idempotency store chosen by
// ledger.lock_backend
type Coordination struct {
	Locker      appinv.KeyLocker
	Idempotency shared.IdempotencyStore
	Backend     string
	client      *redis.Client
}

// NewCoordination builds the Redis pair when ledger.lock_backend is redis and
// the in-process pair otherwise. A configured Redis that cannot be reached is
// an error rather than a silent downgrade.
func NewCoordination(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Coordination, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Ledger.LockBackend != LockBackendRedis {
		logger.Info("Using in-process key locks and idempotency store")
		return &Coordination{
			Locker:      appinv.NewLocalKeyLocker(),
			Idempotency: NewInMemoryIdempotencyStore(0),
			Backend:     "local",
		}, nil
	}

	client, err := NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("ledger.lock_backend is redis: %w", err)
	}
	logger.Info("Using Redis key locks and idempotency store", zap.String("addr", cfg.Redis.Addr()))
	return &Coordination{
		Locker:      NewRedisKeyLocker(client, logger, WithLockTTL(cfg.Ledger.LockTTL)),
		Idempotency: NewRedisIdempotencyStore(client, ""),
		Backend:     LockBackendRedis,
		client:      client,
	}, nil
}

// Close releases the idempotency store and the Redis client
func (c *Coordination) Close() error {
	err := c.Idempotency.Close()
	if c.client != nil {
		if cerr := c.client.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Ping checks the coordination backend. The in-process pair is always up.
func (c *Coordination) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
