package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appinv "github.com/erp/stockledger/internal/application/inventory"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultLockPrefix   = "stockledger:lock:"
	defaultLockTTL      = 10 * time.Second
	defaultPollInterval = 10 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another holder is left alone
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisKeyLocker is a KeyLocker shared by every instance pointed at the same
// Redis. Each key is a SET NX PX entry holding a random token.
type RedisKeyLocker struct {
	client       redis.UniversalClient
	prefix       string
	ttl          time.Duration
	pollInterval time.Duration
	logger       *zap.Logger
}

// RedisKeyLockerOption configures a RedisKeyLocker
type RedisKeyLockerOption func(*RedisKeyLocker)

// WithLockTTL sets how long a lock survives a crashed holder
func WithLockTTL(ttl time.Duration) RedisKeyLockerOption {
	return func(l *RedisKeyLocker) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithPollInterval sets the wait between acquisition attempts
func WithPollInterval(d time.Duration) RedisKeyLockerOption {
	return func(l *RedisKeyLocker) {
		if d > 0 {
			l.pollInterval = d
		}
	}
}

// WithLockPrefix sets the Redis key prefix
func WithLockPrefix(prefix string) RedisKeyLockerOption {
	return func(l *RedisKeyLocker) {
		if prefix != "" {
			l.prefix = prefix
		}
	}
}

// NewRedisKeyLocker creates a new RedisKeyLocker
func NewRedisKeyLocker(client redis.UniversalClient, logger *zap.Logger, opts ...RedisKeyLockerOption) *RedisKeyLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &RedisKeyLocker{
		client:       client,
		prefix:       defaultLockPrefix,
		ttl:          defaultLockTTL,
		pollInterval: defaultPollInterval,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock acquires every key in sorted order, polling until ctx is done
func (l *RedisKeyLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	token := uuid.NewString()
	sorted := appinv.SortLockKeys(keys)
	held := make([]string, 0, len(sorted))

	for _, k := range sorted {
		if err := l.acquire(ctx, l.prefix+k, token); err != nil {
			l.release(held, token)
			return nil, err
		}
		held = append(held, l.prefix+k)
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(held, token) })
	}, nil
}

func (l *RedisKeyLocker) acquire(ctx context.Context, key, token string) error {
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// release runs in reverse order with a fresh context so a cancelled caller
// still frees its keys
func (l *RedisKeyLocker) release(keys []string, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := len(keys) - 1; i >= 0; i-- {
		n, err := releaseScript.Run(ctx, l.client, []string{keys[i]}, token).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			l.logger.Warn("Failed to release lock", zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		if n == 0 {
			l.logger.Warn("Lock expired before release", zap.String("key", keys[i]), zap.Duration("ttl", l.ttl))
		}
	}
}

// Ensure RedisKeyLocker implements KeyLocker
var _ appinv.KeyLocker = (*RedisKeyLocker)(nil)
