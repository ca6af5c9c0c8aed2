//go:build integration

package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisIntegration(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	t.Run("idempotency store", func(t *testing.T) {
		store := NewRedisIdempotencyStore(client, "")

		ok, err := store.MarkProcessed(ctx, "req-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.MarkProcessed(ctx, "req-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		processed, err := store.IsProcessed(ctx, "req-1")
		require.NoError(t, err)
		assert.True(t, processed)

		ttl, err := client.TTL(ctx, defaultIdempotencyPrefix+"req-1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))

		require.NoError(t, store.Forget(ctx, "req-1"))
		ok, err = store.MarkProcessed(ctx, "req-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "forgotten key is free again")
	})

	t.Run("key locker serializes holders", func(t *testing.T) {
		locker := NewRedisKeyLocker(client, zap.NewNop(), WithPollInterval(2*time.Millisecond))

		var inside, maxInside atomic.Int32
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := locker.Lock(ctx, "p1|w1", "p1|w2")
				if !assert.NoError(t, err) {
					return
				}
				n := inside.Add(1)
				for {
					m := maxInside.Load()
					if n <= m || maxInside.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				unlock()
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), maxInside.Load())

		n, err := client.Exists(ctx, defaultLockPrefix+"p1|w1", defaultLockPrefix+"p1|w2").Result()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("lock honours context deadline", func(t *testing.T) {
		locker := NewRedisKeyLocker(client, zap.NewNop())
		unlock, err := locker.Lock(ctx, "busy")
		require.NoError(t, err)
		defer unlock()

		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(waitCtx, "busy")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("release leaves a lock taken over after expiry", func(t *testing.T) {
		locker := NewRedisKeyLocker(client, zap.NewNop(), WithLockTTL(20*time.Millisecond))
		unlock, err := locker.Lock(ctx, "stale")
		require.NoError(t, err)

		time.Sleep(40 * time.Millisecond)
		require.NoError(t, client.Set(ctx, defaultLockPrefix+"stale", "other", time.Minute).Err())

		unlock()
		val, err := client.Get(ctx, defaultLockPrefix+"stale").Result()
		require.NoError(t, err)
		assert.Equal(t, "other", val)
	})
}
