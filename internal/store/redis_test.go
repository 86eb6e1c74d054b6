package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisStore connects to HUMANSORT_TEST_REDIS_ADDR or skips the test.
func redisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("HUMANSORT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HUMANSORT_TEST_REDIS_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := "humansort:test:" + uuid.NewString()
	s, err := DialRedis(ctx, RedisConfig{Addr: addr}, key)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.client.Del(context.Background(), key, s.LockKey()).Err()
		_ = s.Close()
	})
	return s
}

func TestRedisStore(t *testing.T) {
	s := redisStore(t)
	assert.Equal(t, "redis", s.Name())
	exerciseStore(t, s)
}

func TestRedisStoreLock(t *testing.T) {
	s := redisStore(t)
	s.pollInterval = 5 * time.Millisecond
	exerciseLock(t, s)
}

func TestRedisStoreUnlockKeepsForeignLock(t *testing.T) {
	s := redisStore(t)
	ctx := context.Background()

	unlock, err := s.Lock(ctx)
	require.NoError(t, err)

	// Simulate expiry and takeover by another client.
	require.NoError(t, s.client.Set(ctx, s.LockKey(), "other", time.Minute).Err())
	unlock()

	val, err := s.client.Get(ctx, s.LockKey()).Result()
	require.NoError(t, err)
	assert.Equal(t, "other", val)
}

func TestNewRedisStoreDefaults(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close() //nolint:errcheck

	s := NewRedisStore(client, "")
	assert.Equal(t, "humansort:state", s.Location())
	assert.Equal(t, "humansort:state:lock", s.LockKey())
	assert.NoError(t, s.Close(), "borrowed client is not closed")
}
