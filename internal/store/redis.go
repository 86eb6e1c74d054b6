package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/ranking"
)

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps the state as a JSON document under a single Redis key.
type RedisStore struct {
	client       redis.UniversalClient
	key          string
	lockTTL      time.Duration
	pollInterval time.Duration
	owned        bool
}

// NewRedisStore returns a store for key using an existing client. The
// client is not closed by Close.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = constants.DefaultRedisKey
	}
	return &RedisStore{
		client:       client,
		key:          key,
		lockTTL:      constants.LockTTL,
		pollInterval: constants.LockPollInterval,
	}
}

// DialRedis connects to addr and returns a store for key that owns the
// connection.
func DialRedis(ctx context.Context, cfg RedisConfig, key string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapResource("connect", "store", cfg.Addr, err)
	}
	s := NewRedisStore(client, key)
	s.owned = true
	return s, nil
}

// Name implements Store.
func (s *RedisStore) Name() string { return "redis" }

// Location implements Store.
func (s *RedisStore) Location() string { return s.key }

// Close implements Store.
func (s *RedisStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context) (*ranking.State, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.WrapResource("load", "state", s.key, err)
	}

	var state ranking.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.WrapParse("json", s.key, err)
	}
	return &state, nil
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, state *ranking.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.WrapResource("encode", "state", s.key, err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return errors.WrapResource("save", "state", s.key, err)
	}
	return nil
}

// LockKey returns the key used for the state's lock.
func (s *RedisStore) LockKey() string {
	return s.key + ":lock"
}

// Lock implements Locker with SET NX PX and a random token. The lock
// expires on its own if the holder dies.
func (s *RedisStore) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	lockKey := s.LockKey()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := s.client.SetNX(ctx, lockKey, token, s.lockTTL).Result()
		if err != nil {
			return nil, errors.WrapResource("lock", "state", s.key, err)
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), constants.LockTimeout)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, s.client, []string{lockKey}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.NewTimeoutError("lock", "", fmt.Sprintf("%s is locked by another client: %v", s.key, ctx.Err()))
		case <-ticker.C:
		}
	}
}

var (
	_ Store  = (*RedisStore)(nil)
	_ Locker = (*RedisStore)(nil)
)
