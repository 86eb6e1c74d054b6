package store

import (
	"context"
	"strings"

	"github.com/agentstation/humansort/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// Config selects and configures a backend.
type Config struct {
	// Backend is file, redis or memory. Empty means file.
	Backend string
	// Location is the file path or Redis key.
	Location string
	Redis    RedisConfig
}

// Open returns the store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		if cfg.Location == "" {
			return nil, errors.NewConfigError("store", "a state file path is required", nil)
		}
		return NewFileStore(cfg.Location), nil
	case BackendRedis:
		if cfg.Redis.Addr == "" {
			return nil, errors.NewConfigError("store", "redis.addr is required for the redis store", nil)
		}
		return DialRedis(ctx, cfg.Redis, cfg.Location)
	case BackendMemory:
		return NewMemoryStore(nil), nil
	default:
		return nil, errors.NewConfigError("store", "unknown store backend "+cfg.Backend, nil)
	}
}
