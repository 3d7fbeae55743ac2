package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/online-shop/shopfront/config"
	"github.com/online-shop/shopfront/internal/adapters/memstate"
	"github.com/online-shop/shopfront/internal/adapters/redisstate"
	"github.com/online-shop/shopfront/internal/ports"
)

// ConnectRedis dials Redis and verifies the connection.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			return nil, fmt.Errorf("ping redis %s: %w (close: %v)", cfg.Addr, err, cerr)
		}
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// NewCredentialStore builds the configured credential store. The returned
// closer releases the Redis connection when one was opened; it is a no-op
// for the in-memory store.
func NewCredentialStore(
	ctx context.Context,
	cfg config.StateConfig,
	logger *slog.Logger,
) (ports.CredentialStore, func() error, error) {
	switch cfg.Store {
	case config.StateStoreMemory:
		return memstate.NewStore(), func() error { return nil }, nil
	case config.StateStoreRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.InfoContext(ctx, "credential store connected", "store", cfg.Store, "addr", cfg.Redis.Addr)
		return redisstate.NewStoreWithKey(client, cfg.Key), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported state store %q", cfg.Store)
	}
}
