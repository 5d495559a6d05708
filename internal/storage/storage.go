// Package storage provides the customer identity stores: an in-process
// memory store and a redis store for sharing identifier allocation between
// replicas. Both implement customer.Repository.
package storage

import (
	"context"
	"fmt"

	"github.com/ignite/customer-onboarding/internal/config"
	"github.com/ignite/customer-onboarding/internal/service/customer"
	"github.com/redis/go-redis/v9"
)

// IdentityStore is a customer.Repository that owns external resources.
type IdentityStore interface {
	customer.Repository
	Close() error
}

var (
	_ IdentityStore = (*MemoryStore)(nil)
	_ IdentityStore = (*RedisStore)(nil)
)

// New creates the identity store selected by cfg.Type. The redis store is
// pinged before it is returned.
func New(ctx context.Context, cfg config.StorageConfig) (IdentityStore, error) {
	switch cfg.Type {
	case config.StorageMemory, "":
		return NewMemoryStore(), nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
