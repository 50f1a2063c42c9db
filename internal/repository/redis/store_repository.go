package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:"

// StoreRepository is the Redis-backed key-value store for the catalog and
// session caches. Values are opaque JSON blobs and never expire: the sticky
// enrichment decisions must survive reloads.
type StoreRepository struct {
	client *redis.Client
}

func NewStoreRepository(client *redis.Client) *StoreRepository {
	return &StoreRepository{
		client: client,
	}
}

func (r *StoreRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %q from Redis: %w", key, err)
	}

	return val, true, nil
}

func (r *StoreRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q in Redis: %w", key, err)
	}

	return nil
}

func (r *StoreRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %q from Redis: %w", key, err)
	}

	return nil
}
