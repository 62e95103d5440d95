package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisStorage keeps snapshots under "namespace:slice" keys so several
// workstations can share one hydration source.
type redisStorage struct {
	client    *redis.Client
	namespace string
}

func NewRedisStorage(url, namespace string) (Storage, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &redisStorage{client: redis.NewClient(opts), namespace: namespace}, nil
}

func (r *redisStorage) key(key string) string {
	return fmt.Sprintf("%s:%s", r.namespace, key)
}

func (r *redisStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

func (r *redisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", key, err)
	}
	return data, nil
}

func (r *redisStorage) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", key, err)
	}
	return nil
}
