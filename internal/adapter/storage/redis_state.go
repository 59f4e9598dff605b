package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "state:"

// RedisStateRepository keeps each session's persisted state subset as a JSON
// blob under a prefixed key. Blobs have no TTL; they live until logout
// deletes them.
type RedisStateRepository struct {
	client *redis.Client
}

func NewRedisStateRepository(client *redis.Client) *RedisStateRepository {
	return &RedisStateRepository{client: client}
}

func (r *RedisStateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	payload, err := r.client.Get(ctx, stateKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (r *RedisStateRepository) Save(ctx context.Context, key string, payload []byte) error {
	return r.client.Set(ctx, stateKeyPrefix+key, payload, 0).Err()
}

func (r *RedisStateRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, stateKeyPrefix+key).Err()
}
