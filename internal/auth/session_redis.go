package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "franchise:session:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Save(ctx context.Context, id string, c Caller, ttl time.Duration) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, redisKeyPrefix+id, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, id string) (Caller, error) {
	b, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Caller{}, ErrSessionNotFound
	}
	if err != nil {
		return Caller{}, fmt.Errorf("redis get session: %w", err)
	}
	var c Caller
	if err := json.Unmarshal(b, &c); err != nil {
		return Caller{}, fmt.Errorf("decode session: %w", err)
	}
	return c, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKeyPrefix+id).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
