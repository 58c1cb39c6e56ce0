package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "paygate:session:"

// RedisStore keeps sessions as JSON documents with a TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Load(ctx context.Context, id string) (map[string]json.RawMessage, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("redis unmarshal: %w", err)
	}
	return values, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, values map[string]json.RawMessage, ttl time.Duration) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return s.client.Del(ctx, s.key(id)).Err()
}
