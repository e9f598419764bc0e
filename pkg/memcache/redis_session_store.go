package mem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "jelajah:planner:"
	maxUpdateRetries = 5
)

// RedisSessionStore shares planner sessions between instances. Values are
// stored as JSON; Update uses WATCH/MULTI so concurrent writers retry instead
// of overwriting each other.
type RedisSessionStore[T any] struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore[T any](client *redis.Client, ttl time.Duration) *RedisSessionStore[T] {
	return &RedisSessionStore[T]{client: client, ttl: ttl}
}

func SessionKey(id string) string { return redisKeyPrefix + id }

func (s *RedisSessionStore[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	raw, err := s.client.Get(ctx, SessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("redis get session: %w", err)
	}

	value, err := decodeSession[T](raw)
	if err != nil {
		return zero, false, err
	}
	return value, true, nil
}

func (s *RedisSessionStore[T]) Update(ctx context.Context, id string, fn func(value *T) error) error {
	key := SessionKey(id)

	txf := func(tx *redis.Tx) error {
		var value T
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("redis get session: %w", err)
		default:
			if value, err = decodeSession[T](raw); err != nil {
				return err
			}
		}

		if err := fn(&value); err != nil {
			return err
		}

		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("redis update session %s: too much contention", id)
}

func (s *RedisSessionStore[T]) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, SessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func decodeSession[T any](raw []byte) (T, error) {
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, fmt.Errorf("decode session: %w", err)
	}
	return value, nil
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
