// Package store adapts Redis to fiber.Storage so middleware state (the send-otp
// rate limiter) is shared between instances.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 3 * time.Second

var _ fiber.Storage = (*RedisStorage)(nil)

type RedisStorage struct {
	client *redis.Client
	prefix string
}

func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

// Get returns nil, nil for a missing key, as fiber.Storage requires.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return s.client.Set(ctx, s.prefix+key, val, exp).Err()
}

func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return s.client.Del(ctx, s.prefix+key).Err()
}

// Reset removes only the keys under this storage's prefix.
func (s *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op; the client is owned by the container.
func (s *RedisStorage) Close() error {
	return nil
}
