package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
)

// RedisImageStore shares the image cache between installs through redis
type RedisImageStore struct {
	client *redis.Client
	prefix string
}

// NewRedisImageStore connects to redisURL and verifies the connection
func NewRedisImageStore(redisURL, prefix string) (*RedisImageStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisImageStore{client: client, prefix: prefix}, nil
}

// Get returns the URL cached for key
func (s *RedisImageStore) Get(ctx context.Context, key string) (string, bool, error) {
	url, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return url, true, nil
}

// Put stores entry with SETNX so existing keys are never overwritten
func (s *RedisImageStore) Put(ctx context.Context, entry imagecache.Entry) error {
	if entry.Key == "" {
		return fmt.Errorf("image file name is required")
	}
	if err := s.client.SetNX(ctx, s.prefix+entry.Key, entry.URL, 0).Err(); err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	return nil
}

// Count scans the key prefix and returns the number of cached entries
func (s *RedisImageStore) Count(ctx context.Context) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}
	return count, nil
}

// Close closes the Redis connection
func (s *RedisImageStore) Close() error {
	return s.client.Close()
}
