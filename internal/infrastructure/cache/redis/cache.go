// Package redis implements the geocode cache against a Redis server so
// multiple replicas can share resolved addresses. Entries expire after a
// configurable TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to the given address and verifies it with a ping.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

func (c *Cache) Get(ctx context.Context, key string) (*domain.Address, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}

	var addr domain.Address
	if err := json.Unmarshal([]byte(value), &addr); err != nil {
		return nil, false, fmt.Errorf("decode cached address for %q: %w", key, err)
	}
	return &addr, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, addr *domain.Address) error {
	payload, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("encode address for %q: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
