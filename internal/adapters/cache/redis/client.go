// Package redis implements the market snapshot store using go-redis/v9.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/andrescamacho/evetrade/internal/infrastructure/config"
)

// Client wraps a go-redis Client and provides connectivity helpers
type Client struct {
	rdb *redis.Client
}

// New creates a Redis client, pings it to verify connectivity, and returns
// the wrapper. Returns an error if the connection cannot be established.
func New(ctx context.Context, cfg *config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Underlying returns the raw *redis.Client
func (c *Client) Underlying() *redis.Client {
	return c.rdb
}
