package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/advanced-insight/advisory-backoffice/pkg/config"
)

const extractionDegradedKey = "pipeline:extraction_degraded"

// Client wraps the Redis connection used for operational counters.
type Client struct {
	rdb *redis.Client
}

// NewClient connects to Redis and verifies the connection.
func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// IncrExtractionDegraded bumps the counter of pipeline runs that
// completed without usable fact extraction.
func (c *Client) IncrExtractionDegraded(ctx context.Context) error {
	return c.rdb.Incr(ctx, extractionDegradedKey).Err()
}

// ExtractionDegradedCount reads the degradation counter. Missing key
// reads as zero.
func (c *Client) ExtractionDegradedCount(ctx context.Context) (int64, error) {
	n, err := c.rdb.Get(ctx, extractionDegradedKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Close shuts down the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
