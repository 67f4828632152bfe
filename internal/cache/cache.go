// Package cache holds probe results in Redis so that repeated probes of an
// unchanged remote file do not re-run the inspection tool. The cache is
// optional; the service runs without it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vodworks/audio-service/pkg/models"
)

// Cache provides probe-result caching using Redis
type Cache struct {
	client *redis.Client
}

// NewCache creates a new cache instance
func NewCache(host string, port int, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping checks the Redis connection
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// SetProbeResult caches a probe response by source URL
func (c *Cache) SetProbeResult(ctx context.Context, url string, resp models.ProbeResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal probe result: %w", err)
	}

	key := fmt.Sprintf("probe:%s", url)
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetProbeResult retrieves a probe response from cache. A nil response with
// a nil error is a cache miss.
func (c *Cache) GetProbeResult(ctx context.Context, url string) (*models.ProbeResponse, error) {
	key := fmt.Sprintf("probe:%s", url)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get probe result from cache: %w", err)
	}

	var resp models.ProbeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal probe result: %w", err)
	}

	return &resp, nil
}
